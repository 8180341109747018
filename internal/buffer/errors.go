package buffer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a pool is opened with unusable settings
var ErrInvalidConfig = errors.New("invalid buffer pool configuration")

// FileOpenError is returned when the backing data file cannot be opened. No pool
// operation is possible without it
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("could not open %s for read/write: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}

// IOError is returned when a read or write of a block fails part way through an operation
type IOError struct {
	Op     string
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s block at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
