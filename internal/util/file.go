package util

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nbroyles/extheap/internal/storage"
)

// ErrInvalidFileSize is returned when a data file does not hold a whole number of records
var ErrInvalidFileSize = errors.New("data file size is not a multiple of the record size")

// OpenDataFile opens an existing data file for random access reads and writes. The file is
// never created; a missing data file is an error
func OpenDataFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open data file %s: %w", path, err)
	}

	return file, nil
}

// RecordCount returns the number of records stored in the data file at path
func RecordCount(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failure checking size of %s: %w", path, err)
	}

	if info.Size()%storage.RecordSize != 0 {
		return 0, fmt.Errorf("%w: %s is %d bytes", ErrInvalidFileSize, path, info.Size())
	}

	return info.Size() / storage.RecordSize, nil
}

// WriteAt writes all of data at offset in out
func WriteAt(out io.WriterAt, data []byte, offset int64) error {
	if n, err := out.WriteAt(data, offset); err != nil {
		return fmt.Errorf("failure writing %d bytes at offset %d: %w", len(data), offset, err)
	} else if n != len(data) {
		return fmt.Errorf("failed to write all bytes to disk. n=%d, expected=%d", n, len(data))
	}

	return nil
}
