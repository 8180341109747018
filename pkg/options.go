package pkg

import (
	"errors"
	"fmt"
)

// DefaultNumBuffers is the pool size used when none is given
const DefaultNumBuffers = 10

// ErrInvalidConfig is returned by Options.Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Options controls a single Sort
type Options struct {
	// NumBuffers is the number of blocks the buffer pool may hold at once
	NumBuffers int
	// BestEffortIO logs block read/write failures and carries on instead of failing the sort
	BestEffortIO bool
	// Verify checks, outside the buffer pool, that the result is sorted and is a permutation of the input
	Verify bool
	// StatFile, if set, is where the statistics report is written
	StatFile string
}

// DefaultOptions returns Options with recommended default values
func DefaultOptions() Options {
	return Options{
		NumBuffers: DefaultNumBuffers,
	}
}

// Validate checks if the options are usable
func (o Options) Validate() error {
	if o.NumBuffers < 1 {
		return fmt.Errorf("%w: number of buffers must be positive, got %d", ErrInvalidConfig, o.NumBuffers)
	}

	return nil
}
