// Package verify checks the output of a sort independently of the buffer pool: that the records
// are in key order and that they are a permutation of the input.
package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/nbroyles/extheap/internal/storage"
)

var (
	// ErrNotSorted is returned when a record's key is smaller than the key before it
	ErrNotSorted = errors.New("records are not sorted")
	// ErrDigestMismatch is returned when a sorted file is not a permutation of its input
	ErrDigestMismatch = errors.New("record digest changed")
)

// Digest summarizes the multiset of records in a file. Record order does not affect it, so a
// file and any permutation of it have the same digest
type Digest struct {
	Records int64
	Sum     uint64
}

func (d Digest) String() string {
	return fmt.Sprintf("%d records, sum %016x", d.Records, d.Sum)
}

// Add folds rec into the digest
func (d *Digest) Add(rec storage.Record) {
	d.Records++
	d.Sum += xxhash.Sum64(rec[:])
}

// DigestOf reads records from r until EOF and returns their digest
func DigestOf(r io.Reader) (Digest, error) {
	var d Digest
	err := each(r, func(_ int64, rec storage.Record) error {
		d.Add(rec)
		return nil
	})

	return d, err
}

// DigestFile returns the digest of the data file at path
func DigestFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("could not open %s for digest: %w", path, err)
	}
	defer file.Close()

	return DigestOf(file)
}

// CheckSorted reads records from r and fails with ErrNotSorted at the first record whose key is
// smaller than its predecessor's
func CheckSorted(r io.Reader) error {
	var prev int16
	return each(r, func(recNum int64, rec storage.Record) error {
		if recNum > 0 && rec.Key() < prev {
			return fmt.Errorf("%w: key %d at record %d follows key %d", ErrNotSorted, rec.Key(), recNum, prev)
		}
		prev = rec.Key()

		return nil
	})
}

// CheckSortedFile is CheckSorted on the data file at path
func CheckSortedFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s to check order: %w", path, err)
	}
	defer file.Close()

	return CheckSorted(file)
}

// Compare returns ErrDigestMismatch if after is not a permutation of before
func Compare(before Digest, after Digest) error {
	if before != after {
		return fmt.Errorf("%w: before %v, after %v", ErrDigestMismatch, before, after)
	}

	return nil
}

func each(r io.Reader, fn func(recNum int64, rec storage.Record) error) error {
	reader := bufio.NewReader(r)
	codec := storage.Codec{}

	for recNum := int64(0); ; recNum++ {
		rec, err := codec.DecodeFromReader(reader)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("failed reading record %d: %w", recNum, err)
		}

		if err := fn(recNum, rec); err != nil {
			return err
		}
	}
}
