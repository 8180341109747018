package pkg

import (
	"fmt"
	"time"

	"github.com/nbroyles/extheap/internal/buffer"
	"github.com/nbroyles/extheap/internal/heap"
	"github.com/nbroyles/extheap/internal/report"
	"github.com/nbroyles/extheap/internal/util"
	"github.com/nbroyles/extheap/internal/verify"
	log "github.com/sirupsen/logrus"
)

// Result describes a completed sort
type Result struct {
	Path       string
	Records    int64
	NumBuffers int
	Stats      buffer.Stats
	// Elapsed covers building the heap and every max removal, not the final flush
	Elapsed time.Duration
	// Digest is only set when Options.Verify is
	Digest *verify.Digest
}

// Summary converts the result into the form the stat file reports
func (r *Result) Summary() report.Summary {
	return report.Summary{
		DataFile:   r.Path,
		NumBuffers: r.NumBuffers,
		Records:    r.Records,
		Stats:      r.Stats,
		Elapsed:    r.Elapsed,
	}
}

// Sort sorts the records in the data file at path in place, in ascending key order. Every
// record access goes through a buffer pool of opts.NumBuffers blocks
func Sort(path string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records, err := util.RecordCount(path)
	if err != nil {
		return nil, fmt.Errorf("could not size data file: %w", err)
	}

	var before verify.Digest
	if opts.Verify {
		if before, err = verify.DigestFile(path); err != nil {
			return nil, fmt.Errorf("failed computing digest before sort: %w", err)
		}
	}

	logger := log.WithFields(log.Fields{"file": path, "records": records, "numBuffers": opts.NumBuffers})

	pool, err := buffer.Open(path, opts.NumBuffers, buffer.WithBestEffortIO(opts.BestEffortIO))
	if err != nil {
		return nil, err
	}

	logger.Debug("starting heapsort")
	elapsed, sortErr := heapsort(pool, records)
	if closeErr := pool.Close(); closeErr != nil && sortErr == nil {
		sortErr = fmt.Errorf("failed flushing buffer pool: %w", closeErr)
	}
	if sortErr != nil {
		return nil, sortErr
	}

	result := &Result{
		Path:       path,
		Records:    records,
		NumBuffers: opts.NumBuffers,
		Stats:      pool.Stats(),
		Elapsed:    elapsed,
	}
	logger.WithFields(log.Fields{
		"hits":    result.Stats.CacheHits,
		"misses":  result.Stats.CacheMisses,
		"reads":   result.Stats.DiskReads,
		"writes":  result.Stats.DiskWrites,
		"elapsed": elapsed,
	}).Info("heapsort complete")

	if opts.Verify {
		if err := check(path, before); err != nil {
			return nil, err
		}
		result.Digest = &before
	}

	if opts.StatFile != "" {
		if err := report.WriteFile(opts.StatFile, result.Summary()); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func heapsort(pool *buffer.Pool, records int64) (time.Duration, error) {
	start := time.Now()

	h, err := heap.New(pool, records)
	if err != nil {
		return 0, fmt.Errorf("could not build heap: %w", err)
	}

	if err := h.Sort(); err != nil {
		return 0, fmt.Errorf("heapsort failed: %w", err)
	}

	return time.Since(start), nil
}

func check(path string, before verify.Digest) error {
	if err := verify.CheckSortedFile(path); err != nil {
		return fmt.Errorf("sorted file failed verification: %w", err)
	}

	after, err := verify.DigestFile(path)
	if err != nil {
		return fmt.Errorf("failed computing digest after sort: %w", err)
	}

	if err := verify.Compare(before, after); err != nil {
		return fmt.Errorf("sorted file failed verification: %w", err)
	}

	return nil
}
