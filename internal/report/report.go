package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nbroyles/extheap/internal/buffer"
)

// Summary is everything the stat file reports about one sort
type Summary struct {
	DataFile   string
	NumBuffers int
	Records    int64
	Stats      buffer.Stats
	Elapsed    time.Duration
}

// Write writes a human readable report of s to w
func Write(w io.Writer, s Summary) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "Data file:     %s\n", s.DataFile)
	fmt.Fprintf(out, "Records:       %d\n", s.Records)
	fmt.Fprintf(out, "Buffers:       %d\n", s.NumBuffers)
	fmt.Fprintf(out, "Cache hits:    %d\n", s.Stats.CacheHits)
	fmt.Fprintf(out, "Cache misses:  %d\n", s.Stats.CacheMisses)
	fmt.Fprintf(out, "Disk reads:    %d\n", s.Stats.DiskReads)
	fmt.Fprintf(out, "Disk writes:   %d\n", s.Stats.DiskWrites)
	fmt.Fprintf(out, "Heapsort completed in %d ms.\n", s.Elapsed.Milliseconds())

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed writing stats report: %w", err)
	}

	return nil
}

// WriteFile writes the report for s to path, replacing anything already there
func WriteFile(path string, s Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create stat file %s: %w", path, err)
	}

	if err := Write(file, s); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
