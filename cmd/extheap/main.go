package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nbroyles/extheap/pkg"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "extheap: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	flags := flag.NewFlagSet("extheap", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "extheap - sort a file of 4 byte records through a buffer pool\n\n")
		fmt.Fprintf(flags.Output(), "Usage: extheap [options] <data-file> <num-buffers> <stat-file>\n\n")
		fmt.Fprintf(flags.Output(), "Each record is a 2 byte little endian key followed by a 2 byte payload.\n")
		fmt.Fprintf(flags.Output(), "The data file is sorted in place by key and statistics are written to stat-file.\n\n")
		fmt.Fprintf(flags.Output(), "Options:\n")
		flags.PrintDefaults()
	}

	verifyOutput := flags.Bool("verify", false, "Check that the output is sorted and a permutation of the input")
	bestEffort := flags.Bool("best-effort", false, "Log block I/O failures and continue instead of aborting")
	logLevel := flags.String("log-level", "warn", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 3 {
		flags.Usage()
		return fmt.Errorf("expected 3 arguments, got %d", flags.NArg())
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(stderr)

	numBuffers, err := strconv.Atoi(flags.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid number of buffers %q: %w", flags.Arg(1), err)
	}

	opts := pkg.DefaultOptions()
	opts.NumBuffers = numBuffers
	opts.BestEffortIO = *bestEffort
	opts.Verify = *verifyOutput
	opts.StatFile = flags.Arg(2)

	result, err := pkg.Sort(flags.Arg(0), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "sorted %d records in %d ms (hits=%d misses=%d reads=%d writes=%d)\n",
		result.Records, result.Elapsed.Milliseconds(), result.Stats.CacheHits, result.Stats.CacheMisses,
		result.Stats.DiskReads, result.Stats.DiskWrites)

	return nil
}
