package buffer

import (
	"fmt"
	"io"

	"github.com/nbroyles/extheap/internal/storage"
	"github.com/nbroyles/extheap/internal/util"
	log "github.com/sirupsen/logrus"
)

// backingFile is the subset of *os.File the pool needs
type backingFile interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// Pool is a fixed capacity cache of blocks over a data file. All record reads and writes made
// against the file go through the pool, which loads blocks on a miss and writes dirty blocks
// back before reusing their buffer.
//
// Entries are kept in load order, newest first. A miss on a full pool evicts the entry at the
// back, i.e. the block fetched longest ago. A hit does not move an entry, so despite behaving
// like an LRU for a single pass this is FIFO by first fetch among resident blocks. Counters
// reported by the pool depend on that policy, so keep it.
//
// Pool is not threadsafe.
type Pool struct {
	path       string
	file       backingFile
	numBuffers int
	bestEffort bool
	logger     log.FieldLogger

	// entries is ordered front (most recently loaded) to back (least recently loaded)
	entries []*entry
	index   map[int64]*entry

	stats Stats
}

var _ storage.RecordStore = &Pool{}

// Option configures optional Pool behavior
type Option func(*Pool)

// WithBestEffortIO makes the pool log read and write failures and carry on with whatever
// partial data resulted instead of returning an *IOError
func WithBestEffortIO(bestEffort bool) Option {
	return func(p *Pool) {
		p.bestEffort = bestEffort
	}
}

// WithLogger sets the logger used by the pool. Defaults to the logrus standard logger
func WithLogger(logger log.FieldLogger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// Open opens the data file at path for reading and writing and returns a pool of numBuffers
// blocks over it. Failing to open the file returns a *FileOpenError
func Open(path string, numBuffers int, opts ...Option) (*Pool, error) {
	if numBuffers < 1 {
		return nil, fmt.Errorf("%w: number of buffers must be positive, got %d", ErrInvalidConfig, numBuffers)
	}

	file, err := util.OpenDataFile(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}

	return newPool(path, file, numBuffers, opts...), nil
}

func newPool(path string, file backingFile, numBuffers int, opts ...Option) *Pool {
	p := &Pool{
		path:       path,
		file:       file,
		numBuffers: numBuffers,
		logger:     log.StandardLogger(),
		entries:    make([]*entry, 0, numBuffers),
		index:      make(map[int64]*entry, numBuffers),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.WithFields(log.Fields{"file": path, "numBuffers": numBuffers})

	return p
}

// KeyOf returns the key of record recNum
func (p *Pool) KeyOf(recNum int64) (int16, error) {
	e, pos, err := p.resolve(recNum)
	if err != nil {
		return 0, err
	}

	return e.block.Int16(pos), nil
}

// GetRecord returns a copy of record recNum
func (p *Pool) GetRecord(recNum int64) (storage.Record, error) {
	var rec storage.Record

	e, pos, err := p.resolve(recNum)
	if err != nil {
		return rec, err
	}
	e.block.Read(pos, rec[:])

	return rec, nil
}

// SetRecord overwrites record recNum in its block and marks the block dirty. The change reaches
// the file when the block is evicted or the pool is flushed
func (p *Pool) SetRecord(recNum int64, rec storage.Record) error {
	e, pos, err := p.resolve(recNum)
	if err != nil {
		return err
	}

	e.block.Write(pos, rec[:])
	e.dirty = true
	if pos+storage.RecordSize > e.length {
		e.length = pos + storage.RecordSize
	}

	return nil
}

// SetRecordBytes is SetRecord for callers holding a raw byte slice, which must be exactly
// storage.RecordSize bytes long
func (p *Pool) SetRecordBytes(recNum int64, data []byte) error {
	rec, err := storage.RecordFromBytes(data)
	if err != nil {
		return fmt.Errorf("could not set record %d: %w", recNum, err)
	}

	return p.SetRecord(recNum, rec)
}

// Flush writes every dirty resident block back to the file. Calling it again without further
// writes does nothing
func (p *Pool) Flush() error {
	var firstErr error
	for _, e := range p.entries {
		if !e.dirty {
			continue
		}

		if err := p.writeBack(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// Close flushes the pool and closes the data file. The pool cannot be used afterwards
func (p *Pool) Close() error {
	flushErr := p.Flush()
	if err := p.file.Close(); err != nil {
		return fmt.Errorf("failed closing data file %s: %w", p.path, err)
	}

	return flushErr
}

// Resident returns the start offsets of the resident blocks, front (newest) to back (oldest)
func (p *Pool) Resident() []int64 {
	starts := make([]int64, 0, len(p.entries))
	for _, e := range p.entries {
		starts = append(starts, e.blockStart)
	}

	return starts
}

func (p *Pool) Path() string {
	return p.path
}

func (p *Pool) NumBuffers() int {
	return p.numBuffers
}

// resolve returns the entry holding recNum, loading its block on a miss, along with the
// position of the record inside the block
func (p *Pool) resolve(recNum int64) (*entry, int, error) {
	if recNum < 0 {
		return nil, 0, fmt.Errorf("invalid record number %d", recNum)
	}

	offset := storage.Offset(recNum)
	start := alignedStart(offset)

	if e, ok := p.index[start]; ok {
		if !e.contains(offset) {
			log.Panicf("entry indexed at %d holds block %d. this should not happen!", start, e.blockStart)
		}
		p.stats.CacheHits++
		return e, int(offset - e.blockStart), nil
	}

	p.stats.CacheMisses++
	e, err := p.load(start)
	if err != nil {
		return nil, 0, err
	}

	return e, int(offset - e.blockStart), nil
}

// load brings the block starting at start into the pool, evicting the back entry if the pool
// is full, and places it at the front
func (p *Pool) load(start int64) (*entry, error) {
	var e *entry
	if len(p.entries) >= p.numBuffers {
		victim := p.entries[len(p.entries)-1]
		if victim.dirty {
			if err := p.writeBack(victim); err != nil {
				return nil, err
			}
		}

		p.logger.WithField("block", victim.blockStart).Debug("evicting block")
		p.entries = p.entries[:len(p.entries)-1]
		delete(p.index, victim.blockStart)

		e = victim
		e.block.reset()
		e.blockStart = unassigned
		e.length = 0
	} else {
		e = newEntry()
	}

	p.stats.DiskReads++
	n, err := p.file.ReadAt(e.block.data[:], start)
	if err != nil && err != io.EOF {
		ioErr := &IOError{Op: "read", Offset: start, Err: err}
		if !p.bestEffort {
			return nil, ioErr
		}
		p.logger.WithField("block", start).Errorf("continuing with partial block: %v", ioErr)
	}

	e.blockStart = start
	e.length = n
	e.dirty = false

	p.entries = append(p.entries, nil)
	copy(p.entries[1:], p.entries)
	p.entries[0] = e
	p.index[start] = e

	p.logger.WithFields(log.Fields{"block": start, "bytes": n}).Debug("loaded block")

	return e, nil
}

// writeBack writes the valid bytes of a dirty entry to the file and clears its dirty flag.
// On failure the entry stays dirty unless the pool is best effort
func (p *Pool) writeBack(e *entry) error {
	p.stats.DiskWrites++
	if err := util.WriteAt(p.file, e.block.data[:e.length], e.blockStart); err != nil {
		ioErr := &IOError{Op: "write", Offset: e.blockStart, Err: err}
		if !p.bestEffort {
			return ioErr
		}
		p.logger.WithField("block", e.blockStart).Errorf("dropping unwritten block: %v", ioErr)
	}

	e.dirty = false
	p.logger.WithFields(log.Fields{"block": e.blockStart, "bytes": e.length}).Debug("wrote block")

	return nil
}
