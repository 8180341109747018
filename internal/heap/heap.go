package heap

import (
	"errors"
	"fmt"

	"github.com/nbroyles/extheap/internal/storage"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrEmptyHeap is returned when removing from a heap with no members
	ErrEmptyHeap = &PreconditionError{Op: "remove max", msg: "heap is empty"}
	// ErrFullHeap is returned when inserting into a heap already at capacity
	ErrFullHeap = &PreconditionError{Op: "insert", msg: "heap is full"}
)

// PreconditionError reports a heap operation invoked outside of its preconditions
type PreconditionError struct {
	Op  string
	msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.msg)
}

// MaxHeap is an array based max heap where the array is a RecordStore. Member i has children
// 2i+1 and 2i+2. Every comparison and swap is a request to the store, so the heap never holds
// a record for longer than a single swap.
//
// Positions [0, n) are heap members. Positions [n, capacity) hold records already removed from
// the heap, which after Sort is the sorted output.
type MaxHeap struct {
	store    storage.RecordStore
	n        int64
	capacity int64
	swaps    uint64
}

// New builds a max heap over the first size records of store
func New(store storage.RecordStore, size int64) (*MaxHeap, error) {
	return NewWithCapacity(store, size, size)
}

// NewWithCapacity builds a max heap over the first n records of store, leaving room to insert
// records up to capacity
func NewWithCapacity(store storage.RecordStore, n int64, capacity int64) (*MaxHeap, error) {
	if n < 0 || n > capacity {
		return nil, &PreconditionError{Op: "new", msg: fmt.Sprintf("invalid heap size %d for capacity %d", n, capacity)}
	}

	h := &MaxHeap{store: store, n: n, capacity: capacity}
	if err := h.BuildHeap(); err != nil {
		return nil, fmt.Errorf("failed building heap: %w", err)
	}

	return h, nil
}

// HeapSize returns the number of records currently in the heap
func (h *MaxHeap) HeapSize() int64 {
	return h.n
}

func (h *MaxHeap) Capacity() int64 {
	return h.capacity
}

// Swaps returns the number of record swaps performed so far
func (h *MaxHeap) Swaps() uint64 {
	return h.swaps
}

// IsLeaf returns true if pos is a member with no children
func (h *MaxHeap) IsLeaf(pos int64) bool {
	return pos >= h.n/2 && pos < h.n
}

func (h *MaxHeap) LeftChild(pos int64) int64 {
	if pos < 0 || pos >= h.n/2 {
		log.Panicf("position %d has no left child in heap of size %d", pos, h.n)
	}

	return 2*pos + 1
}

func (h *MaxHeap) RightChild(pos int64) int64 {
	if pos < 0 || pos >= (h.n-1)/2 {
		log.Panicf("position %d has no right child in heap of size %d", pos, h.n)
	}

	return 2*pos + 2
}

func (h *MaxHeap) Parent(pos int64) int64 {
	if pos <= 0 || pos >= h.n {
		log.Panicf("position %d has no parent in heap of size %d", pos, h.n)
	}

	return (pos - 1) / 2
}

// BuildHeap establishes the heap property over every member
func (h *MaxHeap) BuildHeap() error {
	for i := h.n/2 - 1; i >= 0; i-- {
		if err := h.siftDown(i); err != nil {
			return err
		}
	}

	return nil
}

// RemoveMax moves the largest member to the end of the heap, shrinks the heap by one and
// returns the removed record
func (h *MaxHeap) RemoveMax() (storage.Record, error) {
	if h.n == 0 {
		return storage.Record{}, ErrEmptyHeap
	}

	h.n--
	if err := h.swap(0, h.n); err != nil {
		return storage.Record{}, err
	}

	if h.n != 0 {
		if err := h.siftDown(0); err != nil {
			return storage.Record{}, err
		}
	}

	return h.store.GetRecord(h.n)
}

// Insert adds rec at the end of the heap and sifts it up to its place
func (h *MaxHeap) Insert(rec storage.Record) error {
	if h.n >= h.capacity {
		return ErrFullHeap
	}

	curr := h.n
	if err := h.store.SetRecord(curr, rec); err != nil {
		return err
	}
	h.n++

	// Sift up until curr's parent has a key >= curr's key
	for curr != 0 {
		parent := h.Parent(curr)

		greater, err := h.keyGreater(curr, parent)
		if err != nil {
			return err
		} else if !greater {
			break
		}

		if err := h.swap(curr, parent); err != nil {
			return err
		}
		curr = parent
	}

	return nil
}

// Sort removes every member in turn. Each removal leaves the current maximum right after the
// shrinking heap, so afterwards the records that were members are in ascending key order
func (h *MaxHeap) Sort() error {
	for count := h.n; count > 0; count-- {
		if _, err := h.RemoveMax(); err != nil {
			return fmt.Errorf("failed removing max with %d records left: %w", h.n, err)
		}
	}

	return nil
}

func (h *MaxHeap) siftDown(pos int64) error {
	if pos < 0 || pos >= h.n {
		log.Panicf("illegal heap position %d in heap of size %d", pos, h.n)
	}

	for !h.IsLeaf(pos) {
		j := h.LeftChild(pos)
		if j < h.n-1 {
			// Strictly less so equal children resolve to the left one
			less, err := h.keyLess(j, j+1)
			if err != nil {
				return err
			} else if less {
				j++
			}
		}

		less, err := h.keyLess(pos, j)
		if err != nil {
			return err
		} else if !less {
			return nil
		}

		if err := h.swap(pos, j); err != nil {
			return err
		}
		pos = j
	}

	return nil
}

// keyLess returns true if key(i) < key(j)
func (h *MaxHeap) keyLess(i, j int64) (bool, error) {
	ki, err := h.store.KeyOf(i)
	if err != nil {
		return false, fmt.Errorf("failed reading key %d: %w", i, err)
	}

	kj, err := h.store.KeyOf(j)
	if err != nil {
		return false, fmt.Errorf("failed reading key %d: %w", j, err)
	}

	return ki < kj, nil
}

func (h *MaxHeap) keyGreater(i, j int64) (bool, error) {
	return h.keyLess(j, i)
}

// swap exchanges whole records so payloads travel with their keys
func (h *MaxHeap) swap(i, j int64) error {
	if i == j {
		return nil
	}

	ri, err := h.store.GetRecord(i)
	if err != nil {
		return fmt.Errorf("failed reading record %d: %w", i, err)
	}

	rj, err := h.store.GetRecord(j)
	if err != nil {
		return fmt.Errorf("failed reading record %d: %w", j, err)
	}

	if err := h.store.SetRecord(i, rj); err != nil {
		return fmt.Errorf("failed writing record %d: %w", i, err)
	}

	if err := h.store.SetRecord(j, ri); err != nil {
		return fmt.Errorf("failed writing record %d: %w", j, err)
	}

	h.swaps++

	return nil
}

// IsPrecondition returns true if err reports a heap precondition violation
func IsPrecondition(err error) bool {
	var pErr *PreconditionError
	return errors.As(err, &pErr)
}
