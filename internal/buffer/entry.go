package buffer

// unassigned marks an entry that has not been loaded with any block yet
const unassigned int64 = -1

// entry pairs a Block with the file offset it was loaded from. An entry exclusively owns its
// block; nothing outside the pool holds a reference to it
type entry struct {
	block      Block
	blockStart int64
	// length is the number of valid bytes in block. Only short for the last block of a file
	length int
	dirty  bool
}

func newEntry() *entry {
	return &entry{blockStart: unassigned}
}

// contains returns true if the byte at offset falls inside this entry's block
func (e *entry) contains(offset int64) bool {
	return e.blockStart != unassigned && e.blockStart <= offset && offset < e.blockStart+BlockSize
}

// alignedStart returns the aligned start of the block holding the byte at offset
func alignedStart(offset int64) int64 {
	return (offset / BlockSize) * BlockSize
}
