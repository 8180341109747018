package buffer

import "encoding/binary"

// BlockSize is the unit of disk I/O and the size of every buffer in the pool. It is a multiple
// of storage.RecordSize so a record never spans two blocks
const BlockSize = 4096

// Block is a fixed size window over the data file. Its bytes are only ever overwritten in place
type Block struct {
	data [BlockSize]byte
}

// Int16 decodes the little endian 16 bit value starting at off
func (b *Block) Int16(off int) int16 {
	return int16(binary.LittleEndian.Uint16(b.data[off : off+2]))
}

// Read copies len(dst) bytes starting at off into dst
func (b *Block) Read(off int, dst []byte) {
	copy(dst, b.data[off:off+len(dst)])
}

// Write overwrites len(src) bytes starting at off with src
func (b *Block) Write(off int, src []byte) {
	copy(b.data[off:off+len(src)], src)
}

func (b *Block) reset() {
	b.data = [BlockSize]byte{}
}
