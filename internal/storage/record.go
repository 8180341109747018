package storage

import (
	"encoding/binary"
	"fmt"
)

const (
	// RecordSize is the on-disk width of a record: a 2 byte key followed by a 2 byte payload
	RecordSize    = 4
	keyOffset     = 0
	payloadOffset = 2
)

// Record is the in-memory representation of a single record in a data file. Both halves are
// stored little endian, exactly as they appear on disk
type Record [RecordSize]byte

func NewRecord(key int16, payload int16) Record {
	var rec Record
	binary.LittleEndian.PutUint16(rec[keyOffset:], uint16(key))
	binary.LittleEndian.PutUint16(rec[payloadOffset:], uint16(payload))

	return rec
}

// RecordFromBytes copies data into a Record. Fails if data is not exactly RecordSize bytes long
func RecordFromBytes(data []byte) (Record, error) {
	var rec Record
	if len(data) != RecordSize {
		return rec, fmt.Errorf("record must be %d bytes, got %d", RecordSize, len(data))
	}
	copy(rec[:], data)

	return rec, nil
}

// Key returns the sort key of the record
func (r Record) Key() int16 {
	return int16(binary.LittleEndian.Uint16(r[keyOffset:]))
}

// Payload returns the opaque half of the record that travels with the key
func (r Record) Payload() int16 {
	return int16(binary.LittleEndian.Uint16(r[payloadOffset:]))
}

func (r Record) String() string {
	return fmt.Sprintf("(%d,%d)", r.Key(), r.Payload())
}

// Offset returns the byte offset of record number recNum in a data file
func Offset(recNum int64) int64 {
	return recNum * RecordSize
}
