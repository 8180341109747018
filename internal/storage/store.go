package storage

// RecordStore is the capability a heap needs from whatever holds its records. Records are
// addressed by zero based record number; implementations translate that to their own layout.
// Implementations are not expected to be threadsafe
type RecordStore interface {
	// KeyOf returns the key of the record at recNum
	KeyOf(recNum int64) (int16, error)

	// GetRecord returns a copy of the record at recNum
	GetRecord(recNum int64) (Record, error)

	// SetRecord overwrites the record at recNum
	SetRecord(recNum int64, rec Record) error
}
