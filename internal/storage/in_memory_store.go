package storage

import "fmt"

// MemoryStore is a RecordStore backed by a plain slice. Useful for testing anything that
// consumes a RecordStore without touching disk
type MemoryStore struct {
	records []Record
}

var _ RecordStore = &MemoryStore{}

func NewMemoryStore(records []Record) *MemoryStore {
	dup := make([]Record, len(records))
	copy(dup, records)

	return &MemoryStore{records: dup}
}

func (m *MemoryStore) KeyOf(recNum int64) (int16, error) {
	rec, err := m.GetRecord(recNum)
	if err != nil {
		return 0, err
	}

	return rec.Key(), nil
}

func (m *MemoryStore) GetRecord(recNum int64) (Record, error) {
	if err := m.check(recNum); err != nil {
		return Record{}, err
	}

	return m.records[recNum], nil
}

func (m *MemoryStore) SetRecord(recNum int64, rec Record) error {
	if err := m.check(recNum); err != nil {
		return err
	}
	m.records[recNum] = rec

	return nil
}

// Records returns a copy of the current contents of the store
func (m *MemoryStore) Records() []Record {
	dup := make([]Record, len(m.records))
	copy(dup, m.records)

	return dup
}

func (m *MemoryStore) check(recNum int64) error {
	if recNum < 0 || recNum >= int64(len(m.records)) {
		return fmt.Errorf("record %d out of range [0, %d)", recNum, len(m.records))
	}

	return nil
}
