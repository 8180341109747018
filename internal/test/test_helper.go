package test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbroyles/extheap/internal/storage"
	"github.com/stretchr/testify/require"
)

// WriteDataFile writes records to a new data file under a temp dir and returns its path
func WriteDataFile(t *testing.T, records []storage.Record) string {
	path := filepath.Join(t.TempDir(), "data.bin")

	codec := storage.Codec{}
	require.NoError(t, os.WriteFile(path, codec.Encode(records), 0644))

	return path
}

// ReadDataFile returns every record in the data file at path
func ReadDataFile(t *testing.T, path string) []storage.Record {
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	codec := storage.Codec{}
	records, err := codec.Decode(data)
	require.NoError(t, err)

	return records
}

// RandomRecords returns n records with keys spread over the full int16 range, negatives and
// duplicates included. Payloads hold the record's original position
func RandomRecords(n int, seed int64) []storage.Record {
	rnd := rand.New(rand.NewSource(seed))

	records := make([]storage.Record, n)
	for i := range records {
		records[i] = storage.NewRecord(int16(rnd.Intn(1<<16)-(1<<15)), int16(i))
	}

	return records
}

// FewKeys returns n records whose keys come from a tiny range so duplicates are everywhere
func FewKeys(n int, seed int64) []storage.Record {
	rnd := rand.New(rand.NewSource(seed))

	records := make([]storage.Record, n)
	for i := range records {
		records[i] = storage.NewRecord(int16(rnd.Intn(5)-2), int16(i))
	}

	return records
}

// KeyCounts returns how many times each (key, payload) pair occurs in records
func KeyCounts(records []storage.Record) map[storage.Record]int {
	counts := make(map[storage.Record]int, len(records))
	for _, rec := range records {
		counts[rec]++
	}

	return counts
}

// AssertSorted fails the test if the keys of records are not non-decreasing
func AssertSorted(t *testing.T, records []storage.Record) {
	for i := 1; i < len(records); i++ {
		if records[i-1].Key() > records[i].Key() {
			require.FailNowf(t, "records not sorted", "key at %d (%d) > key at %d (%d)",
				i-1, records[i-1].Key(), i, records[i].Key())
		}
	}
}
