package test

import (
	"fmt"
	"os"
	"testing"

	"github.com/nbroyles/extheap/internal/storage"
	"github.com/stretchr/testify/assert"
)

// SampleRecords is a four record file small enough to trace by hand
func SampleRecords() []storage.Record {
	return []storage.Record{
		storage.NewRecord(3, 30),
		storage.NewRecord(1, 10),
		storage.NewRecord(4, 40),
		storage.NewRecord(2, 20),
	}
}

// SortedSampleRecords is SampleRecords in ascending key order
func SortedSampleRecords() []storage.Record {
	return []storage.Record{
		storage.NewRecord(1, 10),
		storage.NewRecord(2, 20),
		storage.NewRecord(3, 30),
		storage.NewRecord(4, 40),
	}
}

func FileExists(t *testing.T, path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	} else if err == nil {
		return true
	}

	assert.FailNow(t, fmt.Sprintf("failed attempting to check if %s exists", path))

	return false
}
