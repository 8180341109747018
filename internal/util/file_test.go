package util

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")

	_, err := OpenDataFile(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, os.WriteFile(path, []byte{1, 0, 2, 0}, 0644))
	file, err := OpenDataFile(path)
	require.NoError(t, err)
	defer file.Close()

	assert.NoError(t, WriteAt(file, []byte{9, 0}, 2))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 9, 0}, data)
}

func TestRecordCount(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.bin")
	require.NoError(t, os.WriteFile(good, bytes.Repeat([]byte{1}, 12), 0644))
	count, err := RecordCount(good)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	count, err = RecordCount(empty)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	bad := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(bad, []byte{1, 2, 3, 4, 5}, 0644))
	_, err = RecordCount(bad)
	assert.True(t, errors.Is(err, ErrInvalidFileSize))

	_, err = RecordCount(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)
}
