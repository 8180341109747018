package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbroyles/extheap/internal/buffer"
	"github.com/nbroyles/extheap/internal/storage"
	helper "github.com/nbroyles/extheap/internal/test"
	"github.com/nbroyles/extheap/internal/util"
	"github.com/nbroyles/extheap/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_Sample(t *testing.T) {
	path := helper.WriteDataFile(t, test.SampleRecords())

	result, err := Sort(path, Options{NumBuffers: 2})
	require.NoError(t, err)

	assert.Equal(t, test.SortedSampleRecords(), helper.ReadDataFile(t, path))
	assert.Equal(t, int64(4), result.Records)
	assert.Equal(t, 2, result.NumBuffers)

	// One block holds the whole file: a single load, every later request a hit,
	// and one write-back when the pool is flushed
	assert.Equal(t, buffer.Stats{CacheHits: 43, CacheMisses: 1, DiskReads: 1, DiskWrites: 1}, result.Stats)
	assert.Nil(t, result.Digest)
}

func TestSort_ManyBlocks(t *testing.T) {
	for _, numBuffers := range []int{1, 2, 4} {
		records := helper.RandomRecords(5*1024+3, int64(numBuffers))
		path := helper.WriteDataFile(t, records)

		result, err := Sort(path, Options{NumBuffers: numBuffers, Verify: true})
		require.NoError(t, err)
		require.NotNil(t, result.Digest)
		assert.Equal(t, int64(len(records)), result.Digest.Records)

		sorted := helper.ReadDataFile(t, path)
		helper.AssertSorted(t, sorted)
		assert.Equal(t, helper.KeyCounts(records), helper.KeyCounts(sorted))

		// Six blocks never fit, so blocks get evicted and loaded again
		assert.Greater(t, result.Stats.DiskReads, uint64(6))
		assert.Greater(t, result.Stats.DiskWrites, uint64(0))
		assert.LessOrEqual(t, result.Stats.DiskWrites, result.Stats.DiskReads+uint64(numBuffers))
		assert.Equal(t, result.Stats.DiskReads, result.Stats.CacheMisses)
	}
}

func TestSort_Duplicates(t *testing.T) {
	records := helper.FewKeys(3000, 8)
	path := helper.WriteDataFile(t, records)

	_, err := Sort(path, Options{NumBuffers: 1, Verify: true})
	require.NoError(t, err)

	sorted := helper.ReadDataFile(t, path)
	helper.AssertSorted(t, sorted)
	assert.Equal(t, helper.KeyCounts(records), helper.KeyCounts(sorted))
}

func TestSort_Idempotent(t *testing.T) {
	path := helper.WriteDataFile(t, test.SortedSampleRecords())

	_, err := Sort(path, Options{NumBuffers: 1})
	require.NoError(t, err)
	assert.Equal(t, test.SortedSampleRecords(), helper.ReadDataFile(t, path))

	// Sorting a sorted file again gives the same file
	_, err = Sort(path, Options{NumBuffers: 3})
	require.NoError(t, err)
	assert.Equal(t, test.SortedSampleRecords(), helper.ReadDataFile(t, path))
}

func TestSort_Empty(t *testing.T) {
	path := helper.WriteDataFile(t, nil)

	result, err := Sort(path, Options{NumBuffers: 1, Verify: true})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.Records)
	assert.Equal(t, buffer.Stats{}, result.Stats)
}

func TestSort_SingleRecord(t *testing.T) {
	path := helper.WriteDataFile(t, []storage.Record{storage.NewRecord(-7, 3)})

	result, err := Sort(path, Options{NumBuffers: 1})
	require.NoError(t, err)

	assert.Equal(t, []storage.Record{storage.NewRecord(-7, 3)}, helper.ReadDataFile(t, path))
	assert.Equal(t, buffer.Stats{CacheMisses: 1, DiskReads: 1}, result.Stats)
}

func TestSort_StatFile(t *testing.T) {
	path := helper.WriteDataFile(t, test.SampleRecords())
	statFile := filepath.Join(t.TempDir(), "stats.txt")

	_, err := Sort(path, Options{NumBuffers: 2, StatFile: statFile})
	require.NoError(t, err)
	require.True(t, test.FileExists(t, statFile))

	data, err := os.ReadFile(statFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), path)
	assert.Contains(t, string(data), "Cache hits:    43")
}

func TestSort_InvalidFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 0, 1, 0, 1}, 0644))

	_, err := Sort(path, DefaultOptions())
	assert.True(t, errors.Is(err, util.ErrInvalidFileSize))
}

func TestSort_MissingFile(t *testing.T) {
	_, err := Sort(filepath.Join(t.TempDir(), "missing.bin"), DefaultOptions())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.Equal(t, DefaultNumBuffers, DefaultOptions().NumBuffers)

	err := Options{NumBuffers: 0}.Validate()
	assert.EqualError(t, err, "invalid configuration: number of buffers must be positive, got 0")

	_, err = Sort("unused", Options{NumBuffers: -1})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
