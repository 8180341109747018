package main

import (
	"bytes"
	"path/filepath"
	"testing"

	helper "github.com/nbroyles/extheap/internal/test"
	"github.com/nbroyles/extheap/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	path := helper.WriteDataFile(t, test.SampleRecords())
	statFile := filepath.Join(t.TempDir(), "stats.txt")

	stdout := bytes.Buffer{}
	err := run([]string{"-verify", path, "2", statFile}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "sorted 4 records")
	assert.Contains(t, stdout.String(), "hits=43 misses=1 reads=1 writes=1")
	assert.True(t, test.FileExists(t, statFile))
	assert.Equal(t, test.SortedSampleRecords(), helper.ReadDataFile(t, path))
}

func TestRun_BadArguments(t *testing.T) {
	path := helper.WriteDataFile(t, test.SampleRecords())
	statFile := filepath.Join(t.TempDir(), "stats.txt")

	cases := map[string][]string{
		"missing args":  {path, "2"},
		"bad buffers":   {path, "two", statFile},
		"zero buffers":  {path, "0", statFile},
		"bad log level": {"-log-level", "loud", path, "2", statFile},
		"missing file":  {path + ".missing", "2", statFile},
		"unknown flag":  {"-nope", path, "2", statFile},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, run(args, &bytes.Buffer{}, &bytes.Buffer{}))
		})
	}

	assert.False(t, test.FileExists(t, statFile))
}
