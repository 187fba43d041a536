package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectInputFormat(t *testing.T) {
	tests := []struct {
		path string
		want InputFormat
	}{
		{"pa.csv", FormatCSV},
		{"PA.CSV", FormatCSV},
		{"masterdata.xlsx", FormatXLSX},
		{"Masterdata.XLSX", FormatXLSX},
		{"macro.xlsm", FormatXLSX},
		{"export.txt", FormatCSV},
		{"noext", FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectInputFormat(tt.path))
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte("[]\n"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	// Replacing keeps a single file and no temp leftovers.
	require.NoError(t, WriteFileAtomic(path, []byte("[1]\n"), 0644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[1]\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_FailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	// A directory cannot be renamed over by a file.
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0644))

	err := WriteFileAtomic(target, []byte("new"), 0644)
	assert.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}
