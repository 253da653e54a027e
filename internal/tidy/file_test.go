package tidy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
	}{
		{"out/tidy.csv", "", FormatCSV},
		{"out/tidy.arrow", "auto", FormatArrow},
		{"out/tidy.FEATHER", "", FormatArrow},
		{"out/tidy.ipc", "", FormatArrow},
		{"out/tidy.txt", "", FormatCSV},
		{"out/tidy.csv", "arrow", FormatArrow},
		{"out/tidy.arrow", "CSV", FormatCSV},
	}
	for _, tt := range tests {
		got, err := ResolveFormat(tt.path, tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.path, tt.format)
	}

	_, err := ResolveFormat("x.csv", "parquet")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "processed", "tidy.csv")

	require.NoError(t, WriteFile(path, "", sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), Header+"\n")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFile_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tidy.arrow")

	require.NoError(t, WriteFile(path, "", sampleRecords()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tidy.arrow", entries[0].Name())
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tidy.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteFile(path, FormatCSV, sampleRecords()[:1]))

	got, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords()[:1], got)
}

func TestWriteFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tidy.csv", "tidy.arrow"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, "", sampleRecords()))
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, WriteFile(path, "", sampleRecords()))
		second, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, first, second, name)
	}
}

func TestReadFile_BothFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tidy.csv", "tidy.arrow"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, "", sampleRecords()))

		got, err := ReadFile(path, "")
		require.NoError(t, err)
		assert.Equal(t, sampleRecords(), got, name)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
