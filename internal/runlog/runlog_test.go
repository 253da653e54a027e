package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:    testTime,
		RunID:        "6f1c2a7e-2b1e-4d8e-9f55-0c7f4b3f6a10",
		Input:        "data/raw/table_1.csv",
		Output:       "data/processed/manufacturing_clean.csv",
		Records:      8,
		RowsSkipped:  1,
		CellsSkipped: 2,
		Duplicates:   0,
	}
}

func TestAppend_NewFileInNewDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "runs.csv")
	require.NoError(t, Append(path, testEntry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testEntry(), entries[0])
}

func TestAppend_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, Append(path, testEntry()))

	e2 := testEntry()
	e2.RunID = "second"
	e2.Duplicates = 3
	require.NoError(t, Append(path, e2))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, testEntry().RunID, entries[0].RunID)
	assert.Equal(t, "second", entries[1].RunID)
	assert.Equal(t, 3, entries[1].Duplicates)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,run_id"))
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "runs.csv"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o644))

	entries, err := Read(path)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "few"})
	assert.ErrorContains(t, err, "expected 8 fields")

	row := MarshalEntry(testEntry())
	row[colTimestamp] = "yesterday"
	_, err = UnmarshalEntry(row)
	assert.ErrorContains(t, err, "parsing timestamp")

	row = MarshalEntry(testEntry())
	row[colRecords] = "many"
	_, err = UnmarshalEntry(row)
	assert.ErrorContains(t, err, "parsing count")
}

func TestMarshalEntry_UTC(t *testing.T) {
	e := testEntry()
	e.Timestamp = testTime.In(time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2026-03-02T09:15:00Z", MarshalEntry(e)[colTimestamp])
}
