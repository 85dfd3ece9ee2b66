package unwrapdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fieldmap/internal/unwrap"
)

func openTestDB(t *testing.T) *UnwrapDB {
	t.Helper()
	db, err := NewUnwrapDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRun_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	stats := unwrap.Stats{
		Seed:         [3]int{31, 31, 15},
		Bins:         []unwrap.BinStats{{Expanded: 100, Deferred: 3}, {}, {Expanded: 28, Deferred: 1}},
		Expanded:     128,
		Deferred:     4,
		QueueGrowths: 1,
	}
	runID, err := db.RecordRun("scan-017.f32", [3]int{64, 64, 32}, stats, 42*time.Millisecond, "")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, runID, got.RunID)
	assert.Equal(t, "scan-017.f32", got.SourcePath)
	assert.Equal(t, [3]int{64, 64, 32}, got.Dims)
	assert.Equal(t, 3, got.Bins)
	assert.Equal(t, [3]int{31, 31, 15}, got.Seed)
	assert.Equal(t, 128, got.VoxelsExpanded)
	assert.Equal(t, 4, got.Deferrals)
	assert.Equal(t, 1, got.QueueGrowths)
	assert.Equal(t, 42*time.Millisecond, got.Duration)
	assert.Empty(t, got.Error)
}

func TestRecordRun_BinStatsSkipEmpty(t *testing.T) {
	db := openTestDB(t)

	stats := unwrap.Stats{
		Bins: []unwrap.BinStats{{Expanded: 5}, {}, {Expanded: 2, Deferred: 7}},
	}
	runID, err := db.RecordRun("", [3]int{2, 2, 2}, stats, 0, "")
	require.NoError(t, err)

	bins, err := db.BinStats(runID)
	require.NoError(t, err)
	assert.Equal(t, map[int]unwrap.BinStats{
		0: {Expanded: 5},
		2: {Expanded: 2, Deferred: 7},
	}, bins)
}

func TestRecordRun_StoresError(t *testing.T) {
	db := openTestDB(t)

	_, err := db.RecordRun("bad.f32", [3]int{4, 4, 4}, unwrap.Stats{}, time.Second,
		"unwrap: point queue exceeded its record ceiling")
	require.NoError(t, err)

	runs, err := db.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Contains(t, runs[0].Error, "record ceiling")
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	first, err := db.RecordRun("a.f32", [3]int{2, 2, 2}, unwrap.Stats{}, 0, "")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := db.RecordRun("b.f32", [3]int{2, 2, 2}, unwrap.Stats{}, 0, "")
	require.NoError(t, err)

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].RunID)
	assert.Equal(t, first, runs[1].RunID)
}
