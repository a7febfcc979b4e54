package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2023, 4, 1, 8, 0, 0, 0, time.UTC)

	for i, outcome := range []string{"success", "failed", "success"} {
		require.NoError(t, store.Record(ctx, Record{
			BuildID:   string(rune('a' + i)),
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Duration:  3 * time.Second,
			Documents: 40,
			Pages:     45,
			Outcome:   outcome,
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "c", records[0].BuildID) // most recent first
	require.Equal(t, "b", records[1].BuildID)
	require.Equal(t, "failed", records[1].Outcome)
	require.Equal(t, 3*time.Second, records[0].Duration)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), Record{
		BuildID:   "b1",
		StartedAt: time.Now(),
		Outcome:   "success",
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	records, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "b1", records[0].BuildID)
}

func TestStore_RecordsErrorMessage(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Record(context.Background(), Record{
		BuildID:   "bad",
		StartedAt: time.Now(),
		Outcome:   "failed",
		Error:     "route (fatal): two documents resolve to the same output path",
	}))

	records, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, records[0].Error, "same output path")
}
