package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aventureros/clubsync-api/internal/models"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

func pendingRecord(id, childID, date string) models.ProgressRecord {
	return models.ProgressRecord{
		ID:             id,
		ChildID:        childID,
		ActivityID:     "act-1",
		ExecutionDate:  date,
		Attended:       true,
		EvidenceStatus: models.EvidenceComplete,
		SyncState:      models.SyncStatePending,
	}
}

func TestProgressInsertAndListPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db, NewNotifier())
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pendingRecord("r1", "c1", "2026-08-29")))
	require.NoError(t, repo.Insert(ctx, pendingRecord("r2", "c2", "2026-08-29")))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProgressInsertRejectsSameChildSameDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db, NewNotifier())
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pendingRecord("r1", "c1", "2026-08-29")))

	err := repo.Insert(ctx, pendingRecord("r2", "c1", "2026-08-29"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateRecord.Code, appErr.Code)

	// Same child on a different day is fine.
	require.NoError(t, repo.Insert(ctx, pendingRecord("r3", "c1", "2026-09-05")))
}

func TestProgressMarkSyncedExactIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db, NewNotifier())
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pendingRecord("r1", "c1", "2026-08-29")))
	require.NoError(t, repo.Insert(ctx, pendingRecord("r2", "c2", "2026-08-29")))
	require.NoError(t, repo.Insert(ctx, pendingRecord("r3", "c3", "2026-08-29")))

	require.NoError(t, repo.MarkSynced(ctx, []string{"r1", "r2"}))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "r3", pending[0].ID)
}

func TestProgressMarkSyncedEmptyIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db, NewNotifier())
	require.NoError(t, repo.MarkSynced(context.Background(), nil))
}

func TestProgressWriteNotifies(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotifier()
	repo := NewProgressRepository(db, notifier)

	ch, cancel := notifier.Subscribe(TableProgressRecords)
	defer cancel()

	require.NoError(t, repo.Insert(context.Background(), pendingRecord("r1", "c1", "2026-08-29")))

	select {
	case table := <-ch:
		assert.Equal(t, TableProgressRecords, table)
	default:
		t.Fatal("expected a change notification after insert")
	}
}
