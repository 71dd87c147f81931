package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadiprasetio/catat-cuan/internal/common"
	"github.com/nadiprasetio/catat-cuan/internal/model"
	"github.com/nadiprasetio/catat-cuan/internal/storage"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	return NewSQLiteStore(db.DB())
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	sess.State = model.StateAwaitingConfirmation
	sess.Pending = &model.PendingField{
		FieldType:      model.FieldTypeCategory,
		RawInput:       "makan",
		CandidateValue: "makanan",
		ConfidenceTier: model.TierMedium,
		Alternatives:   []string{"minuman"},
	}
	require.NoError(t, sess.Draft.SetField(model.FieldTypeTransactionType, "expense"))
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, model.StateAwaitingConfirmation, got.State)
	require.NotNil(t, got.Pending)
	assert.Equal(t, "makanan", got.Pending.CandidateValue)
	assert.Equal(t, model.TierMedium, got.Pending.ConfidenceTier)
	assert.Equal(t, []string{"minuman"}, got.Pending.Alternatives)
	assert.Equal(t, "expense", got.Draft.FieldValue(model.FieldTypeTransactionType))
	require.NoError(t, got.Validate())
}

func TestSQLiteStore_GetUnknownID(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStore_PutValidates(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	err := store.Put(ctx, &model.ConversationSession{
		ID:    "s1",
		State: model.StateAwaitingConfirmation,
	})
	assert.Error(t, err)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "no-such-session"))
}

func TestSQLiteStore_DeleteIdle(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	stale, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	fresh, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	n, err := store.DeleteIdle(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = store.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
