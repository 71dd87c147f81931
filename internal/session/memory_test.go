package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadiprasetio/catat-cuan/internal/common"
	"github.com/nadiprasetio/catat-cuan/internal/model"
)

func TestMemoryStore_CreateGetPutDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, model.StateCollecting, sess.State)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	require.NoError(t, got.Draft.SetField(model.FieldTypeTransactionType, "expense"))
	require.NoError(t, store.Put(ctx, got))

	got2, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "expense", got2.Draft.FieldValue(model.FieldTypeTransactionType))

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestMemoryStore_CreateRequiresUserID(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Create(context.Background(), "")
	assert.Error(t, err)
}

func TestMemoryStore_GetReturnsIsolatedCopy(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
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
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store.
	got.Pending.CandidateValue = "transport"
	got.Pending.Alternatives[0] = "belanja"
	got.Draft = model.TransactionDraft{}

	fresh, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "makanan", fresh.Pending.CandidateValue)
	assert.Equal(t, []string{"minuman"}, fresh.Pending.Alternatives)
}

func TestMemoryStore_PutRejectsInvalidSession(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	tests := []struct {
		sess *model.ConversationSession
		name string
	}{
		{name: "nil session", sess: nil},
		{name: "missing id", sess: &model.ConversationSession{State: model.StateCollecting}},
		{
			name: "awaiting without pending",
			sess: &model.ConversationSession{ID: "s1", State: model.StateAwaitingConfirmation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, tt.sess))
		})
	}
}

func TestMemoryStore_SweepExpiresIdleSessions(t *testing.T) {
	current := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithConfig(MemoryStoreConfig{MaxAge: time.Hour})
	defer store.Close()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	stale, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	current = current.Add(30 * time.Minute)
	fresh, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	current = current.Add(45 * time.Minute)
	store.sweep()

	_, err = store.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
