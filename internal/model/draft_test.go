package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionDraft_SetField(t *testing.T) {
	tests := []struct {
		name      string
		field     FieldType
		canonical string
		wantErr   bool
	}{
		{name: "account", field: FieldTypeAccount, canonical: "cash"},
		{name: "category", field: FieldTypeCategory, canonical: "makanan"},
		{name: "valid type", field: FieldTypeTransactionType, canonical: "expense"},
		{name: "invalid type", field: FieldTypeTransactionType, canonical: "spending", wantErr: true},
		{name: "valid date", field: FieldTypeDate, canonical: "2025-12-31"},
		{name: "invalid date", field: FieldTypeDate, canonical: "31/12/2025", wantErr: true},
		{name: "valid amount", field: FieldTypeAmount, canonical: "50000"},
		{name: "invalid amount", field: FieldTypeAmount, canonical: "lima puluh ribu", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d TransactionDraft
			err := d.SetField(tt.field, tt.canonical)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, d.FieldSet(tt.field))
				return
			}
			require.NoError(t, err)
			assert.True(t, d.FieldSet(tt.field))
			assert.Equal(t, tt.canonical, d.FieldValue(tt.field))
		})
	}
}

func TestTransactionDraft_IsComplete(t *testing.T) {
	var d TransactionDraft
	assert.False(t, d.IsComplete())

	require.NoError(t, d.SetField(FieldTypeTransactionType, "expense"))
	require.NoError(t, d.SetField(FieldTypeCategory, "makanan"))
	require.NoError(t, d.SetField(FieldTypeDate, "2025-06-01"))
	require.NoError(t, d.SetField(FieldTypeAmount, "50000"))
	assert.False(t, d.IsComplete())

	require.NoError(t, d.SetField(FieldTypeAccount, "cash"))
	assert.True(t, d.IsComplete())
}

func TestConversationSession_NextField(t *testing.T) {
	sess := &ConversationSession{State: StateCollecting}

	next, ok := sess.NextField()
	require.True(t, ok)
	assert.Equal(t, FieldTypeTransactionType, next)

	require.NoError(t, sess.Draft.SetField(FieldTypeTransactionType, "income"))
	next, ok = sess.NextField()
	require.True(t, ok)
	assert.Equal(t, FieldTypeCategory, next)

	require.NoError(t, sess.Draft.SetField(FieldTypeCategory, "gaji"))
	require.NoError(t, sess.Draft.SetField(FieldTypeDate, "2025-01-31"))
	require.NoError(t, sess.Draft.SetField(FieldTypeAmount, "10000000"))
	require.NoError(t, sess.Draft.SetField(FieldTypeAccount, "bank bca"))

	_, ok = sess.NextField()
	assert.False(t, ok)
}

func TestConversationSession_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		sess    ConversationSession
		wantErr bool
	}{
		{
			name: "collecting without pending",
			sess: ConversationSession{ID: "s1", State: StateCollecting, CreatedAt: now},
		},
		{
			name: "awaiting with pending",
			sess: ConversationSession{
				ID:    "s2",
				State: StateAwaitingConfirmation,
				Pending: &PendingField{
					FieldType:      FieldTypeCategory,
					RawInput:       "makan",
					CandidateValue: "makanan",
					ConfidenceTier: TierHigh,
				},
			},
		},
		{
			name:    "awaiting without pending",
			sess:    ConversationSession{ID: "s3", State: StateAwaitingConfirmation},
			wantErr: true,
		},
		{
			name: "collecting with pending",
			sess: ConversationSession{
				ID:    "s4",
				State: StateCollecting,
				Pending: &PendingField{
					FieldType:      FieldTypeCategory,
					CandidateValue: "makanan",
					ConfidenceTier: TierHigh,
				},
			},
			wantErr: true,
		},
		{
			name:    "complete with empty draft",
			sess:    ConversationSession{ID: "s5", State: StateComplete},
			wantErr: true,
		},
		{
			name: "pending candidate without tier",
			sess: ConversationSession{
				ID:    "s6",
				State: StateAwaitingConfirmation,
				Pending: &PendingField{
					FieldType:      FieldTypeCategory,
					CandidateValue: "makanan",
					ConfidenceTier: TierNone,
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sess.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
