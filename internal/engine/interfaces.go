package engine

import (
	"context"

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// CandidateSource supplies the closed value sets the matcher resolves
// against. Implementations are expected to scope candidates per user.
type CandidateSource interface {
	Accounts(ctx context.Context, userID string) ([]string, error)
	Categories(ctx context.Context, userID string) ([]string, error)
}

// Recorder receives the finished draft once every field is confirmed.
// The draft is handed over read-only; the engine never mutates a
// session again after a successful hand-off.
type Recorder interface {
	Record(ctx context.Context, userID string, draft model.TransactionDraft) error
}
