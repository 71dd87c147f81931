// Package session persists conversation sessions between turns. The
// engine is stateless across requests, so every turn is a
// read-modify-write against a Store; atomicity of that cycle (per-session
// locking or optimistic versioning) is the caller's responsibility.
package session

import (
	"context"

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// Store is the persistence contract for conversation sessions.
type Store interface {
	// Create mints a new COLLECTING session for a user.
	Create(ctx context.Context, userID string) (*model.ConversationSession, error)
	// Get retrieves a session by ID, or common.ErrNotFound.
	Get(ctx context.Context, sessionID string) (*model.ConversationSession, error)
	// Put writes the session back, replacing the stored copy.
	Put(ctx context.Context, session *model.ConversationSession) error
	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, sessionID string) error
	// Close releases any underlying resources.
	Close() error
}
