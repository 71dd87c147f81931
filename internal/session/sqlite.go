package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nadiprasetio/catat-cuan/internal/common"
	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// Ensure SQLiteStore implements the Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists sessions in the application database. The full
// session is stored as a JSON document alongside a few queryable
// columns; the sessions table is created by the storage package's
// migrations.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a sqlite-backed session store over an existing
// database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Create mints and persists a new COLLECTING session.
func (s *SQLiteStore) Create(ctx context.Context, userID string) (*model.ConversationSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	now := s.now()
	sess := &model.ConversationSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     model.StateCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get retrieves a session by ID.
func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*model.ConversationSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE id = ?`, sessionID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	var sess model.ConversationSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &sess, nil
}

// Put upserts the session, replacing the stored document.
func (s *SQLiteStore) Put(ctx context.Context, session *model.ConversationSession) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	if err := session.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, state, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		session.ID,
		session.UserID,
		string(session.State),
		data,
		session.CreatedAt.Format(time.RFC3339),
		session.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}

	slog.Debug("stored session",
		"session_id", session.ID,
		"state", session.State)
	return nil
}

// Delete removes a session; unknown IDs are a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// DeleteIdle removes sessions untouched since the cutoff. This is the
// store-owned expiry policy; callers run it on whatever schedule suits
// them.
func (s *SQLiteStore) DeleteIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE updated_at < ?`, cutoff.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return n, nil
}

// Close is a no-op; the database handle is owned by the storage layer.
func (s *SQLiteStore) Close() error {
	return nil
}
