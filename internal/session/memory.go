package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nadiprasetio/catat-cuan/internal/common"
	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// MemoryStore implements Store with in-process storage. Suitable for
// single-instance use and tests; sessions older than MaxAge are swept
// by a background loop, which is the store-owned idle-expiry policy the
// engine deliberately does not implement.
type MemoryStore struct {
	sessions map[string]*model.ConversationSession
	stopCh   chan struct{}
	now      func() time.Time
	maxAge   time.Duration
	mu       sync.RWMutex
}

// MemoryStoreConfig holds tunables for MemoryStore.
type MemoryStoreConfig struct {
	// MaxAge is how long an untouched session survives. Zero disables
	// expiry.
	MaxAge time.Duration
	// SweepInterval is how often expired sessions are collected.
	SweepInterval time.Duration
}

// NewMemoryStore creates a memory store that expires idle sessions
// after 24 hours.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithConfig(MemoryStoreConfig{
		MaxAge:        24 * time.Hour,
		SweepInterval: time.Hour,
	})
}

// NewMemoryStoreWithConfig creates a memory store with custom expiry.
func NewMemoryStoreWithConfig(config MemoryStoreConfig) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*model.ConversationSession),
		stopCh:   make(chan struct{}),
		now:      time.Now,
		maxAge:   config.MaxAge,
	}
	if config.MaxAge > 0 && config.SweepInterval > 0 {
		go s.sweepLoop(config.SweepInterval)
	}
	return s
}

// Create mints a new COLLECTING session.
func (s *MemoryStore) Create(_ context.Context, userID string) (*model.ConversationSession, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sess
	s.sessions[sess.ID] = &stored
	return sess, nil
}

// Get returns a copy of the stored session so callers cannot mutate the
// stored state without going through Put.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*model.ConversationSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, common.ErrNotFound)
	}
	return copySession(sess), nil
}

// Put stores a copy of the session.
func (s *MemoryStore) Put(_ context.Context, session *model.ConversationSession) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	if err := session.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

// copySession clones a session including its pending field, so stored
// state can only change through Put.
func copySession(sess *model.ConversationSession) *model.ConversationSession {
	copied := *sess
	if sess.Pending != nil {
		pending := *sess.Pending
		pending.Alternatives = append([]string(nil), sess.Pending.Alternatives...)
		copied.Pending = &pending
	}
	return &copied
}

// Delete removes a session if present.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Close stops the expiry sweeper.
func (s *MemoryStore) Close() error {
	close(s.stopCh)
	return nil
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	cutoff := s.now().Add(-s.maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
