package model

import (
	"fmt"
	"time"
)

// SessionState is the lifecycle state of a conversation session.
type SessionState string

const (
	// StateCollecting means the engine is waiting for raw input for the
	// next unset field.
	StateCollecting SessionState = "COLLECTING"
	// StateAwaitingConfirmation means a proposed value is waiting for a
	// yes/no reply.
	StateAwaitingConfirmation SessionState = "AWAITING_CONFIRMATION"
	// StateComplete means all five fields are confirmed and the draft has
	// been handed off.
	StateComplete SessionState = "COMPLETE"
	// StateCancelled means the user aborted the entry.
	StateCancelled SessionState = "CANCELLED"
)

// ConversationSession is one user's in-progress transaction entry. It is
// the unit of isolation: the engine mutates exactly one session per turn
// and holds no state of its own. The caller owns atomicity of the
// read-modify-write cycle against the session store.
type ConversationSession struct {
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Pending    *PendingField    `json:"pending,omitempty"`
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	State      SessionState     `json:"state"`
	Draft      TransactionDraft `json:"draft"`
	Rejections int              `json:"rejections,omitempty"`
}

// NextField returns the first field in FieldOrder not yet committed to
// the draft. ok is false when the draft is complete.
func (s *ConversationSession) NextField() (FieldType, bool) {
	for _, ft := range FieldOrder {
		if !s.Draft.FieldSet(ft) {
			return ft, true
		}
	}
	return "", false
}

// Closed reports whether the session reached a terminal state.
func (s *ConversationSession) Closed() bool {
	return s.State == StateComplete || s.State == StateCancelled
}

// Validate checks the session's structural invariants: pending is
// non-nil iff the state is AWAITING_CONFIRMATION, and COMPLETE implies a
// fully committed draft.
func (s *ConversationSession) Validate() error {
	if (s.Pending != nil) != (s.State == StateAwaitingConfirmation) {
		return fmt.Errorf("session %s: pending=%v inconsistent with state %s",
			s.ID, s.Pending != nil, s.State)
	}
	if s.State == StateComplete && !s.Draft.IsComplete() {
		return fmt.Errorf("session %s: COMPLETE with incomplete draft", s.ID)
	}
	if s.Pending != nil && s.Pending.HasCandidate() == (s.Pending.CandidateValue == "") {
		return fmt.Errorf("session %s: pending candidate inconsistent with tier %s",
			s.ID, s.Pending.ConfidenceTier)
	}
	return nil
}
