// Package engine drives the multi-turn conversation that turns free-text
// messages into a confirmed transaction draft. It owns the per-field
// confirmation state machine and the session's field-by-field
// progression; everything stateful lives on the ConversationSession the
// caller passes in, so the engine itself is safe to share.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nadiprasetio/catat-cuan/internal/common"
	"github.com/nadiprasetio/catat-cuan/internal/confirm"
	"github.com/nadiprasetio/catat-cuan/internal/dates"
	"github.com/nadiprasetio/catat-cuan/internal/match"
	"github.com/nadiprasetio/catat-cuan/internal/messages"
	"github.com/nadiprasetio/catat-cuan/internal/model"
	"github.com/nadiprasetio/catat-cuan/internal/validate"
)

// cancelKeywords force-cancel the transaction from any state.
var cancelKeywords = map[string]struct{}{
	"batal":    {},
	"batalkan": {},
	"cancel":   {},
	"gak jadi": {},
	"/cancel":  {},
}

// fieldLabels are the Indonesian display names interpolated into the
// shared confirmed/rejected templates and the completion summary.
var fieldLabels = map[model.FieldType]string{
	model.FieldTypeTransactionType: "Jenis",
	model.FieldTypeCategory:        "Kategori",
	model.FieldTypeDate:            "Tanggal",
	model.FieldTypeAmount:          "Jumlah",
	model.FieldTypeAccount:         "Akun",
}

// Config holds tunables for the conversation engine.
type Config struct {
	// MaxRejections is how many rejected proposals a field tolerates
	// before the engine stops proposing and lists every candidate for
	// the user to pick from explicitly.
	MaxRejections int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{MaxRejections: 2}
}

// Engine interprets one user message per turn against one session.
type Engine struct {
	candidates    CandidateSource
	recorder      Recorder
	catalog       *messages.Catalog
	matcher       *match.Matcher
	recognizer    *confirm.Recognizer
	maxRejections int
}

// New creates an engine with the default configuration.
func New(candidates CandidateSource, recorder Recorder, catalog *messages.Catalog) *Engine {
	return NewWithConfig(candidates, recorder, catalog, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(candidates CandidateSource, recorder Recorder, catalog *messages.Catalog, config Config) *Engine {
	return &Engine{
		candidates:    candidates,
		recorder:      recorder,
		catalog:       catalog,
		matcher:       match.NewMatcher(),
		recognizer:    confirm.NewRecognizer(),
		maxRejections: config.MaxRejections,
	}
}

// Greeting produces the opening (or resumption) prompt for a session:
// the pending confirmation question if one is outstanding, otherwise
// the ask-prompt for the next unset field.
func (e *Engine) Greeting(session *model.ConversationSession) (string, error) {
	if session.Closed() {
		return "", common.ErrSessionClosed
	}
	if session.Pending != nil {
		return e.proposalMessage(*session.Pending)
	}
	next, ok := session.NextField()
	if !ok {
		return "", fmt.Errorf("session %s: draft complete but state is %s", session.ID, session.State)
	}
	return e.catalog.Render(next, messages.SituationAsk, nil)
}

// Advance handles one inbound message: it routes the message through
// the confirmation recognizer when a proposal is outstanding, otherwise
// through the resolver for the next needed field, mutates the session
// accordingly, and returns the bot's reply.
//
// today is the caller-supplied reference date; the engine never reads
// the clock itself. On error the session may hold partial mutations and
// must be discarded rather than persisted — the turn is aborted.
func (e *Engine) Advance(ctx context.Context, session *model.ConversationSession, message string, today time.Time) (string, error) {
	if session.Closed() {
		return "", common.ErrSessionClosed
	}

	input := strings.TrimSpace(message)

	if _, ok := cancelKeywords[strings.ToLower(input)]; ok {
		session.State = model.StateCancelled
		session.Pending = nil
		session.Draft = model.TransactionDraft{}
		session.Rejections = 0
		session.UpdatedAt = today
		slog.Info("transaction cancelled", "session_id", session.ID)
		return e.catalog.Render(messages.FieldAny, messages.SituationCancelled, nil)
	}

	session.UpdatedAt = today

	if session.Pending != nil {
		return e.handleConfirmation(ctx, session, input)
	}
	return e.handleInput(ctx, session, input, today)
}

// handleConfirmation applies the yes/no/unknown transition rules to the
// outstanding proposal.
func (e *Engine) handleConfirmation(ctx context.Context, session *model.ConversationSession, reply string) (string, error) {
	pending := *session.Pending

	switch e.recognizer.Classify(reply) {
	case confirm.Yes:
		if err := session.Draft.SetField(pending.FieldType, pending.CandidateValue); err != nil {
			return "", fmt.Errorf("failed to commit confirmed field: %w", err)
		}
		session.Pending = nil
		session.State = model.StateCollecting
		session.Rejections = 0
		slog.Debug("field confirmed",
			"session_id", session.ID,
			"field", pending.FieldType,
			"value", pending.CandidateValue)

		ack, err := e.catalog.Render(pending.FieldType, messages.SituationConfirmed, map[string]string{
			"field": fieldLabels[pending.FieldType],
			"value": pending.CandidateValue,
		})
		if err != nil {
			return "", err
		}
		return e.proceed(ctx, session, ack)

	case confirm.No:
		session.Pending = nil
		session.State = model.StateCollecting
		session.Rejections++
		slog.Debug("field rejected",
			"session_id", session.ID,
			"field", pending.FieldType,
			"value", pending.CandidateValue,
			"rejections", session.Rejections)

		return e.catalog.Render(pending.FieldType, messages.SituationRejected, map[string]string{
			"field": fieldLabels[pending.FieldType],
			"value": pending.CandidateValue,
		})

	default:
		// Unrecognized reply: reissue the identical question. State and
		// draft stay untouched, so re-asking is idempotent.
		return e.proposalMessage(pending)
	}
}

// handleInput resolves raw input for the next unset field and applies
// the confidence-tier policy.
func (e *Engine) handleInput(ctx context.Context, session *model.ConversationSession, input string, today time.Time) (string, error) {
	field, ok := session.NextField()
	if !ok {
		return "", fmt.Errorf("session %s: no field to collect in state %s", session.ID, session.State)
	}

	switch field {
	case model.FieldTypeTransactionType:
		return e.resolveType(ctx, session, input)
	case model.FieldTypeCategory:
		return e.resolveClosedSet(ctx, session, field, input)
	case model.FieldTypeAccount:
		return e.resolveClosedSet(ctx, session, field, input)
	case model.FieldTypeDate:
		return e.resolveDate(ctx, session, input, today)
	case model.FieldTypeAmount:
		return e.resolveAmount(ctx, session, input)
	}
	return "", fmt.Errorf("unknown field type %q", field)
}

func (e *Engine) resolveType(ctx context.Context, session *model.ConversationSession, input string) (string, error) {
	pf, err := validate.ResolveType(e.matcher, input)
	if err != nil {
		switch err.(type) {
		case *model.EmptyFieldError:
			return e.catalog.Render(model.FieldTypeTransactionType, messages.SituationEmpty, nil)
		case *model.UnknownTypeError:
			return e.catalog.Render(model.FieldTypeTransactionType, messages.SituationNoMatch, nil)
		}
		return "", err
	}
	return e.applyTier(ctx, session, pf, typeOptions())
}

func (e *Engine) resolveClosedSet(ctx context.Context, session *model.ConversationSession, field model.FieldType, input string) (string, error) {
	candidates, err := e.loadCandidates(ctx, session.UserID, field)
	if err != nil {
		return "", err
	}

	pf, err := e.matcher.Match(field, input, candidates)
	if err != nil {
		if err == match.ErrEmptyInput {
			return e.catalog.Render(field, messages.SituationEmpty, map[string]string{
				"categories": strings.Join(candidates, ", "),
			})
		}
		return "", fmt.Errorf("failed to match %s: %w", field, err)
	}
	return e.applyTier(ctx, session, pf, candidates)
}

func (e *Engine) resolveDate(ctx context.Context, session *model.ConversationSession, input string, today time.Time) (string, error) {
	// A blank date is allowed: it falls back to the reference date
	// without a confirmation turn.
	if input == "" {
		if err := session.Draft.SetField(model.FieldTypeDate, today.Format(model.DateLayout)); err != nil {
			return "", err
		}
		session.Rejections = 0
		ack, err := e.catalog.Render(model.FieldTypeDate, messages.SituationEmpty, nil)
		if err != nil {
			return "", err
		}
		return e.proceed(ctx, session, ack)
	}

	pf := dates.Normalize(input, today)
	if pf.ConfidenceTier == model.TierNone {
		return e.catalog.Render(model.FieldTypeDate, messages.SituationNoMatch, nil)
	}
	return e.applyTier(ctx, session, pf, nil)
}

func (e *Engine) resolveAmount(ctx context.Context, session *model.ConversationSession, input string) (string, error) {
	value, err := validate.Amount(input)
	if err != nil {
		switch err.(type) {
		case *model.EmptyFieldError:
			return e.catalog.Render(model.FieldTypeAmount, messages.SituationEmpty, nil)
		case *model.FormatError:
			return e.catalog.Render(model.FieldTypeAmount, messages.SituationFormatError, nil)
		case *model.BoundsError:
			return e.catalog.Render(model.FieldTypeAmount, messages.SituationBoundsError, nil)
		}
		return "", err
	}

	if err := session.Draft.SetField(model.FieldTypeAmount, value.String()); err != nil {
		return "", err
	}
	session.Rejections = 0
	return e.proceed(ctx, session, "")
}

// applyTier is the tier-to-action policy: exact commits silently,
// high/medium propose and wait, low/none report no match and keep the
// field open. After MaxRejections rejected proposals the engine stops
// proposing and lists the full candidate set instead.
func (e *Engine) applyTier(ctx context.Context, session *model.ConversationSession, pf model.PendingField, options []string) (string, error) {
	switch pf.ConfidenceTier {
	case model.TierExact:
		if err := session.Draft.SetField(pf.FieldType, pf.CandidateValue); err != nil {
			return "", err
		}
		session.Rejections = 0
		slog.Debug("field auto-committed",
			"session_id", session.ID,
			"field", pf.FieldType,
			"value", pf.CandidateValue)
		return e.proceed(ctx, session, "")

	case model.TierHigh, model.TierMedium:
		if session.Rejections >= e.maxRejections && len(options) > 0 {
			return e.noMatchMessage(pf, options)
		}
		session.Pending = &pf
		session.State = model.StateAwaitingConfirmation
		return e.proposalMessage(pf)

	default:
		return e.noMatchMessage(pf, options)
	}
}

// proposalMessage renders the confirmation question for a proposed
// value. It depends only on the pending field, so the exact same
// question can be reissued on an unrecognized reply or on resumption.
func (e *Engine) proposalMessage(pf model.PendingField) (string, error) {
	if pf.FieldType == model.FieldTypeDate {
		if len(pf.CandidateValue) >= 4 && pf.ConfidenceTier == model.TierMedium {
			return e.catalog.Render(model.FieldTypeDate, messages.SituationYearOnly, map[string]string{
				"input": pf.RawInput,
				"year":  pf.CandidateValue[:4],
			})
		}
		return e.catalog.Render(model.FieldTypeDate, messages.SituationNatural, map[string]string{
			"input": pf.RawInput,
			"value": pf.CandidateValue,
		})
	}

	vars := map[string]string{
		"input": pf.RawInput,
		"value": pf.CandidateValue,
	}
	situation := messages.SituationFuzzyMatch
	if len(pf.Alternatives) > 0 {
		situation = messages.SituationFuzzyWithAlternatives
		vars["alternatives"] = strings.Join(pf.Alternatives, ", ")
	}
	return e.catalog.Render(pf.FieldType, situation, vars)
}

func (e *Engine) noMatchMessage(pf model.PendingField, options []string) (string, error) {
	return e.catalog.Render(pf.FieldType, messages.SituationNoMatch, map[string]string{
		"input":         pf.RawInput,
		"valid_options": strings.Join(options, ", "),
	})
}

// proceed moves the conversation forward after a commit: either asks
// for the next field or, with the draft complete, hands it to the
// recorder and closes the session.
func (e *Engine) proceed(ctx context.Context, session *model.ConversationSession, ack string) (string, error) {
	if session.Draft.IsComplete() {
		if err := e.recorder.Record(ctx, session.UserID, session.Draft); err != nil {
			return "", fmt.Errorf("failed to record transaction: %w", err)
		}
		session.State = model.StateComplete
		slog.Info("transaction complete",
			"session_id", session.ID,
			"type", session.Draft.Type,
			"amount", session.Draft.Amount)

		done, err := e.catalog.Render(messages.FieldAny, messages.SituationComplete, map[string]string{
			"summary": draftSummary(&session.Draft),
		})
		if err != nil {
			return "", err
		}
		return joinLines(ack, done), nil
	}

	next, _ := session.NextField()
	ask, err := e.catalog.Render(next, messages.SituationAsk, nil)
	if err != nil {
		return "", err
	}
	return joinLines(ack, ask), nil
}

func (e *Engine) loadCandidates(ctx context.Context, userID string, field model.FieldType) ([]string, error) {
	var (
		candidates []string
		err        error
	)
	if field == model.FieldTypeAccount {
		candidates, err = e.candidates.Accounts(ctx, userID)
	} else {
		candidates, err = e.candidates.Categories(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s candidates: %w", field, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no %s candidates configured for user %s: %w", field, userID, common.ErrMissingConfig)
	}
	return candidates, nil
}

func typeOptions() []string {
	opts := make([]string, len(model.TransactionTypes))
	for i, t := range model.TransactionTypes {
		opts[i] = string(t)
	}
	return opts
}

func draftSummary(d *model.TransactionDraft) string {
	lines := make([]string, 0, len(model.FieldOrder))
	for _, ft := range model.FieldOrder {
		lines = append(lines, fmt.Sprintf("%s: %s", fieldLabels[ft], d.FieldValue(ft)))
	}
	return strings.Join(lines, "\n")
}

func joinLines(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
