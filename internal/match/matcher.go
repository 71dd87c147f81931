// Package match implements fuzzy matching of raw user input against a
// closed candidate set, producing a confidence-tiered pending field.
package match

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// Confidence thresholds. A score of exactly 1.0 only occurs for exact
// normalized equality; the remaining bands are half-open on the right.
const (
	HighThreshold   = 0.85
	MediumThreshold = 0.65
	LowThreshold    = 0.40
)

// MaxAlternatives caps how many runner-up candidates are surfaced.
const MaxAlternatives = 3

var (
	// ErrEmptyInput is returned when the raw input is empty after
	// normalization. Empty input is a caller-visible case of its own and
	// is never routed through scoring.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoCandidates is returned when the candidate set is empty.
	ErrNoCandidates = errors.New("no candidates")
)

// Matcher scores raw input against candidate sets. It is stateless and
// safe for concurrent use; matching is a pure function of its inputs.
type Matcher struct{}

// NewMatcher creates a Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

type scored struct {
	candidate string
	score     float64
	distance  int
}

// Match scores raw against every candidate and returns a PendingField
// carrying the best match, its confidence tier, and up to three
// alternatives ordered by descending score. Ties on score break toward
// the smallest edit distance, then the lexicographically first
// candidate, so results are deterministic.
func (m *Matcher) Match(ft model.FieldType, raw string, candidates []string) (model.PendingField, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return model.PendingField{}, ErrEmptyInput
	}
	if len(candidates) == 0 {
		return model.PendingField{}, ErrNoCandidates
	}

	results := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		nc := Normalize(c)
		dist := levenshtein.ComputeDistance(normalized, nc)
		results = append(results, scored{
			candidate: c,
			score:     similarity(normalized, nc, dist),
			distance:  dist,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		if results[i].distance != results[j].distance {
			return results[i].distance < results[j].distance
		}
		return results[i].candidate < results[j].candidate
	})

	best := results[0]
	pf := model.PendingField{
		FieldType:      ft,
		RawInput:       raw,
		ConfidenceTier: TierForScore(best.score),
	}
	if pf.ConfidenceTier != model.TierNone {
		pf.CandidateValue = best.candidate
	}

	for _, r := range results[1:] {
		if len(pf.Alternatives) == MaxAlternatives {
			break
		}
		if r.score <= LowThreshold {
			break
		}
		pf.Alternatives = append(pf.Alternatives, r.candidate)
	}

	return pf, nil
}

// Normalize lowercases and trims input before comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TierForScore maps a similarity score in [0,1] to a confidence tier.
func TierForScore(score float64) model.ConfidenceTier {
	switch {
	case score >= 1.0:
		return model.TierExact
	case score >= HighThreshold:
		return model.TierHigh
	case score >= MediumThreshold:
		return model.TierMedium
	case score >= LowThreshold:
		return model.TierLow
	default:
		return model.TierNone
	}
}

// similarity converts an edit distance into a normalized score in [0,1]:
// 1 - distance/max(len). Identical strings score exactly 1.0.
func similarity(a, b string, distance int) float64 {
	if a == b {
		return 1.0
	}
	longest := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	return 1.0 - float64(distance)/float64(longest)
}
