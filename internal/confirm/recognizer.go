// Package confirm classifies free-text confirmation replies. Membership
// is exact-set on purpose: a confirmation answer has to be unambiguous,
// so there is no fuzzy matching here — anything outside the two lists
// is Unknown and simply re-prompts.
package confirm

import "strings"

// Decision is the outcome of classifying a reply.
type Decision int

const (
	// Unknown means the reply was neither affirmative nor negative.
	Unknown Decision = iota
	// Yes means the reply was affirmative.
	Yes
	// No means the reply was negative.
	No
)

var yesWords = []string{
	"ya", "yes", "y", "benar", "iya", "yep", "yup", "ok", "oke", "okeh",
	"setuju", "iyah", "betul", "betulkah",
}

var noWords = []string{
	"tidak", "no", "n", "tidak setuju", "nggak", "enggak", "salah",
	"nope", "nah",
}

// Recognizer holds the bilingual affirmative/negative word sets, built
// once and read-only afterwards.
type Recognizer struct {
	yes map[string]struct{}
	no  map[string]struct{}
}

// NewRecognizer builds a recognizer from the fixed word lists.
func NewRecognizer() *Recognizer {
	r := &Recognizer{
		yes: make(map[string]struct{}, len(yesWords)),
		no:  make(map[string]struct{}, len(noWords)),
	}
	for _, w := range yesWords {
		r.yes[w] = struct{}{}
	}
	for _, w := range noWords {
		r.no[w] = struct{}{}
	}
	return r
}

// Classify normalizes the reply (lowercase, trim) and checks set
// membership. Case and surrounding whitespace never matter.
func (r *Recognizer) Classify(reply string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	if _, ok := r.yes[normalized]; ok {
		return Yes
	}
	if _, ok := r.no[normalized]; ok {
		return No
	}
	return Unknown
}

func (d Decision) String() string {
	switch d {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}
