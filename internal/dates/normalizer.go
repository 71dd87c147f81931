// Package dates normalizes bilingual (Indonesian/English) date
// expressions into concrete calendar dates.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// offsetKind describes how a natural-language term shifts the reference
// date. Week offsets are plain ±7 days; month and year offsets move by
// one calendar unit with the day-of-month clamped to stay valid.
type offsetKind int

const (
	offsetDays offsetKind = iota
	offsetMonths
	offsetYears
)

type naturalTerm struct {
	kind   offsetKind
	amount int
}

// naturalTerms maps both languages' relative-date vocabulary onto the
// same offset semantics. Loaded once; never mutated.
var naturalTerms = map[string]naturalTerm{
	"hari ini":     {offsetDays, 0},
	"sekarang":     {offsetDays, 0},
	"kemarin":      {offsetDays, -1},
	"besok":        {offsetDays, 1},
	"minggu depan": {offsetDays, 7},
	"minggu lalu":  {offsetDays, -7},
	"bulan depan":  {offsetMonths, 1},
	"bulan lalu":   {offsetMonths, -1},
	"tahun depan":  {offsetYears, 1},
	"tahun lalu":   {offsetYears, -1},

	"today":      {offsetDays, 0},
	"now":        {offsetDays, 0},
	"yesterday":  {offsetDays, -1},
	"tomorrow":   {offsetDays, 1},
	"next week":  {offsetDays, 7},
	"last week":  {offsetDays, -7},
	"next month": {offsetMonths, 1},
	"last month": {offsetMonths, -1},
	"next year":  {offsetYears, 1},
	"last year":  {offsetYears, -1},
}

// monthNames maps full and abbreviated month names in both languages to
// month numbers.
var monthNames = map[string]time.Month{
	"januari": time.January, "februari": time.February, "maret": time.March,
	"april": time.April, "mei": time.May, "juni": time.June,
	"juli": time.July, "agustus": time.August, "september": time.September,
	"oktober": time.October, "november": time.November, "desember": time.December,

	"january": time.January, "february": time.February, "march": time.March,
	"may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "october": time.October, "december": time.December,

	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"agu": time.August, "ags": time.August, "aug": time.August,
	"sep": time.September, "okt": time.October, "oct": time.October,
	"nov": time.November, "des": time.December, "dec": time.December,
}

// explicitLayouts are structured formats accepted as exact.
var explicitLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

var yearOnlyRe = regexp.MustCompile(`^\d{4}$`)

// Normalize resolves a raw date expression against a reference date.
// Resolution order: natural-language term, explicit format, day+month
// name, bare year. Empty input and unparseable input both yield tier
// none; the caller distinguishes them by checking the raw input itself
// (empty dates fall back to the reference date without confirmation).
func Normalize(raw string, reference time.Time) model.PendingField {
	pf := model.PendingField{
		FieldType:      model.FieldTypeDate,
		RawInput:       raw,
		ConfidenceTier: model.TierNone,
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return pf
	}
	normalized = strings.Join(strings.Fields(normalized), " ")

	if term, ok := naturalTerms[normalized]; ok {
		pf.ConfidenceTier = model.TierExact
		pf.CandidateValue = applyOffset(reference, term).Format(model.DateLayout)
		return pf
	}

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			pf.ConfidenceTier = model.TierExact
			pf.CandidateValue = t.Format(model.DateLayout)
			return pf
		}
	}

	if t, ok := parseDayMonth(normalized, reference); ok {
		pf.ConfidenceTier = model.TierHigh
		pf.CandidateValue = t.Format(model.DateLayout)
		return pf
	}

	// A bare year is read as December 31 of that year. The mapping is
	// assumptive, so the tier stays at medium to force a confirmation
	// turn.
	if yearOnlyRe.MatchString(normalized) {
		year, _ := strconv.Atoi(normalized)
		pf.ConfidenceTier = model.TierMedium
		pf.CandidateValue = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
		return pf
	}

	return pf
}

// parseDayMonth handles "25 desember", "december 25", and the same with
// a trailing year. The year defaults to the reference date's year.
func parseDayMonth(s string, reference time.Time) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 || len(fields) > 3 {
		return time.Time{}, false
	}

	var day int
	var month time.Month
	var ok bool

	if month, ok = monthNames[fields[0]]; ok {
		if day, ok = parseDay(fields[1]); !ok {
			return time.Time{}, false
		}
	} else if month, ok = monthNames[fields[1]]; ok {
		if day, ok = parseDay(fields[0]); !ok {
			return time.Time{}, false
		}
	} else {
		return time.Time{}, false
	}

	year := reference.Year()
	if len(fields) == 3 {
		y, err := strconv.Atoi(fields[2])
		if err != nil || y < 1000 || y > 9999 {
			return time.Time{}, false
		}
		year = y
	}

	if day > daysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func parseDay(s string) (int, bool) {
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > 31 {
		return 0, false
	}
	return d, true
}

func applyOffset(reference time.Time, term naturalTerm) time.Time {
	switch term.kind {
	case offsetMonths:
		return addMonthsClamped(reference, term.amount)
	case offsetYears:
		return addYearsClamped(reference, term.amount)
	default:
		return reference.AddDate(0, 0, term.amount)
	}
}

// addMonthsClamped shifts by whole calendar months, clamping the day so
// Jan 31 + 1 month is Feb 28/29 rather than time.AddDate's Mar 2/3.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months
	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		year--
	}
	if max := daysIn(year, time.Month(m)); day > max {
		day = max
	}
	return time.Date(year, time.Month(m), day, 0, 0, 0, 0, t.Location())
}

// addYearsClamped shifts by whole years, clamping Feb 29 to Feb 28 in
// non-leap targets.
func addYearsClamped(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	year += years
	if max := daysIn(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
