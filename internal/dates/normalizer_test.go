package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_NaturalTerms(t *testing.T) {
	reference := date(2025, time.June, 15)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "hari ini", raw: "hari ini", want: "2025-06-15"},
		{name: "today", raw: "today", want: "2025-06-15"},
		{name: "now", raw: "NOW", want: "2025-06-15"},
		{name: "kemarin", raw: "kemarin", want: "2025-06-14"},
		{name: "yesterday", raw: "yesterday", want: "2025-06-14"},
		{name: "besok", raw: "besok", want: "2025-06-16"},
		{name: "tomorrow", raw: "tomorrow", want: "2025-06-16"},
		{name: "minggu depan", raw: "minggu depan", want: "2025-06-22"},
		{name: "last week", raw: "last week", want: "2025-06-08"},
		{name: "bulan depan", raw: "bulan depan", want: "2025-07-15"},
		{name: "last month", raw: "last month", want: "2025-05-15"},
		{name: "tahun depan", raw: "tahun depan", want: "2026-06-15"},
		{name: "last year", raw: "last year", want: "2024-06-15"},
		{name: "extra whitespace", raw: "  minggu   lalu ", want: "2025-06-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := Normalize(tt.raw, reference)
			assert.Equal(t, model.TierExact, pf.ConfidenceTier)
			assert.Equal(t, tt.want, pf.CandidateValue)
		})
	}
}

func TestNormalize_MonthArithmeticClamps(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		reference time.Time
		want      string
	}{
		{
			name:      "next month from Jan 31 clamps to Feb 28",
			raw:       "next month",
			reference: date(2025, time.January, 31),
			want:      "2025-02-28",
		},
		{
			name:      "next month from Jan 31 in leap year clamps to Feb 29",
			raw:       "bulan depan",
			reference: date(2024, time.January, 31),
			want:      "2024-02-29",
		},
		{
			name:      "last month from Mar 31 clamps to Feb 28",
			raw:       "bulan lalu",
			reference: date(2025, time.March, 31),
			want:      "2025-02-28",
		},
		{
			name:      "last month from January crosses the year",
			raw:       "last month",
			reference: date(2025, time.January, 15),
			want:      "2024-12-15",
		},
		{
			name:      "next year from Feb 29 clamps to Feb 28",
			raw:       "next year",
			reference: date(2024, time.February, 29),
			want:      "2025-02-28",
		},
		{
			name:      "last year from Feb 29 clamps to Feb 28",
			raw:       "tahun lalu",
			reference: date(2024, time.February, 29),
			want:      "2023-02-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := Normalize(tt.raw, tt.reference)
			assert.Equal(t, model.TierExact, pf.ConfidenceTier)
			assert.Equal(t, tt.want, pf.CandidateValue)
		})
	}
}

func TestNormalize_ExplicitFormats(t *testing.T) {
	reference := date(2025, time.June, 15)

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2025-12-25", want: "2025-12-25"},
		{raw: "2025/12/25", want: "2025-12-25"},
		{raw: "25/12/2025", want: "2025-12-25"},
		{raw: "25-12-2025", want: "2025-12-25"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			pf := Normalize(tt.raw, reference)
			assert.Equal(t, model.TierExact, pf.ConfidenceTier)
			assert.Equal(t, tt.want, pf.CandidateValue)
		})
	}
}

func TestNormalize_DayMonthNames(t *testing.T) {
	reference := date(2025, time.June, 15)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "indonesian day month", raw: "25 desember", want: "2025-12-25"},
		{name: "english month day", raw: "december 25", want: "2025-12-25"},
		{name: "abbreviated month", raw: "25 des", want: "2025-12-25"},
		{name: "explicit year", raw: "25 december 2024", want: "2024-12-25"},
		{name: "indonesian with year", raw: "1 agustus 2026", want: "2026-08-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := Normalize(tt.raw, reference)
			assert.Equal(t, model.TierHigh, pf.ConfidenceTier)
			assert.Equal(t, tt.want, pf.CandidateValue)
		})
	}
}

func TestNormalize_DayMonthRejectsImpossibleDay(t *testing.T) {
	reference := date(2025, time.June, 15)

	pf := Normalize("31 februari", reference)
	assert.Equal(t, model.TierNone, pf.ConfidenceTier)
	assert.Empty(t, pf.CandidateValue)
}

func TestNormalize_YearOnly(t *testing.T) {
	reference := date(2025, time.June, 15)

	pf := Normalize("2025", reference)
	assert.Equal(t, model.TierMedium, pf.ConfidenceTier)
	assert.Equal(t, "2025-12-31", pf.CandidateValue)
}

func TestNormalize_Unresolvable(t *testing.T) {
	reference := date(2025, time.June, 15)

	for _, raw := range []string{"", "   ", "entah kapan", "99999", "25 nanmonth"} {
		pf := Normalize(raw, reference)
		assert.Equal(t, model.TierNone, pf.ConfidenceTier, "raw %q", raw)
		assert.Empty(t, pf.CandidateValue, "raw %q", raw)
		assert.False(t, pf.HasCandidate(), "raw %q", raw)
	}
}
