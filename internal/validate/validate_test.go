package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadiprasetio/catat-cuan/internal/match"
	"github.com/nadiprasetio/catat-cuan/internal/model"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		raw     string
		want    string
	}{
		{name: "plain digits", raw: "500000", want: "500000"},
		{name: "surrounding whitespace", raw: " 500000 ", want: "500000"},
		{name: "rupiah prefix", raw: "Rp 500000", want: "500000"},
		{name: "dotted thousands", raw: "1.500.000", want: "1500000"},
		{name: "decimal comma", raw: "2500,75", want: "2500.75"},
		{name: "ribu suffix", raw: "500 ribu", want: "500000"},
		{name: "rb suffix", raw: "500rb", want: "500000"},
		{name: "k suffix", raw: "10k", want: "10000"},
		{name: "juta suffix", raw: "1 juta", want: "1000000"},
		{name: "jt suffix", raw: "2jt", want: "2000000"},
		{name: "upper bound accepted", raw: "1000000000", want: "1000000000"},

		{name: "empty", raw: "  ", wantErr: &model.EmptyFieldError{}},
		{name: "not a number", raw: "lima ratus", wantErr: &model.FormatError{}},
		{name: "negative", raw: "-500", wantErr: &model.FormatError{}},
		{name: "unknown suffix", raw: "500 dollars", wantErr: &model.FormatError{}},
		{name: "zero rejected", raw: "0", wantErr: &model.BoundsError{}},
		{name: "above upper bound", raw: "1000000001", wantErr: &model.BoundsError{}},
		{name: "juta pushes over bound", raw: "1001 juta", wantErr: &model.BoundsError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amount(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.IsType(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			want, perr := decimal.NewFromString(tt.want)
			require.NoError(t, perr)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestResolveType(t *testing.T) {
	m := match.NewMatcher()

	tests := []struct {
		wantErr  error
		name     string
		raw      string
		want     string
		wantTier model.ConfidenceTier
	}{
		{name: "canonical english", raw: "income", want: "income", wantTier: model.TierExact},
		{name: "indonesian synonym", raw: "pemasukan", want: "income", wantTier: model.TierExact},
		{name: "short synonym", raw: "masuk", want: "income", wantTier: model.TierExact},
		{name: "expense synonym", raw: "pengeluaran", want: "expense", wantTier: model.TierExact},
		{name: "transfer", raw: "Transfer", want: "transfer", wantTier: model.TierExact},
		{name: "misspelled transfer", raw: "trnsfer", want: "transfer", wantTier: model.TierHigh},
		{name: "misspelled synonym", raw: "pemasukn", want: "income", wantTier: model.TierHigh},

		{name: "empty", raw: "", wantErr: &model.EmptyFieldError{}},
		{name: "unrecognized", raw: "zzz", wantErr: &model.UnknownTypeError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, err := ResolveType(m, tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.IsType(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pf.CandidateValue)
			assert.Equal(t, tt.wantTier, pf.ConfidenceTier)
			assert.True(t, model.ValidTransactionType(pf.CandidateValue))
			assert.NotContains(t, pf.Alternatives, pf.CandidateValue)
		})
	}
}
