// Package validate checks the numeric and enumerated transaction
// fields: monetary amounts and transaction types.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nadiprasetio/catat-cuan/internal/match"
	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// MaxAmount is the inclusive upper bound for transaction amounts.
var MaxAmount = decimal.NewFromInt(1_000_000_000)

// multipliers are the informal Indonesian/English magnitude suffixes
// accepted after a number ("500 ribu", "1jt", "10k").
var multipliers = map[string]decimal.Decimal{
	"ribu": decimal.NewFromInt(1_000),
	"rb":   decimal.NewFromInt(1_000),
	"k":    decimal.NewFromInt(1_000),
	"juta": decimal.NewFromInt(1_000_000),
	"jt":   decimal.NewFromInt(1_000_000),
}

// typeAliases maps bilingual synonyms to canonical transaction types.
// The keys double as the candidate set for fuzzy resolution, so
// misspellings of any synonym still land on the right type.
var typeAliases = map[string]model.TransactionType{
	"income":      model.TransactionTypeIncome,
	"pemasukan":   model.TransactionTypeIncome,
	"masuk":       model.TransactionTypeIncome,
	"pendapatan":  model.TransactionTypeIncome,
	"expense":     model.TransactionTypeExpense,
	"pengeluaran": model.TransactionTypeExpense,
	"keluar":      model.TransactionTypeExpense,
	"belanja":     model.TransactionTypeExpense,
	"spending":    model.TransactionTypeExpense,
	"transfer":    model.TransactionTypeTransfer,
	"pindah":      model.TransactionTypeTransfer,
	"mutasi":      model.TransactionTypeTransfer,
}

var (
	amountPattern    = regexp.MustCompile(`^([0-9][0-9.,]*)\s*([a-z]*)$`)
	thousandsPattern = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
)

// Amount parses a positive monetary amount. It accepts plain digits,
// "Rp" prefixes, dotted thousands separators ("1.500.000"), a decimal
// comma, and the multiplier suffixes ribu/rb/k and juta/jt. A parse
// failure yields a FormatError; a value outside (0, MaxAmount] yields a
// BoundsError.
func Amount(raw string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, &model.EmptyFieldError{Field: model.FieldTypeAmount}
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "rp"))

	groups := amountPattern.FindStringSubmatch(strings.Join(strings.Fields(s), " "))
	if groups == nil {
		return decimal.Zero, &model.FormatError{Field: model.FieldTypeAmount, Input: raw}
	}

	number, suffix := groups[1], groups[2]
	if thousandsPattern.MatchString(number) {
		number = strings.ReplaceAll(number, ".", "")
	}
	number = strings.ReplaceAll(number, ",", ".")

	value, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, &model.FormatError{Field: model.FieldTypeAmount, Input: raw}
	}

	if suffix != "" {
		mult, ok := multipliers[suffix]
		if !ok {
			return decimal.Zero, &model.FormatError{Field: model.FieldTypeAmount, Input: raw}
		}
		value = value.Mul(mult)
	}

	if !value.IsPositive() || value.GreaterThan(MaxAmount) {
		return decimal.Zero, &model.BoundsError{Input: raw, Amount: value}
	}
	return value, nil
}

// ResolveType resolves free text to a transaction type via the alias
// table, falling back to fuzzy matching over the aliases so inputs like
// "pemasukn" still reach income. The returned pending field's candidate
// is always a canonical type, never an alias.
func ResolveType(m *match.Matcher, raw string) (model.PendingField, error) {
	aliases := make([]string, 0, len(typeAliases))
	for alias := range typeAliases {
		aliases = append(aliases, alias)
	}

	pf, err := m.Match(model.FieldTypeTransactionType, raw, aliases)
	if err != nil {
		if errors.Is(err, match.ErrEmptyInput) {
			return model.PendingField{}, &model.EmptyFieldError{Field: model.FieldTypeTransactionType}
		}
		return model.PendingField{}, err
	}

	if pf.ConfidenceTier == model.TierNone {
		return pf, &model.UnknownTypeError{Input: raw}
	}

	canonical := typeAliases[pf.CandidateValue]
	pf.CandidateValue = string(canonical)
	pf.Alternatives = canonicalAlternatives(pf.Alternatives, canonical)
	return pf, nil
}

// canonicalAlternatives rewrites alias alternatives to canonical types,
// dropping duplicates and the chosen type itself.
func canonicalAlternatives(aliases []string, chosen model.TransactionType) []string {
	var out []string
	seen := map[model.TransactionType]bool{chosen: true}
	for _, a := range aliases {
		t := typeAliases[a]
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, string(t))
	}
	return out
}
