package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical wire format for resolved dates.
const DateLayout = "2006-01-02"

// TransactionDraft is the transaction being accumulated across a
// conversation. Zero values mean "not yet set": an empty string, a zero
// time, and a zero amount are all unset (amounts must be positive, so
// zero is never a legal committed value).
type TransactionDraft struct {
	Date     time.Time       `json:"date,omitempty"`
	Account  string          `json:"account,omitempty"`
	Category string          `json:"category,omitempty"`
	Type     TransactionType `json:"type,omitempty"`
	Amount   decimal.Decimal `json:"amount,omitempty"`
}

// FieldSet reports whether the given field has been committed.
func (d *TransactionDraft) FieldSet(ft FieldType) bool {
	switch ft {
	case FieldTypeAccount:
		return d.Account != ""
	case FieldTypeCategory:
		return d.Category != ""
	case FieldTypeTransactionType:
		return d.Type != ""
	case FieldTypeDate:
		return !d.Date.IsZero()
	case FieldTypeAmount:
		return d.Amount.IsPositive()
	}
	return false
}

// SetField commits a canonical string value into the draft. Dates must be
// in DateLayout, amounts must be a decimal string; both were produced by
// the resolvers, so a parse failure here is a programming error.
func (d *TransactionDraft) SetField(ft FieldType, canonical string) error {
	switch ft {
	case FieldTypeAccount:
		d.Account = canonical
	case FieldTypeCategory:
		d.Category = canonical
	case FieldTypeTransactionType:
		if !ValidTransactionType(canonical) {
			return fmt.Errorf("invalid transaction type %q", canonical)
		}
		d.Type = TransactionType(canonical)
	case FieldTypeDate:
		t, err := time.Parse(DateLayout, canonical)
		if err != nil {
			return fmt.Errorf("invalid canonical date %q: %w", canonical, err)
		}
		d.Date = t
	case FieldTypeAmount:
		amt, err := decimal.NewFromString(canonical)
		if err != nil {
			return fmt.Errorf("invalid canonical amount %q: %w", canonical, err)
		}
		d.Amount = amt
	default:
		return fmt.Errorf("unknown field type %q", ft)
	}
	return nil
}

// FieldValue returns the committed value of a field as a display string,
// or "" if the field is unset.
func (d *TransactionDraft) FieldValue(ft FieldType) string {
	switch ft {
	case FieldTypeAccount:
		return d.Account
	case FieldTypeCategory:
		return d.Category
	case FieldTypeTransactionType:
		return string(d.Type)
	case FieldTypeDate:
		if d.Date.IsZero() {
			return ""
		}
		return d.Date.Format(DateLayout)
	case FieldTypeAmount:
		if !d.Amount.IsPositive() {
			return ""
		}
		return d.Amount.String()
	}
	return ""
}

// IsComplete reports whether all five fields have been committed.
func (d *TransactionDraft) IsComplete() bool {
	for _, ft := range FieldOrder {
		if !d.FieldSet(ft) {
			return false
		}
	}
	return true
}
