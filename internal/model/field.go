// Package model defines the core domain types for conversational
// transaction entry: fields, confidence tiers, drafts, and sessions.
package model

// FieldType identifies one of the five slots that compose a transaction.
type FieldType string

const (
	// FieldTypeTransactionType is the income/expense/transfer slot.
	FieldTypeTransactionType FieldType = "type"
	// FieldTypeCategory is the spending category slot.
	FieldTypeCategory FieldType = "category"
	// FieldTypeDate is the transaction date slot.
	FieldTypeDate FieldType = "date"
	// FieldTypeAmount is the monetary amount slot.
	FieldTypeAmount FieldType = "amount"
	// FieldTypeAccount is the source/destination account slot.
	FieldTypeAccount FieldType = "account"
)

// FieldOrder is the fixed order in which the engine collects fields.
// The order is part of the engine's contract: changing it changes which
// question the user sees next after every commit.
var FieldOrder = []FieldType{
	FieldTypeTransactionType,
	FieldTypeCategory,
	FieldTypeDate,
	FieldTypeAmount,
	FieldTypeAccount,
}

// ConfidenceTier is the discretized quality of a fuzzy match. It drives
// whether a candidate value is committed silently, proposed for
// confirmation, or rejected outright.
type ConfidenceTier string

const (
	// TierExact means the input normalized equal to a candidate.
	TierExact ConfidenceTier = "exact"
	// TierHigh means similarity in [0.85, 1.0).
	TierHigh ConfidenceTier = "high"
	// TierMedium means similarity in [0.65, 0.85).
	TierMedium ConfidenceTier = "medium"
	// TierLow means similarity in [0.40, 0.65).
	TierLow ConfidenceTier = "low"
	// TierNone means no candidate scored at or above 0.40.
	TierNone ConfidenceTier = "none"
)

// TransactionType is the fixed enumeration of transaction kinds.
type TransactionType string

const (
	// TransactionTypeIncome is money coming in.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense is money going out.
	TransactionTypeExpense TransactionType = "expense"
	// TransactionTypeTransfer is money moving between accounts.
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionTypes lists all valid transaction types in canonical order.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
	TransactionTypeTransfer,
}

// ValidTransactionType reports whether s is a member of the enumeration.
func ValidTransactionType(s string) bool {
	for _, t := range TransactionTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// PendingField is one field awaiting resolution or user confirmation.
type PendingField struct {
	FieldType      FieldType      `json:"field_type"`
	RawInput       string         `json:"raw_input"`
	CandidateValue string         `json:"candidate_value,omitempty"`
	ConfidenceTier ConfidenceTier `json:"confidence_tier"`
	Alternatives   []string       `json:"alternatives,omitempty"`
}

// HasCandidate reports whether a candidate value was resolved.
// CandidateValue is set iff the tier is not none.
func (p PendingField) HasCandidate() bool {
	return p.ConfidenceTier != TierNone
}
