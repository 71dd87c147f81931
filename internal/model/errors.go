package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The error types below are user-correctable conditions, not system
// failures. The engine catches all of them at the field-resolution
// boundary and turns them into clarification messages; none cross the
// conversation layer as errors.

// EmptyFieldError means a required field got no input.
type EmptyFieldError struct {
	Field FieldType
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("field %s: input is empty", e.Field)
}

// FormatError means a date or amount could not be parsed. Field
// distinguishes the date-format and amount-format subtypes.
type FormatError struct {
	Field FieldType
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q", e.Field, e.Input)
}

// BoundsError means an amount parsed but fell outside (0, 1e9].
type BoundsError struct {
	Input  string
	Amount decimal.Decimal
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("amount %s out of bounds (must be positive, at most 1000000000)", e.Amount)
}

// NoMatchError means fuzzy matching scored below the low threshold
// against every candidate.
type NoMatchError struct {
	Field   FieldType
	Input   string
	Options []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("field %s: no candidate matches %q", e.Field, e.Input)
}

// UnknownTypeError means a transaction type stayed unresolved even after
// fuzzy matching against the enumeration's aliases.
type UnknownTypeError struct {
	Input string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown transaction type %q", e.Input)
}
