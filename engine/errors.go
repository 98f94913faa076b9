/*
errors.go - Centralized error types for the rules engine

PURPOSE:
  The computations themselves never fail: they are total functions over
  validated values. Every error in the engine is a PRECONDITION violation
  detected while building those values (negative money, malformed numbers,
  inverted periods, impossible payment days).

USAGE:
  rent, err := engine.ParseMoney(input)
  if engine.IsPrecondition(err) {
      // show "valor inválido" to the user
  }

  var pe *engine.PreconditionError
  if errors.As(err, &pe) {
      log.Printf("bad %s: %q", pe.Field, pe.Value)
  }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNegativeAmount is returned when a money, percent or reading value is
	// below zero.
	ErrNegativeAmount = errors.New("negative amount")

	// ErrMalformedNumber is returned when caller text is not a decimal number.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrInvalidPeriod is returned when a period does not end after it starts.
	ErrInvalidPeriod = errors.New("invalid period: end not after start")

	// ErrMalformedDate is returned when caller text is not a YYYY-MM-DD date.
	ErrMalformedDate = errors.New("malformed date")

	// ErrInvalidPaymentDay is returned for a monthly due day outside 1-31.
	ErrInvalidPaymentDay = errors.New("payment day must be between 1 and 31")

	// ErrInvalidTerms is returned when contract terms are inconsistent.
	ErrInvalidTerms = errors.New("invalid contract terms")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// PreconditionError names the offending input.
type PreconditionError struct {
	Field string
	Value string
	Err   error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsPrecondition returns true if err was caused by invalid caller input.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrMalformedNumber) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrMalformedDate) ||
		errors.Is(err, ErrInvalidPaymentDay) ||
		errors.Is(err, ErrInvalidTerms)
}
