/*
Package factory provides JSON to Go contract terms conversion.

PURPOSE:
  The back-office keeps contract terms as JSON (form submissions, stored
  records, fixtures). The factory turns that JSON into validated lease.Terms,
  filling in the contractual defaults for clauses the document leaves blank.

WHY JSON?
  - Same shape the contract form posts
  - Amounts travel as strings, so "1200.50" never passes through float64
  - Easy to store next to the generated contract

JSON SCHEMA:
  {
    "start_date": "2025-01-01",
    "end_date": "2026-01-01",       // or "duration_months": 12
    "active": true,
    "rent": "1200.00",
    "payment_day": 10,
    "deposit": "1200.00",
    "surety_insurance": "300.00",
    "late_fee_percent": "10",
    "daily_interest_percent": "0.33",
    "early_termination_months": 3
  }

DEFAULTS:
  late fee 10%, daily interest 0.33%, early termination 3 months, payment
  day 10, duration 12 months. Override them with NewTermsFactory(defaults),
  usually from config.

USAGE:
  f := factory.NewTermsFactory(factory.ContractDefaults())
  terms, err := f.ParseTerms(jsonStr)
  status := terms.Status(engine.Today())

SEE ALSO:
  - lease/terms.go: Terms type and validation
  - config/config.go: YAML source for Defaults
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/rent-engine/engine"
	"github.com/warp/rent-engine/lease"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TermsJSON is the JSON representation of contract terms.
type TermsJSON struct {
	StartDate              string  `json:"start_date"`
	EndDate                string  `json:"end_date,omitempty"`
	DurationMonths         *int    `json:"duration_months,omitempty"`
	Active                 *bool   `json:"active,omitempty"` // Default true
	Rent                   string  `json:"rent"`
	PaymentDay             *int    `json:"payment_day,omitempty"`
	Deposit                *string `json:"deposit,omitempty"`
	SuretyInsurance        *string `json:"surety_insurance,omitempty"`
	LateFeePercent         *string `json:"late_fee_percent,omitempty"`
	DailyInterestPercent   *string `json:"daily_interest_percent,omitempty"`
	EarlyTerminationMonths *int    `json:"early_termination_months,omitempty"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Defaults are the clauses applied when the JSON leaves them out.
type Defaults struct {
	LateFeePercent         engine.Percent
	DailyInterestPercent   engine.Percent
	EarlyTerminationMonths int
	PaymentDay             int
	DurationMonths         int
}

// ContractDefaults are the standard residential lease clauses.
func ContractDefaults() Defaults {
	return Defaults{
		LateFeePercent:         engine.MustPercent("10"),
		DailyInterestPercent:   engine.MustPercent("0.33"),
		EarlyTerminationMonths: 3,
		PaymentDay:             10,
		DurationMonths:         12,
	}
}

// =============================================================================
// TERMS FACTORY
// =============================================================================

// TermsFactory converts JSON terms to lease.Terms.
type TermsFactory struct {
	Defaults Defaults
}

// NewTermsFactory creates a factory with the given defaults.
func NewTermsFactory(defaults Defaults) *TermsFactory {
	return &TermsFactory{Defaults: defaults}
}

// ParseTerms parses a JSON string into validated terms.
func (f *TermsFactory) ParseTerms(jsonStr string) (*lease.Terms, error) {
	var tj TermsJSON
	if err := json.Unmarshal([]byte(jsonStr), &tj); err != nil {
		return nil, fmt.Errorf("failed to parse terms JSON: %w", err)
	}

	return f.FromJSON(tj)
}

// FromJSON converts TermsJSON to lease.Terms.
func (f *TermsFactory) FromJSON(tj TermsJSON) (*lease.Terms, error) {
	period, err := f.parsePeriod(tj)
	if err != nil {
		return nil, err
	}

	rent, err := engine.ParseMoney(tj.Rent)
	if err != nil {
		return nil, fmt.Errorf("rent: %w", err)
	}

	terms := lease.Terms{
		Period:                 period,
		Active:                 tj.Active == nil || *tj.Active,
		Rent:                   rent,
		LateFeePercent:         f.Defaults.LateFeePercent,
		DailyInterestPercent:   f.Defaults.DailyInterestPercent,
		EarlyTerminationMonths: intOr(tj.EarlyTerminationMonths, f.Defaults.EarlyTerminationMonths),
		PaymentDay:             intOr(tj.PaymentDay, f.Defaults.PaymentDay),
	}

	if tj.LateFeePercent != nil {
		if terms.LateFeePercent, err = engine.ParsePercent(*tj.LateFeePercent); err != nil {
			return nil, fmt.Errorf("late_fee_percent: %w", err)
		}
	}
	if tj.DailyInterestPercent != nil {
		if terms.DailyInterestPercent, err = engine.ParsePercent(*tj.DailyInterestPercent); err != nil {
			return nil, fmt.Errorf("daily_interest_percent: %w", err)
		}
	}
	if terms.Deposit, err = parseGuarantee(tj.Deposit); err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if terms.SuretyInsurance, err = parseGuarantee(tj.SuretyInsurance); err != nil {
		return nil, fmt.Errorf("surety_insurance: %w", err)
	}

	validated, err := lease.NewTerms(terms)
	if err != nil {
		return nil, err
	}
	return &validated, nil
}

// ToJSON converts terms back to their JSON form. Duration is written as an
// explicit end date.
func (f *TermsFactory) ToJSON(t lease.Terms) TermsJSON {
	active := t.Active
	lateFee := t.LateFeePercent.Decimal().String()
	daily := t.DailyInterestPercent.Decimal().String()
	months := t.EarlyTerminationMonths
	day := t.PaymentDay

	tj := TermsJSON{
		StartDate:              t.Period.Start.String(),
		EndDate:                t.Period.End.String(),
		Active:                 &active,
		Rent:                   t.Rent.String(),
		PaymentDay:             &day,
		LateFeePercent:         &lateFee,
		DailyInterestPercent:   &daily,
		EarlyTerminationMonths: &months,
	}
	if t.Deposit != nil {
		s := t.Deposit.String()
		tj.Deposit = &s
	}
	if t.SuretyInsurance != nil {
		s := t.SuretyInsurance.String()
		tj.SuretyInsurance = &s
	}
	return tj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func (f *TermsFactory) parsePeriod(tj TermsJSON) (engine.Period, error) {
	start, err := engine.ParseDate(tj.StartDate)
	if err != nil {
		return engine.Period{}, fmt.Errorf("start_date: %w", err)
	}

	var end engine.Date
	switch {
	case tj.EndDate != "":
		if end, err = engine.ParseDate(tj.EndDate); err != nil {
			return engine.Period{}, fmt.Errorf("end_date: %w", err)
		}
	default:
		end = lease.EndDate(start, intOr(tj.DurationMonths, f.Defaults.DurationMonths))
	}

	return engine.NewPeriod(start, end)
}

func parseGuarantee(s *string) (*engine.Money, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	m, err := engine.ParseMoney(*s)
	if err != nil {
		return nil, err
	}
	if m.IsZero() {
		return nil, nil
	}
	return &m, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// =============================================================================
// PRESET TERMS
// =============================================================================

// StandardLeaseJSON returns a 12-month residential lease with the default
// clauses, starting on start.
func StandardLeaseJSON(start string, rent string, paymentDay int) string {
	return fmt.Sprintf(`{
		"start_date": %q,
		"duration_months": 12,
		"rent": %q,
		"payment_day": %d,
		"deposit": %q
	}`, start, rent, paymentDay, rent)
}
