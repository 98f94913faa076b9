package lease

import (
	"fmt"
	"time"

	"github.com/warp/rent-engine/engine"
)

// =============================================================================
// TERMS - The LeasePeriod record of one contract
// =============================================================================

// Terms carries everything the rules need about a contract. Build it with
// NewTerms so the period and payment day are validated once.
type Terms struct {
	Period engine.Period

	// Active is false once the back-office has ended the contract.
	Active bool

	Rent                   engine.Money
	LateFeePercent         engine.Percent
	DailyInterestPercent   engine.Percent
	EarlyTerminationMonths int

	// PaymentDay is the day of the month rent is due (1-31).
	PaymentDay int

	// Guarantees; nil when the contract has none.
	Deposit         *engine.Money
	SuretyInsurance *engine.Money
}

// NewTerms validates a terms record.
func NewTerms(t Terms) (Terms, error) {
	if _, err := engine.NewPeriod(t.Period.Start, t.Period.End); err != nil {
		return Terms{}, err
	}
	if t.PaymentDay < 1 || t.PaymentDay > 31 {
		return Terms{}, &engine.PreconditionError{
			Field: "payment_day",
			Value: fmt.Sprint(t.PaymentDay),
			Err:   engine.ErrInvalidPaymentDay,
		}
	}
	if t.EarlyTerminationMonths < 0 {
		return Terms{}, &engine.PreconditionError{
			Field: "early_termination_months",
			Value: fmt.Sprint(t.EarlyTerminationMonths),
			Err:   engine.ErrInvalidTerms,
		}
	}
	return t, nil
}

// Status is Classify over the terms.
func (t Terms) Status(today engine.Date) Status {
	return Classify(today, t.Period, t.Active)
}

// LatePaymentPenalty applies the contract's late fee and daily interest.
func (t Terms) LatePaymentPenalty(daysLate int) engine.Money {
	return LatePaymentPenalty(t.Rent, t.LateFeePercent, t.DailyInterestPercent, daysLate)
}

func (t Terms) EarlyTerminationPenalty() engine.Money {
	return EarlyTerminationPenalty(t.Rent, t.EarlyTerminationMonths)
}

// Guarantees is deposit plus surety insurance.
func (t Terms) Guarantees() engine.Money {
	total := engine.Money{}
	if t.Deposit != nil {
		total = total.Add(*t.Deposit)
	}
	if t.SuretyInsurance != nil {
		total = total.Add(*t.SuretyInsurance)
	}
	return total
}

// DurationMonths counts whole months from start to end, the way the
// contract form derives them.
func (t Terms) DurationMonths() int {
	start, end := t.Period.Start, t.Period.End
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if start.AddMonths(months).After(end) {
		months--
	}
	return months
}

// DueDate is the rent due date inside the given month, clamped to the
// month's last day for payment days 29-31.
func (t Terms) DueDate(year int, month time.Month) engine.Date {
	last := engine.EndOfMonth(year, month)
	day := t.PaymentDay
	if day > last.Day() {
		day = last.Day()
	}
	return engine.NewDate(year, month, day)
}

// =============================================================================
// END DATE
// =============================================================================

// EndDate is the contract end for a term of months starting at start.
func EndDate(start engine.Date, months int) engine.Date {
	return start.AddMonths(months)
}
