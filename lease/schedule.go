package lease

import (
	"time"

	"github.com/warp/rent-engine/engine"
)

// =============================================================================
// RENT SCHEDULE - Monthly installments over the contract term
// =============================================================================

// Installment is one month of rent.
type Installment struct {
	Year    int
	Month   time.Month
	DueDate engine.Date
	Amount  engine.Money
}

// Schedule lists the monthly installments whose due date falls in
// [start, end). The due day is clamped to short months, so a contract
// paying on the 31st is due Feb 28.
func (t Terms) Schedule() []Installment {
	var out []Installment

	current := engine.NewDate(t.Period.Start.Year(), t.Period.Start.Month(), 1)
	last := engine.NewDate(t.Period.End.Year(), t.Period.End.Month(), 1)

	for current.BeforeOrEqual(last) {
		due := t.DueDate(current.Year(), current.Month())
		if due.AfterOrEqual(t.Period.Start) && due.Before(t.Period.End) {
			out = append(out, Installment{
				Year:    current.Year(),
				Month:   current.Month(),
				DueDate: due,
				Amount:  t.Rent,
			})
		}
		current = current.AddMonths(1)
	}
	return out
}
