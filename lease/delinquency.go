package lease

import (
	"sort"

	"github.com/warp/rent-engine/engine"
)

// =============================================================================
// DELINQUENCY REPORT - Unpaid bills due inside a window
// =============================================================================

// Bill is an invoice the back-office issued to a tenant.
type Bill struct {
	Reference string // e.g. "Aluguel ref. Janeiro/2025"
	Tenant    string
	Address   string
	DueDate   engine.Date
	Amount    engine.Money
	Paid      bool
}

// DelinquencyLine is one unpaid bill with its accrued interest.
type DelinquencyLine struct {
	Bill     Bill
	DaysLate int
	Interest engine.Money
	Total    engine.Money
}

type DelinquencyReport struct {
	Window    engine.Period
	AsOf      engine.Date
	Lines     []DelinquencyLine
	Principal engine.Money
	Interest  engine.Money
	Total     engine.Money
}

// Delinquency lists unpaid bills whose due date falls inside window and is
// already past on asOf. Interest compounds daily at dailyRate. Lines are
// ordered by due date, then reference.
func Delinquency(bills []Bill, window engine.Period, asOf engine.Date, dailyRate engine.Percent) DelinquencyReport {
	report := DelinquencyReport{Window: window, AsOf: asOf}

	for _, b := range bills {
		if b.Paid || !window.Contains(b.DueDate) || !b.DueDate.Before(asOf) {
			continue
		}
		days := DaysLate(b.DueDate, asOf)
		interest := CompoundLateInterest(b.Amount, dailyRate, days)
		report.Lines = append(report.Lines, DelinquencyLine{
			Bill:     b,
			DaysLate: days,
			Interest: interest,
			Total:    b.Amount.Add(interest),
		})
		report.Principal = report.Principal.Add(b.Amount)
		report.Interest = report.Interest.Add(interest)
	}

	sort.SliceStable(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i].Bill, report.Lines[j].Bill
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.Reference < b.Reference
	})

	report.Total = report.Principal.Add(report.Interest)
	return report
}
