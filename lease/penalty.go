package lease

import (
	"github.com/shopspring/decimal"
	"github.com/warp/rent-engine/engine"
)

// compoundScale is the number of decimal places kept while compounding.
const compoundScale = 18

// =============================================================================
// LATE PAYMENT - Contract clause (simple interest)
// =============================================================================

// LatePaymentPenalty is rent*fee% + rent*dailyInterest%*daysLate.
// Nothing is owed when daysLate <= 0.
func LatePaymentPenalty(rent engine.Money, lateFee, dailyInterest engine.Percent, daysLate int) engine.Money {
	if daysLate <= 0 {
		return engine.Money{}
	}
	fee := rent.MulPercent(lateFee)
	interest := rent.MulPercent(dailyInterest).MulInt(int64(daysLate))
	return fee.Add(interest)
}

// =============================================================================
// EARLY TERMINATION
// =============================================================================

// EarlyTerminationPenalty is a fixed multiple of the monthly rent, independent
// of how much of the term remains.
func EarlyTerminationPenalty(rent engine.Money, months int) engine.Money {
	if months <= 0 {
		return engine.Money{}
	}
	return rent.MulInt(int64(months))
}

// =============================================================================
// COMPOUND INTEREST - Delinquency report
// =============================================================================

// CompoundLateInterest is amount*(1+rate)^days - amount, the daily-compounding
// interest used when listing overdue bills. The rate is per day (0.33 means
// 0.33% a day).
func CompoundLateInterest(amount engine.Money, dailyRate engine.Percent, daysLate int) engine.Money {
	if daysLate <= 0 || dailyRate.IsZero() {
		return engine.Money{}
	}
	factor := powInt(decimal.NewFromInt(1).Add(dailyRate.Fraction()), daysLate)
	interest := amount.Decimal().Mul(factor).Sub(amount.Decimal())

	// factor >= 1, so interest is never negative.
	m, _ := engine.NewMoney(interest.Round(compoundScale))
	return m
}

// powInt raises base to a non-negative integer power by squaring.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(compoundScale)
		}
		base = base.Mul(base).Round(compoundScale)
		exp >>= 1
	}
	return result
}

// =============================================================================
// DAYS LATE
// =============================================================================

// DaysLate counts the days between due and paidOn; paying on or before the
// due date is zero days late.
func DaysLate(due, paidOn engine.Date) int {
	days := engine.DaysBetween(due, paidOn)
	if days < 0 {
		return 0
	}
	return days
}
