/*
Package allocation apportions a shared utility bill to one tenant.

PURPOSE:
  Several houses share one electricity meter and one invoice. Each house has
  its own sub-meter. A tenant pays the fraction of the invoice that matches
  the fraction of the shared consumption their sub-meter recorded.

FORMULAS:
  consumption = current - previous
  percent     = consumption / sharedTotal * 100
  amountDue   = consumption / sharedTotal * totalBill

TARIFF:
  A house with its own meter and invoice is billed directly:
  amount = consumption * pricePerKWh (see tariff.go).

ZERO BASELINE:
  A newly registered property has no shared history yet. When sharedTotal is
  zero the tenant has no attributable share: percent and amountDue are zero.
  This is a normal state, not an error.

IMPLAUSIBLE INPUT:
  Readings that run backwards (negative consumption) or a consumption larger
  than the shared total are NOT clamped. The arithmetic result is returned
  as is so the mistake stays visible; Share.Implausible() reports it.

PRECISION:
  No rounding is applied. Share.Display() gives the two-place strings used on
  screens and bills while the full-precision values remain available for
  storage.
*/
package allocation

import (
	"github.com/shopspring/decimal"
	"github.com/warp/rent-engine/engine"
)

// =============================================================================
// READING - One tenant's meter period
// =============================================================================

// Reading is the MeterReadingPeriod of a single tenant.
type Reading struct {
	Previous    engine.KWh
	Current     engine.KWh
	SharedTotal engine.KWh
	TotalBill   engine.Money
}

// Allocate is a convenience over the package-level Allocate.
func (r Reading) Allocate() Share {
	return Allocate(r.Previous, r.Current, r.SharedTotal, r.TotalBill)
}

// =============================================================================
// SHARE - Result of an allocation
// =============================================================================

// Share holds full-precision results. Values may be negative or exceed the
// bill when the readings are implausible.
type Share struct {
	IndividualConsumption decimal.Decimal
	ProportionalPercent   decimal.Decimal
	AmountDue             decimal.Decimal

	// TotalBill is kept to evaluate Implausible.
	TotalBill decimal.Decimal
}

// Allocate computes one tenant's share of a shared bill.
func Allocate(previous, current, sharedTotal engine.KWh, totalBill engine.Money) Share {
	consumption := current.Decimal().Sub(previous.Decimal())
	share := Share{
		IndividualConsumption: consumption,
		ProportionalPercent:   decimal.Zero,
		AmountDue:             decimal.Zero,
		TotalBill:             totalBill.Decimal(),
	}

	total := sharedTotal.Decimal()
	if !total.IsPositive() {
		return share
	}

	share.ProportionalPercent = consumption.Mul(engine.Hundred()).Div(total)
	share.AmountDue = consumption.Mul(totalBill.Decimal()).Div(total)
	return share
}

// Implausible reports readings a caller should reject: consumption below
// zero or a share larger than the whole bill.
func (s Share) Implausible() bool {
	return s.IndividualConsumption.IsNegative() || s.AmountDue.GreaterThan(s.TotalBill)
}

// Display is the two-place rendering of a Share.
type Display struct {
	Consumption string
	Percent     string
	AmountDue   string
}

func (s Share) Display() Display {
	return Display{
		Consumption: s.IndividualConsumption.StringFixed(2),
		Percent:     s.ProportionalPercent.StringFixed(2),
		AmountDue:   s.AmountDue.StringFixed(2),
	}
}
