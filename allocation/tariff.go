package allocation

import (
	"github.com/shopspring/decimal"
	"github.com/warp/rent-engine/engine"
)

// =============================================================================
// TARIFF - Individually metered property billed per kWh
// =============================================================================

// TariffCharge is consumption priced at a flat rate per kWh. Like Share, it
// keeps full precision and may be negative when the readings run backwards.
type TariffCharge struct {
	IndividualConsumption decimal.Decimal
	PricePerKWh           decimal.Decimal
	Amount                decimal.Decimal
}

// AtTariff bills current - previous at pricePerKWh.
func AtTariff(previous, current engine.KWh, pricePerKWh engine.Money) TariffCharge {
	consumption := current.Decimal().Sub(previous.Decimal())
	return TariffCharge{
		IndividualConsumption: consumption,
		PricePerKWh:           pricePerKWh.Decimal(),
		Amount:                consumption.Mul(pricePerKWh.Decimal()),
	}
}

// Implausible reports a reading that runs backwards.
func (c TariffCharge) Implausible() bool {
	return c.IndividualConsumption.IsNegative()
}

func (c TariffCharge) Display() Display {
	return Display{
		Consumption: c.IndividualConsumption.StringFixed(2),
		AmountDue:   c.Amount.StringFixed(2),
	}
}
