/*
Package calculator is the entry point collaborators use to run the rules.

PURPOSE:
  allocation, lease and extenso are pure and know nothing about each other.
  The back-office screens, the receipt generator and the rentcalc tool want
  one object that runs a rule, logs what it computed and counts it. This
  package is that object. It adds no rules of its own.

DEPENDENCIES:
  - *zap.Logger: debug line per calculation, warn on implausible readings
  - *metrics.CalculatorMetrics: per-operation counters
  - *factory.TermsFactory: JSON contract terms with installation defaults

  All three are optional; New() alone gives a silent calculator with the
  standard contract defaults.

CONCURRENCY:
  A Calculator holds no mutable state and may be shared between goroutines.

USAGE:
  calc := calculator.New(
      calculator.WithLogger(log),
      calculator.WithMetrics(metrics.New(reg)),
  )
  share := calc.Allocate(reading)
  text := calc.Spell(terms.Rent)

SEE ALSO:
  - clauses.go: contract and receipt wording
*/
package calculator

import (
	"strconv"
	"strings"
	"time"

	"github.com/warp/rent-engine/allocation"
	"github.com/warp/rent-engine/engine"
	"github.com/warp/rent-engine/extenso"
	"github.com/warp/rent-engine/factory"
	"github.com/warp/rent-engine/lease"
	"github.com/warp/rent-engine/observability/metrics"
	"go.uber.org/zap"
)

// Calculator runs the rules with logging and metrics around them.
type Calculator struct {
	log     *zap.Logger
	metrics *metrics.CalculatorMetrics
	terms   *factory.TermsFactory
}

// Option configures a Calculator.
type Option func(*Calculator)

func WithLogger(log *zap.Logger) Option {
	return func(c *Calculator) {
		if log != nil {
			c.log = log
		}
	}
}

func WithMetrics(m *metrics.CalculatorMetrics) Option {
	return func(c *Calculator) { c.metrics = m }
}

// WithTermsDefaults replaces the clauses applied to incomplete JSON terms.
func WithTermsDefaults(d factory.Defaults) Option {
	return func(c *Calculator) { c.terms = factory.NewTermsFactory(d) }
}

// New creates a calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		log:   zap.NewNop(),
		terms: factory.NewTermsFactory(factory.ContractDefaults()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// ALLOCATION
// =============================================================================

// Allocate apportions the shared bill for one reading. Implausible readings
// are returned unchanged and logged at warn.
func (c *Calculator) Allocate(r allocation.Reading) allocation.Share {
	share := r.Allocate()
	c.metrics.Calculation(metrics.OpAllocate)

	fields := []zap.Field{
		zap.Stringer("previous", r.Previous),
		zap.Stringer("current", r.Current),
		zap.Stringer("shared_total", r.SharedTotal),
		zap.Stringer("total_bill", r.TotalBill),
		zap.String("consumption", share.IndividualConsumption.String()),
		zap.String("percent", share.ProportionalPercent.String()),
		zap.String("amount_due", share.AmountDue.String()),
	}
	if share.Implausible() {
		c.metrics.ImplausibleAllocation()
		c.log.Warn("implausible allocation", fields...)
		return share
	}
	c.log.Debug("allocation computed", fields...)
	return share
}

// AtTariff bills an individually metered reading at a price per kWh.
func (c *Calculator) AtTariff(previous, current engine.KWh, pricePerKWh engine.Money) allocation.TariffCharge {
	charge := allocation.AtTariff(previous, current, pricePerKWh)
	c.metrics.Calculation(metrics.OpTariff)

	fields := []zap.Field{
		zap.Stringer("previous", previous),
		zap.Stringer("current", current),
		zap.Stringer("price_per_kwh", pricePerKWh),
		zap.String("consumption", charge.IndividualConsumption.String()),
		zap.String("amount", charge.Amount.String()),
	}
	if charge.Implausible() {
		c.metrics.ImplausibleAllocation()
		c.log.Warn("implausible tariff reading", fields...)
		return charge
	}
	c.log.Debug("tariff charge computed", fields...)
	return charge
}

// =============================================================================
// LEASE
// =============================================================================

// ParseTerms builds validated terms from their JSON document.
func (c *Calculator) ParseTerms(jsonStr string) (*lease.Terms, error) {
	terms, err := c.terms.ParseTerms(jsonStr)
	if err != nil {
		c.log.Debug("terms rejected", zap.Error(err))
		return nil, err
	}
	return terms, nil
}

// Status classifies the contract on today.
func (c *Calculator) Status(t lease.Terms, today engine.Date) lease.Status {
	status := t.Status(today)
	c.metrics.Calculation(metrics.OpStatus)
	c.log.Debug("status classified",
		zap.Stringer("period", t.Period),
		zap.Bool("active", t.Active),
		zap.Stringer("today", today),
		zap.String("status", string(status)),
	)
	return status
}

// LatePaymentPenalty is the contract's simple-interest penalty for daysLate.
func (c *Calculator) LatePaymentPenalty(t lease.Terms, daysLate int) engine.Money {
	penalty := t.LatePaymentPenalty(daysLate)
	c.metrics.Calculation(metrics.OpLatePenalty)
	c.log.Debug("late payment penalty computed",
		zap.Stringer("rent", t.Rent),
		zap.Int("days_late", daysLate),
		zap.Stringer("penalty", penalty),
	)
	return penalty
}

// LatePaymentPenaltyOn derives the days late from the due and payment dates.
func (c *Calculator) LatePaymentPenaltyOn(t lease.Terms, due, paidOn engine.Date) engine.Money {
	return c.LatePaymentPenalty(t, lease.DaysLate(due, paidOn))
}

func (c *Calculator) EarlyTerminationPenalty(t lease.Terms) engine.Money {
	penalty := t.EarlyTerminationPenalty()
	c.metrics.Calculation(metrics.OpTermination)
	c.log.Debug("early termination penalty computed",
		zap.Stringer("rent", t.Rent),
		zap.Int("months", t.EarlyTerminationMonths),
		zap.Stringer("penalty", penalty),
	)
	return penalty
}

// CompoundLateInterest is the daily-compounded interest on an overdue amount.
func (c *Calculator) CompoundLateInterest(amount engine.Money, dailyRate engine.Percent, daysLate int) engine.Money {
	interest := lease.CompoundLateInterest(amount, dailyRate, daysLate)
	c.metrics.Calculation(metrics.OpCompound)
	c.log.Debug("compound interest computed",
		zap.Stringer("amount", amount),
		zap.Stringer("daily_rate", dailyRate),
		zap.Int("days_late", daysLate),
		zap.String("interest", interest.Decimal().String()),
	)
	return interest
}

// Delinquency builds the report of unpaid bills in window as of asOf.
func (c *Calculator) Delinquency(bills []lease.Bill, window engine.Period, asOf engine.Date, dailyRate engine.Percent) lease.DelinquencyReport {
	report := lease.Delinquency(bills, window, asOf, dailyRate)
	c.metrics.Calculation(metrics.OpDelinquency)
	c.metrics.DelinquentAmount(report.Total.Decimal().InexactFloat64())
	c.log.Debug("delinquency report built",
		zap.Stringer("window", window),
		zap.Stringer("as_of", asOf),
		zap.Int("bills", len(bills)),
		zap.Int("overdue", len(report.Lines)),
		zap.Stringer("total", report.Total),
	)
	return report
}

// RentBills issues one bill per installment of the contract schedule,
// referenced as "Aluguel ref. Março/2025".
func (c *Calculator) RentBills(t lease.Terms, tenant, address string) []lease.Bill {
	schedule := t.Schedule()
	bills := make([]lease.Bill, 0, len(schedule))
	for _, in := range schedule {
		bills = append(bills, lease.Bill{
			Reference: "Aluguel ref. " + titleMonth(in.Month) + "/" + strconv.Itoa(in.Year),
			Tenant:    tenant,
			Address:   address,
			DueDate:   in.DueDate,
			Amount:    in.Amount,
		})
	}
	c.metrics.Calculation(metrics.OpSchedule)
	c.log.Debug("rent bills issued",
		zap.Stringer("period", t.Period),
		zap.String("tenant", tenant),
		zap.Int("bills", len(bills)),
	)
	return bills
}

func titleMonth(m time.Month) string {
	name := extenso.MonthName(m)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// =============================================================================
// CURRENCY TEXT
// =============================================================================

// Spell writes amount out in pt-BR words.
func (c *Calculator) Spell(amount engine.Money) string {
	text := extenso.Spell(amount)
	c.metrics.Calculation(metrics.OpSpell)
	c.log.Debug("amount spelled", zap.Stringer("amount", amount), zap.String("text", text))
	return text
}
