package calculator_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rent-engine/allocation"
	"github.com/warp/rent-engine/calculator"
	"github.com/warp/rent-engine/engine"
	"github.com/warp/rent-engine/factory"
	"github.com/warp/rent-engine/lease"
	"github.com/warp/rent-engine/observability/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fixture struct {
	calc *calculator.Calculator
	logs *observer.ObservedLogs
	reg  *prometheus.Registry
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	reg := prometheus.NewRegistry()
	calc := calculator.New(
		calculator.WithLogger(zap.New(core)),
		calculator.WithMetrics(metrics.New(reg)),
	)
	return fixture{calc: calc, logs: logs, reg: reg}
}

// gathered returns the value of the named counter, filtered on the
// operation label when op is not empty.
func gathered(t *testing.T, reg *prometheus.Registry, name, op string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if op == "" {
				return m.GetCounter().GetValue()
			}
			for _, l := range m.GetLabel() {
				if l.GetName() == "operation" && l.GetValue() == op {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func (f fixture) count(t *testing.T, op string) int {
	t.Helper()
	return int(gathered(t, f.reg, "rentengine_calculations_total", op))
}

func terms(t *testing.T, calc *calculator.Calculator) lease.Terms {
	t.Helper()
	parsed, err := calc.ParseTerms(factory.StandardLeaseJSON("2025-01-01", "1000.00", 5))
	require.NoError(t, err)
	return *parsed
}

// =============================================================================
// ALLOCATION
// =============================================================================

func TestAllocate_LogsAndCounts(t *testing.T) {
	f := newFixture(t)

	share := f.calc.Allocate(allocation.Reading{
		Previous:    engine.MustKWh("1200"),
		Current:     engine.MustKWh("1350"),
		SharedTotal: engine.MustKWh("600"),
		TotalBill:   engine.MustMoney("480"),
	})

	assert.Equal(t, "120.00", share.Display().AmountDue)
	assert.Equal(t, 1, f.count(t, metrics.OpAllocate))

	entries := f.logs.FilterMessage("allocation computed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "120", entries[0].ContextMap()["amount_due"])
}

func TestAllocate_ImplausibleWarns(t *testing.T) {
	// GIVEN: A reading that runs backwards
	f := newFixture(t)

	share := f.calc.Allocate(allocation.Reading{
		Previous:    engine.MustKWh("1350"),
		Current:     engine.MustKWh("1200"),
		SharedTotal: engine.MustKWh("600"),
		TotalBill:   engine.MustMoney("480"),
	})

	// THEN: The negative share is returned as is, with a warning
	assert.True(t, share.AmountDue.IsNegative())
	assert.Equal(t, 1, f.logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, float64(1), gathered(t, f.reg, "rentengine_implausible_allocations_total", ""))
}

// =============================================================================
// LEASE
// =============================================================================

func TestLeaseOperations(t *testing.T) {
	f := newFixture(t)
	tr := terms(t, f.calc)

	assert.Equal(t, lease.StatusActive, f.calc.Status(tr, engine.NewDate(2025, time.June, 1)))
	assert.Equal(t, "116.50", f.calc.LatePaymentPenalty(tr, 5).String())
	assert.Equal(t, "116.50", f.calc.LatePaymentPenaltyOn(tr, engine.NewDate(2025, time.March, 5), engine.NewDate(2025, time.March, 10)).String())
	assert.Equal(t, "3000.00", f.calc.EarlyTerminationPenalty(tr).String())
	assert.Equal(t, "3.30", f.calc.CompoundLateInterest(tr.Rent, engine.MustPercent("0.33"), 1).String())

	assert.Equal(t, 1, f.count(t, metrics.OpStatus))
	assert.Equal(t, 2, f.count(t, metrics.OpLatePenalty))
	assert.Equal(t, 1, f.count(t, metrics.OpTermination))
	assert.Equal(t, 1, f.count(t, metrics.OpCompound))
}

func TestParseTerms_Rejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.calc.ParseTerms(`{"start_date": "2025-01-01", "rent": "-1"}`)
	assert.ErrorIs(t, err, engine.ErrNegativeAmount)
	assert.Equal(t, 1, f.logs.FilterMessage("terms rejected").Len())
}

func TestWithTermsDefaults(t *testing.T) {
	d := factory.ContractDefaults()
	d.PaymentDay = 1
	calc := calculator.New(calculator.WithTermsDefaults(d))

	tr, err := calc.ParseTerms(`{"start_date": "2025-01-01", "rent": "800"}`)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.PaymentDay)
}

func TestDelinquency(t *testing.T) {
	f := newFixture(t)
	window := engine.Window(engine.NewDate(2025, time.March, 1), engine.NewDate(2025, time.March, 31))

	report := f.calc.Delinquency([]lease.Bill{
		{Reference: "Aluguel ref. Março/2025", DueDate: engine.NewDate(2025, time.March, 10), Amount: engine.MustMoney("1000")},
	}, window, engine.NewDate(2025, time.March, 12), engine.MustPercent("0.33"))

	require.Len(t, report.Lines, 1)
	assert.Equal(t, "1006.61", report.Total.String())
	assert.Equal(t, 1, f.count(t, metrics.OpDelinquency))
}

// =============================================================================
// CURRENCY TEXT
// =============================================================================

func TestSpell(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "mil e oitocentos reais", f.calc.Spell(engine.MustMoney("1800")))
	assert.Equal(t, 1, f.count(t, metrics.OpSpell))
}

func TestNew_WithoutOptions(t *testing.T) {
	calc := calculator.New()
	assert.NotPanics(t, func() {
		calc.Spell(engine.MustMoney("1"))
		calc.Allocate(allocation.Reading{})
	})
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5.5", "R$ 5,50"},
		{"999.99", "R$ 999,99"},
		{"1234.1", "R$ 1.234,10"},
		{"1000000", "R$ 1.000.000,00"},
		{"123456789.005", "R$ 123.456.789,01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calculator.FormatBRL(engine.MustMoney(tt.in)))
	}
}

func TestClauses(t *testing.T) {
	calc := calculator.New()
	tr := terms(t, calc)

	assert.Equal(t,
		"R$ 1.234,10 (mil e duzentos e trinta e quatro reais e dez centavos)",
		calc.AmountClause(engine.MustMoney("1234.10")))
	assert.Equal(t, "todo dia 5 (cinco) de cada mês", calc.PaymentDayClause(tr))
	assert.Equal(t,
		"12 (doze) meses, de 1 de janeiro de 2025 a 1 de janeiro de 2026",
		calc.DurationClause(tr))
	assert.Equal(t,
		"Recebi de Maria Souza a importância de R$ 1.000,00 (mil reais), referente a Aluguel ref. Janeiro/2025.",
		calc.ReceiptLine("Maria Souza", tr.Rent, "Aluguel ref. Janeiro/2025"))
}

func TestDurationClause_SingleMonth(t *testing.T) {
	calc := calculator.New()
	tr, err := calc.ParseTerms(`{"start_date": "2025-01-31", "duration_months": 1, "rent": "500"}`)
	require.NoError(t, err)
	assert.Equal(t, "1 (um) mês, de 31 de janeiro de 2025 a 28 de fevereiro de 2025", calc.DurationClause(*tr))
}

func TestRentBills(t *testing.T) {
	f := newFixture(t)
	tr := terms(t, f.calc)

	bills := f.calc.RentBills(tr, "Ana Lima", "Rua das Flores, 12")

	require.Len(t, bills, 12)
	assert.Equal(t, "Aluguel ref. Janeiro/2025", bills[0].Reference)
	assert.Equal(t, "Aluguel ref. Março/2025", bills[2].Reference)
	assert.Equal(t, "2025-03-05", bills[2].DueDate.String())
	assert.Equal(t, "Ana Lima", bills[2].Tenant)
	assert.False(t, bills[2].Paid)
	assert.Equal(t, 1, f.count(t, metrics.OpSchedule))

	// AND: Feeding them to the delinquency report picks up what is overdue
	report := f.calc.Delinquency(bills, tr.Period, engine.NewDate(2025, time.March, 6), engine.MustPercent("0.33"))
	require.Len(t, report.Lines, 3)
	assert.Equal(t, "3000.00", report.Principal.String())
}

func TestAtTariff_LogsAndCounts(t *testing.T) {
	f := newFixture(t)

	charge := f.calc.AtTariff(engine.MustKWh("1200"), engine.MustKWh("1350"), engine.MustMoney("0.85"))

	assert.Equal(t, "127.50", charge.Display().AmountDue)
	assert.Equal(t, 1, f.count(t, metrics.OpTariff))
	entries := f.logs.FilterMessage("tariff charge computed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "127.5", entries[0].ContextMap()["amount"])
}

func TestAtTariff_BackwardsReadingWarns(t *testing.T) {
	f := newFixture(t)

	charge := f.calc.AtTariff(engine.MustKWh("1350"), engine.MustKWh("1200"), engine.MustMoney("0.85"))

	assert.True(t, charge.Amount.IsNegative())
	assert.Equal(t, 1, f.logs.FilterMessage("implausible tariff reading").Len())
	assert.Equal(t, float64(1), gathered(t, f.reg, "rentengine_implausible_allocations_total", ""))
}
