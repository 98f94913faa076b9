package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "rentengine_"

// Operation label values.
const (
	OpAllocate    = "allocate"
	OpTariff      = "tariff"
	OpStatus      = "status"
	OpLatePenalty = "late_penalty"
	OpTermination = "termination_penalty"
	OpCompound    = "compound_interest"
	OpDelinquency = "delinquency"
	OpSchedule    = "schedule"
	OpSpell       = "spell"
)

// CalculatorMetrics counts calculations done through the calculator.
type CalculatorMetrics struct {
	calculations          *prometheus.CounterVec
	implausibleAllocation prometheus.Counter
	delinquentAmount      prometheus.Gauge
}

// New registers the collectors on registerer. A nil registerer uses the
// default registry.
func New(registerer prometheus.Registerer) *CalculatorMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &CalculatorMetrics{
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculations_total",
				Help: "Calculations performed, by operation",
			},
			[]string{"operation"},
		),
		implausibleAllocation: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "implausible_allocations_total",
			Help: "Allocations and tariff charges with backwards readings or a share above the whole bill",
		}),
		delinquentAmount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "delinquent_amount_reais",
			Help: "Total owed in the last delinquency report, interest included",
		}),
	}
	registerer.MustRegister(m.calculations, m.implausibleAllocation, m.delinquentAmount)
	return m
}

// Calculation increments the counter for op. Safe on a nil receiver.
func (m *CalculatorMetrics) Calculation(op string) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(op).Inc()
}

func (m *CalculatorMetrics) ImplausibleAllocation() {
	if m == nil {
		return
	}
	m.implausibleAllocation.Inc()
}

// DelinquentAmount records the total of the last report.
func (m *CalculatorMetrics) DelinquentAmount(reais float64) {
	if m == nil {
		return
	}
	m.delinquentAmount.Set(reais)
}
