package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
)

const engineSubsystem = "engine"

// TradingMetricsCollector records engine events.
// It implements services.MetricsRecorder.
type TradingMetricsCollector struct {
	planRequests       *prometheus.CounterVec
	availabilityChecks *prometheus.CounterVec
	sales              *prometheus.CounterVec
	priceCalculations  *prometheus.CounterVec
}

var _ services.MetricsRecorder = (*TradingMetricsCollector)(nil)

// NewTradingMetricsCollector creates the engine collectors under namespace
func NewTradingMetricsCollector(namespace string) *TradingMetricsCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &TradingMetricsCollector{
		planRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: engineSubsystem,
				Name:      "plan_requests_total",
				Help:      "Availability plan requests by outcome",
			},
			[]string{"outcome"},
		),
		availabilityChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: engineSubsystem,
				Name:      "availability_checks_total",
				Help:      "Cargo availability checks by decision source and result",
			},
			[]string{"source", "available"},
		),
		sales: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: engineSubsystem,
				Name:      "sales_total",
				Help:      "Selling workflow runs by path and outcome",
			},
			[]string{"path", "outcome"},
		),
		priceCalculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: engineSubsystem,
				Name:      "price_calculations_total",
				Help:      "Price calculations by side",
			},
			[]string{"side"},
		),
	}
}

// Register adds the engine metrics to reg
func (c *TradingMetricsCollector) Register(reg prometheus.Registerer) error {
	return registerAll(reg, c.planRequests, c.availabilityChecks, c.sales, c.priceCalculations)
}

func (c *TradingMetricsCollector) RecordPlanRequest(outcome string) {
	c.planRequests.WithLabelValues(outcome).Inc()
}

func (c *TradingMetricsCollector) RecordAvailabilityCheck(source string, available bool) {
	c.availabilityChecks.WithLabelValues(source, strconv.FormatBool(available)).Inc()
}

func (c *TradingMetricsCollector) RecordSale(path string, outcome string) {
	c.sales.WithLabelValues(path, outcome).Inc()
}

func (c *TradingMetricsCollector) RecordPriceCalculation(side string) {
	c.priceCalculations.WithLabelValues(side).Inc()
}
