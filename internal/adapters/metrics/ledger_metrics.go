package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

const ledgerSubsystem = "ledger"

// LedgerMetricsCollector tracks currency and cargo moving through the ledger
type LedgerMetricsCollector struct {
	currencyMoved *prometheus.CounterVec
	cargoMoved    *prometheus.CounterVec
	failures      *prometheus.CounterVec
}

// NewLedgerMetricsCollector creates the ledger collectors under namespace
func NewLedgerMetricsCollector(namespace string) *LedgerMetricsCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &LedgerMetricsCollector{
		currencyMoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: ledgerSubsystem,
				Name:      "currency_total",
				Help:      "Currency credited or debited",
			},
			[]string{"direction"},
		),
		cargoMoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: ledgerSubsystem,
				Name:      "cargo_ep_total",
				Help:      "Cargo moved into or out of inventories, in EP",
			},
			[]string{"direction", "cargo"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: ledgerSubsystem,
				Name:      "failures_total",
				Help:      "Ledger operations that returned an error",
			},
			[]string{"operation"},
		),
	}
}

// Register adds the ledger metrics to reg
func (c *LedgerMetricsCollector) Register(reg prometheus.Registerer) error {
	return registerAll(reg, c.currencyMoved, c.cargoMoved, c.failures)
}

// Instrument wraps a ledger so every successful mutation is counted
func (c *LedgerMetricsCollector) Instrument(inner trading.LedgerAdapter) trading.LedgerAdapter {
	return &instrumentedLedger{inner: inner, collector: c}
}

type instrumentedLedger struct {
	inner     trading.LedgerAdapter
	collector *LedgerMetricsCollector
}

func (l *instrumentedLedger) AddCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error {
	if err := l.inner.AddCurrency(ctx, actorID, amount); err != nil {
		l.collector.failures.WithLabelValues("add_currency").Inc()
		return err
	}
	l.collector.currencyMoved.WithLabelValues("in").Add(amount.InexactFloat64())
	return nil
}

func (l *instrumentedLedger) DeductCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error {
	if err := l.inner.DeductCurrency(ctx, actorID, amount); err != nil {
		l.collector.failures.WithLabelValues("deduct_currency").Inc()
		return err
	}
	l.collector.currencyMoved.WithLabelValues("out").Add(amount.InexactFloat64())
	return nil
}

func (l *instrumentedLedger) AddCargoToInventory(ctx context.Context, actorID string, lot trading.CargoLot) error {
	if err := l.inner.AddCargoToInventory(ctx, actorID, lot); err != nil {
		l.collector.failures.WithLabelValues("add_cargo").Inc()
		return err
	}
	l.collector.cargoMoved.WithLabelValues("in", lot.CargoName).Add(float64(lot.Quantity))
	return nil
}

func (l *instrumentedLedger) RemoveCargoFromInventory(ctx context.Context, actorID string, cargoName string, quantity int) error {
	if err := l.inner.RemoveCargoFromInventory(ctx, actorID, cargoName, quantity); err != nil {
		l.collector.failures.WithLabelValues("remove_cargo").Inc()
		return err
	}
	l.collector.cargoMoved.WithLabelValues("out", cargoName).Add(float64(quantity))
	return nil
}
