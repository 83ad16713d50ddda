package services

// MetricsRecorder receives engine events; the Prometheus adapter implements it
type MetricsRecorder interface {
	RecordPlanRequest(outcome string)
	RecordAvailabilityCheck(source string, available bool)
	RecordSale(path string, outcome string)
	RecordPriceCalculation(side string)
}

// Plan request outcomes reported to MetricsRecorder
const (
	PlanOutcomeDisabled    = "disabled"
	PlanOutcomeCacheHit    = "cache_hit"
	PlanOutcomeGenerated   = "generated"
	PlanOutcomeUnavailable = "unavailable"
	PlanOutcomeFailed      = "failed"
)

type noopMetrics struct{}

func (noopMetrics) RecordPlanRequest(string)             {}
func (noopMetrics) RecordAvailabilityCheck(string, bool) {}
func (noopMetrics) RecordSale(string, string)            {}
func (noopMetrics) RecordPriceCalculation(string)        {}

// NoopMetrics returns a recorder that discards everything
func NoopMetrics() MetricsRecorder {
	return noopMetrics{}
}
