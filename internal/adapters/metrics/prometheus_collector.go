package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric unless configured otherwise
const DefaultNamespace = "trading"

// Collector is anything that can add its metrics to a registry
type Collector interface {
	Register(reg prometheus.Registerer) error
}

// NewRegistry creates a registry and registers the given collectors with it
func NewRegistry(collectors ...Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, c := range collectors {
		if err := c.Register(reg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// WriteTextfile dumps the registry in the text exposition format, for
// node_exporter's textfile collector or for inspection after a CLI run
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func registerAll(reg prometheus.Registerer, collectors ...prometheus.Collector) error {
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
