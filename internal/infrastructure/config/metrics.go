package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`

	// Textfile receives the collected metrics when a CLI run finishes,
	// in the format node_exporter's textfile collector reads
	Textfile string `mapstructure:"textfile" validate:"required_if=Enabled true"`
}
