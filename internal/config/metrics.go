package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled bool
	// Port serves /metrics while a run is in progress; empty disables it.
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
	// Textfile receives a final Prometheus snapshot for node-exporter.
	Textfile string
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, false),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
		Textfile:     envOrDefault(envMetricsTextfile, ""),
	}
}
