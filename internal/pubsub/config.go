package pubsub

import (
	"os"
	"strconv"
)

// LoadTracingConfigFromEnv loads tracing configuration from environment variables.
func LoadTracingConfigFromEnv() TracingConfig {
	config := DefaultTracingConfig()

	if enabledStr := os.Getenv("FOLIO_TRACING_ENABLED"); enabledStr != "" {
		if enabled, err := strconv.ParseBool(enabledStr); err == nil {
			config.Enabled = enabled
		}
	}
	if serviceName := os.Getenv("FOLIO_TRACING_SERVICE_NAME"); serviceName != "" {
		config.ServiceName = serviceName
	}
	if zipkinURL := os.Getenv("FOLIO_TRACING_ZIPKIN_URL"); zipkinURL != "" {
		config.ZipkinURL = zipkinURL
	}
	if ratioStr := os.Getenv("FOLIO_TRACING_SAMPLE_RATIO"); ratioStr != "" {
		if ratio, err := strconv.ParseFloat(ratioStr, 64); err == nil && ratio >= 0 && ratio <= 1 {
			config.SampleRatio = ratio
		}
	}

	return config
}
