package status

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/lixenwraith/vi-saber/status"

// Meter returns the global meter, or a no-op meter when disabled
func Meter(enabled bool) metric.Meter {
	if !enabled {
		return noop.NewMeterProvider().Meter(instrumentationName)
	}
	return otel.Meter(instrumentationName)
}
