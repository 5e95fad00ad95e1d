package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics wires the OpenTelemetry SDK to a Prometheus exporter.
// It returns the MeterProvider, a Meter scoped to the service, and the
// HTTP handler to mount on /metrics.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, metric.Meter, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, provider.Meter(cfg.ServiceName), promhttp.Handler(), nil
}
