package lifecycle

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// disposalPath distinguishes disposals run on the caller's goroutine from
// ones routed through a Dispatcher.
type disposalPath string

const (
	pathSync     disposalPath = "sync"
	pathDeferred disposalPath = "deferred"
)

type otelMetrics struct {
	disposals metric.Int64Counter
	failures  metric.Int64Counter
}

var (
	metricsOnce sync.Once
	metricsInst *otelMetrics
)

// getMetrics lazily initializes the package counters against the global
// meter provider. Returns nil when counter creation fails, which
// downgrades metrics to a no-op without affecting disposals.
func getMetrics() *otelMetrics {
	metricsOnce.Do(func() {
		meter := otel.Meter("go-lifecycle")

		disposals, err := meter.Int64Counter("lifecycle.disposals",
			metric.WithDescription("Number of resource disposals invoked"),
		)
		if err != nil {
			return
		}
		failures, err := meter.Int64Counter("lifecycle.disposal.failures",
			metric.WithDescription("Number of resource disposals that failed"),
		)
		if err != nil {
			return
		}

		metricsInst = &otelMetrics{disposals: disposals, failures: failures}
	})
	return metricsInst
}

// recordDisposal counts one disposal attempt and, when err is non-nil,
// one failure.
func recordDisposal(kind Kind, path disposalPath, err error) {
	m := getMetrics()
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("kind", kind.String()),
		attribute.String("path", string(path)),
	)

	ctx := context.Background()
	m.disposals.Add(ctx, 1, attrs)
	if err != nil {
		m.failures.Add(ctx, 1, attrs)
	}
}
