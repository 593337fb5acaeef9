package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/juniorwebdev83/auto-qa/lifecycle"
)

// MetricsObserver records interaction outcomes as lifecycle transitions
// arrive. It implements lifecycle.Observer.
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver creates an observer backed by the given instruments.
func NewMetricsObserver(metrics *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: metrics}
}

func (o *MetricsObserver) StateChanged(ctx context.Context, e lifecycle.Event) {
	if span := trace.SpanFromContext(ctx); span != nil && span.IsRecording() {
		span.AddEvent("lifecycle."+e.To.String(), trace.WithAttributes(
			attribute.String(AttrInteractionID, string(e.InteractionID)),
		))
	}
	if !e.To.Terminal() {
		return
	}
	o.metrics.RecordOutcome(ctx, e.To.String(), e.Elapsed)
	if e.Err != nil {
		SetSpanError(ctx, e.Err)
	}
}
