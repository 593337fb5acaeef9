package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/juniorwebdev83/auto-qa/logger"
)

// InitMeter initializes the OpenTelemetry meter provider. The returned
// provider should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config, serviceName string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", serviceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the pipeline's metric instruments.
type Metrics struct {
	interactionTotal   metric.Int64Counter
	processingDuration metric.Float64Histogram
	qaScore            metric.Int64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	interactionTotal, err := meter.Int64Counter("interaction.total",
		metric.WithDescription("Completed interactions by terminal state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interaction.total counter: %w", err)
	}

	processingDuration, err := meter.Float64Histogram("interaction.duration",
		metric.WithDescription("End to end interaction duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interaction.duration histogram: %w", err)
	}

	qaScore, err := meter.Int64Histogram("qa.score",
		metric.WithDescription("QA score distribution of processed calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating qa.score histogram: %w", err)
	}

	return &Metrics{
		interactionTotal:   interactionTotal,
		processingDuration: processingDuration,
		qaScore:            qaScore,
	}, nil
}

// RecordOutcome records a finished interaction and its duration.
func (m *Metrics) RecordOutcome(ctx context.Context, state string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("state", state))
	m.interactionTotal.Add(ctx, 1, attrs)
	m.processingDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordScore records the QA score of a processed call.
func (m *Metrics) RecordScore(ctx context.Context, score int) {
	m.qaScore.Record(ctx, int64(score))
}
