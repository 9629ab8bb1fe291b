package search

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// instrumentationName scopes the tracer and meter this package
// creates.
const instrumentationName = "github.com/quickmorph/morph/search"

// otelMetrics holds the metric instruments for the search loop. They
// are created once during WithOTel configuration and reused for all
// runs.
type otelMetrics struct {
	// examplesCounter increments for every value drawn or replayed
	examplesCounter metric.Int64Counter

	// shrinkAttemptsCounter increments for every simplification candidate tried
	shrinkAttemptsCounter metric.Int64Counter

	// shrinksAcceptedCounter increments for every candidate that kept the predicate true
	shrinksAcceptedCounter metric.Int64Counter

	// durationHistogram records run duration in milliseconds
	durationHistogram metric.Float64Histogram
}

// newOTelMetrics creates and initializes all metric instruments.
func newOTelMetrics(meter metric.Meter) (*otelMetrics, error) {
	metrics := &otelMetrics{}
	var err error

	metrics.examplesCounter, err = meter.Int64Counter(
		"search.examples",
		metric.WithDescription("Number of examples drawn or replayed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create examples counter: %w", err)
	}

	metrics.shrinkAttemptsCounter, err = meter.Int64Counter(
		"search.shrink_attempts",
		metric.WithDescription("Number of simplification candidates tried"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create shrink attempts counter: %w", err)
	}

	metrics.shrinksAcceptedCounter, err = meter.Int64Counter(
		"search.shrinks_accepted",
		metric.WithDescription("Number of simplification candidates accepted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create shrinks accepted counter: %w", err)
	}

	metrics.durationHistogram, err = meter.Float64Histogram(
		"search.duration",
		metric.WithDescription("Search run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return metrics, nil
}

// record captures one run's observability data. A nil receiver setup
// (no WithOTel) makes this a no-op.
func (f *Finder) record(ctx context.Context, examples, attempts, accepted int, d time.Duration) {
	if f.metrics == nil {
		return
	}
	f.metrics.examplesCounter.Add(ctx, int64(examples))
	f.metrics.shrinkAttemptsCounter.Add(ctx, int64(attempts))
	f.metrics.shrinksAcceptedCounter.Add(ctx, int64(accepted))
	f.metrics.durationHistogram.Record(ctx, float64(d.Milliseconds()))
}
