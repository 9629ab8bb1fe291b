// Package search implements the loop that drives the strategy
// framework: draw values until a predicate holds, then walk the
// strategy's simplification candidates greedily until no candidate
// still holds. Every decision is deterministic given the configured
// seed.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/quickmorph/morph"
	"github.com/quickmorph/morph/database"
	"github.com/quickmorph/morph/settings"
)

// ErrNoSuchExample is returned when no drawn value satisfies the
// predicate within the example budget.
var ErrNoSuchExample = errors.New("search: no example satisfying predicate")

// Finder holds the configuration of one or more search runs.
type Finder struct {
	settings settings.Settings
	db       database.Database
	dbKey    string
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *otelMetrics
}

// Option configures a Finder.
type Option func(*Finder)

// WithSettings replaces the default settings.
func WithSettings(s settings.Settings) Option {
	return func(f *Finder) { f.settings = s }
}

// WithDatabase attaches an example database. Minimized examples are
// saved under key and replayed before fresh drawing on later runs.
func WithDatabase(db database.Database, key string) Option {
	return func(f *Finder) {
		f.db = db
		f.dbKey = key
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithOTel enables OpenTelemetry instrumentation: one span per run
// from tp and counters/histograms from mp. Either provider may be
// nil to enable only the other.
func WithOTel(tp trace.TracerProvider, mp metric.MeterProvider) Option {
	return func(f *Finder) {
		if tp != nil {
			f.tracer = tp.Tracer(instrumentationName)
		}
		if mp != nil {
			m, err := newOTelMetrics(mp.Meter(instrumentationName))
			if err != nil {
				f.logger.Warn("failed to create otel metrics", "error", err)
				return
			}
			f.metrics = m
		}
	}
}

// NewFinder returns a Finder with the given options applied on top of
// defaults.
func NewFinder(opts ...Option) (*Finder, error) {
	f := &Finder{settings: settings.Default(), logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.settings.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Find draws from strategy until predicate holds, minimizes the
// result, and returns the reified value. It is shorthand for
// NewFinder(opts...).Find(context.Background(), ...).
func Find(strategy morph.Strategy, predicate func(any) bool, opts ...Option) (any, error) {
	f, err := NewFinder(opts...)
	if err != nil {
		return nil, err
	}
	return f.Find(context.Background(), strategy, predicate)
}

// Find runs one search. The predicate sees reified values; for
// strategies whose Reify is the identity (morphers among them) it is
// handed, and may mutate, the template itself.
func (f *Finder) Find(ctx context.Context, strategy morph.Strategy, predicate func(any) bool) (any, error) {
	runID := uuid.NewString()
	start := time.Now()
	if f.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.settings.Timeout)
		defer cancel()
	}
	if f.tracer != nil {
		var span trace.Span
		ctx, span = f.tracer.Start(ctx, "search.find",
			trace.WithAttributes(attribute.String("search.run_id", runID)))
		defer span.End()
	}
	logger := f.logger.With("run_id", runID)

	rng := morph.NewRand(f.settings.Seed)
	template, examples, err := f.satisfy(ctx, strategy, predicate, rng, logger)
	if err != nil {
		f.record(ctx, examples, 0, 0, time.Since(start))
		return nil, err
	}

	// Greedy descent: accept the first candidate that still satisfies
	// the predicate and restart the sweep from it.
	attempts, accepted := 0, 0
	improved := true
	for improved && attempts < f.settings.MaxShrinks && ctx.Err() == nil {
		improved = false
		for candidate := range strategy.Simplify(rng, template) {
			attempts++
			if predicate(strategy.Reify(candidate)) {
				template = candidate
				accepted++
				improved = true
				break
			}
			if attempts >= f.settings.MaxShrinks || ctx.Err() != nil {
				break
			}
		}
	}

	if f.db != nil && f.dbKey != "" {
		if err := f.db.Save(ctx, f.dbKey, strategy.Encode(template)); err != nil {
			logger.Warn("example database save failed", "error", err)
		}
	}
	f.record(ctx, examples, attempts, accepted, time.Since(start))
	logger.Debug("search finished",
		"examples", examples,
		"shrink_attempts", attempts,
		"shrinks_accepted", accepted,
		"duration", time.Since(start))
	return strategy.Reify(template), nil
}

// satisfy finds a first satisfying template: stored examples are
// replayed before anything fresh is drawn.
func (f *Finder) satisfy(ctx context.Context, strategy morph.Strategy, predicate func(any) bool, rng *rand.Rand, logger *slog.Logger) (any, int, error) {
	examples := 0
	if f.db != nil && f.dbKey != "" {
		stored, err := f.db.Fetch(ctx, f.dbKey)
		if err != nil {
			logger.Warn("example database fetch failed", "error", err)
		}
		for _, encoding := range stored {
			template, err := strategy.Decode(encoding)
			if err != nil {
				continue
			}
			examples++
			if predicate(strategy.Reify(template)) {
				logger.Debug("reusing stored example")
				return template, examples, nil
			}
		}
	}
	for examples < f.settings.MaxExamples {
		if err := ctx.Err(); err != nil {
			return nil, examples, err
		}
		examples++
		parameter := strategy.DrawParameter(rng)
		template := strategy.DrawTemplate(rng, parameter)
		if predicate(strategy.Reify(template)) {
			return template, examples, nil
		}
	}
	return nil, examples, fmt.Errorf("%w after %d examples", ErrNoSuchExample, examples)
}
