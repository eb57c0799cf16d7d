// Package bulk fans dataset operations out across many datasets at once:
// concurrent metadata fetch, sequential read-modify-write updates, and
// paginated identifier listing. Its central guarantee is failure isolation:
// one dataset's failure never aborts the batch, and every submitted item
// produces exactly one outcome.
package bulk

import (
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dcc-bs/huwise-go/dataset"
	"github.com/dcc-bs/huwise-go/metrics"
	"github.com/dcc-bs/huwise-go/transport"
)

const (
	defaultConcurrency = 16
	pageSize           = 100

	tracerName = "github.com/dcc-bs/huwise-go/bulk"
)

// Outcome statuses for per-item results.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Orchestrator struct {
	gateway     transport.Gateway
	resolver    *dataset.Resolver
	accessor    *dataset.Accessor
	logger      logr.Logger
	metrics     *metrics.Bulk
	tracer      trace.Tracer
	concurrency int
}

func NewOrchestrator(gateway transport.Gateway, resolver *dataset.Resolver, accessor *dataset.Accessor, opts ...Option) *Orchestrator {
	orchestrator := &Orchestrator{
		gateway:     gateway,
		resolver:    resolver,
		accessor:    accessor,
		logger:      logr.Discard(),
		tracer:      otel.Tracer(tracerName),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(orchestrator)
	}
	return orchestrator
}

type Option func(*Orchestrator)

func WithLogger(logger logr.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(collectors *metrics.Bulk) Option {
	return func(o *Orchestrator) {
		o.metrics = collectors
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = tracer
	}
}

// WithConcurrency bounds the number of in-flight fetches during concurrent
// fan-out. Values below one are ignored.
func WithConcurrency(limit int) Option {
	return func(o *Orchestrator) {
		if limit > 0 {
			o.concurrency = limit
		}
	}
}
