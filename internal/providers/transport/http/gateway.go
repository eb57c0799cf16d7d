package http

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"

	"github.com/dcc-bs/huwise-go/config"
	"github.com/dcc-bs/huwise-go/metrics"
	"github.com/dcc-bs/huwise-go/transport"
)

const defaultMediaType = "application/json"

var _ transport.Gateway = (*Gateway)(nil)

// Gateway is the HTTP implementation of transport.Gateway: one shared
// connection pool, apikey authentication on every request, and a bounded
// exponential-backoff retry policy for transient faults.
type Gateway struct {
	baseURL       string
	authorization string
	client        *http.Client
	retry         config.Retry
	limiter       *rate.Limiter
	logger        logr.Logger
	metrics       *metrics.Gateway
}

type Option func(*Gateway)

func WithLogger(logger logr.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func WithMetrics(collectors *metrics.Gateway) Option {
	return func(g *Gateway) {
		g.metrics = collectors
	}
}

// WithBaseURL overrides the URL derived from the config. Used by tests to
// point the gateway at a local server.
func WithBaseURL(baseURL string) Option {
	return func(g *Gateway) {
		g.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func NewGateway(cfg config.Config, opts ...Option) (*Gateway, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: cfg.HTTP.ConnectTimeout}
	pooled := http.DefaultTransport.(*http.Transport).Clone()
	pooled.DialContext = dialer.DialContext
	pooled.MaxConnsPerHost = cfg.HTTP.MaxConnections
	pooled.MaxIdleConns = cfg.HTTP.MaxIdleConnections
	pooled.MaxIdleConnsPerHost = cfg.HTTP.MaxIdleConnections

	gateway := &Gateway{
		baseURL:       cfg.BaseURL(),
		authorization: cfg.AuthorizationHeader(),
		client: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: pooled,
		},
		retry:  cfg.Retry,
		logger: logr.Discard(),
	}
	if cfg.HTTP.RequestsPerSecond > 0 {
		gateway.limiter = rate.NewLimiter(rate.Limit(cfg.HTTP.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(gateway)
	}
	return gateway, nil
}

func (g *Gateway) waitTurn(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return transportError("request pacing interrupted", err)
	}
	return nil
}
