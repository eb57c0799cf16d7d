package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dcc-bs/huwise-go/bulk"
	"github.com/dcc-bs/huwise-go/cli/cmd"
	"github.com/dcc-bs/huwise-go/config"
	"github.com/dcc-bs/huwise-go/dataset"
	transporthttp "github.com/dcc-bs/huwise-go/internal/providers/transport/http"
	"github.com/dcc-bs/huwise-go/metrics"
	"github.com/dcc-bs/huwise-go/observability"
)

func main() {
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	if os.Getenv("HUWISE_DEBUG") != "" {
		stdr.SetVerbosity(1)
	}

	shutdown, err := observability.SetupTracing(
		context.Background(),
		os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		"huwise",
	)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	deps := cmd.Dependencies{
		NewClient: func() (*cmd.Client, error) {
			return newClient(logger)
		},
	}

	if err := cmd.Execute(deps); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeForError(err))
	}
}

func newClient(logger logr.Logger) (*cmd.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()

	gateway, err := transporthttp.NewGateway(cfg,
		transporthttp.WithLogger(logger.WithName("gateway")),
		transporthttp.WithMetrics(metrics.NewGateway(registry)),
	)
	if err != nil {
		return nil, err
	}

	resolver := dataset.NewResolver(gateway, dataset.WithResolverLogger(logger.WithName("resolver")))
	accessor := dataset.NewAccessor(gateway,
		dataset.WithAccessorLogger(logger.WithName("dataset")),
		dataset.WithIdleWait(cfg.IdleWait),
	)
	orchestrator := bulk.NewOrchestrator(gateway, resolver, accessor,
		bulk.WithLogger(logger.WithName("bulk")),
		bulk.WithMetrics(metrics.NewBulk(registry)),
	)

	return &cmd.Client{
		Config:       cfg,
		Gateway:      gateway,
		Resolver:     resolver,
		Accessor:     accessor,
		Orchestrator: orchestrator,
		Logger:       logger,
	}, nil
}
