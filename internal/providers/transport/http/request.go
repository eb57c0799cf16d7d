package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dcc-bs/huwise-go/faults"
)

const maxResponseBytes = 1 << 20

func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out any) error {
	return g.do(ctx, http.MethodGet, path, query, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, body any, out any) error {
	return g.do(ctx, http.MethodPost, path, nil, body, out)
}

func (g *Gateway) Put(ctx context.Context, path string, body any, out any) error {
	return g.do(ctx, http.MethodPut, path, nil, body, out)
}

// do runs one logical request through the retry policy. Transport-category
// faults (network failures, 5xx, 429) are retried with exponential backoff up
// to the configured attempt count; every other fault is permanent and
// propagates immediately.
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	start := time.Now()

	operation := func() error {
		if err := g.waitTurn(ctx); err != nil {
			return backoff.Permanent(err)
		}
		err := g.doOnce(ctx, method, path, query, body, out)
		if err == nil {
			return nil
		}
		if faults.IsCategory(err, faults.TransportError) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.retry.InitialDelay
	policy.Multiplier = g.retry.BackoffFactor
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	attempts := g.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	notify := func(err error, delay time.Duration) {
		g.metrics.ObserveRetry()
		g.logger.Info("request failed, retrying",
			"method", method,
			"path", path,
			"delay", delay.String(),
			"error", err.Error(),
		)
	}

	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx),
		notify,
	)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	g.metrics.ObserveRequest(method, outcome, time.Since(start).Seconds())
	return err
}

func (g *Gateway) doOnce(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return validationError("failed to encode JSON request body", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, g.resolveURL(path, query), bodyReader)
	if err != nil {
		return internalError("failed to create remote request", err)
	}
	request.Header.Set("Authorization", g.authorization)
	request.Header.Set("Accept", defaultMediaType)
	if body != nil {
		request.Header.Set("Content-Type", defaultMediaType)
	}

	response, err := g.client.Do(request)
	if err != nil {
		return transportError("remote request failed", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return transportError("failed to read remote response body", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return classifyStatusError(response.StatusCode, responseBody)
	}

	if out == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return internalError("failed to decode remote response", err)
	}
	return nil
}

func (g *Gateway) resolveURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}
