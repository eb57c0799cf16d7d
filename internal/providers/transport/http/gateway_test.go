package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dcc-bs/huwise-go/config"
	"github.com/dcc-bs/huwise-go/faults"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.APIKey = "test-key"
	cfg.Domain = "example.com"
	cfg.Retry.Attempts = 3
	cfg.Retry.InitialDelay = time.Millisecond
	cfg.Retry.BackoffFactor = 1
	return cfg
}

func mustGateway(t *testing.T, baseURL string) *Gateway {
	t.Helper()

	gateway, err := NewGateway(testConfig(), WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("NewGateway returned error: %v", err)
	}
	return gateway
}

func TestNewGatewayValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing_api_key", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.APIKey = ""
		_, err := NewGateway(cfg)
		assertTypedCategory(t, err, faults.ValidationError)
	})

	t.Run("missing_domain", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Domain = ""
		_, err := NewGateway(cfg)
		assertTypedCategory(t, err, faults.ValidationError)
	})

	t.Run("base_url_derived_from_config", func(t *testing.T) {
		t.Parallel()

		gateway, err := NewGateway(testConfig())
		if err != nil {
			t.Fatalf("NewGateway returned error: %v", err)
		}
		if gateway.baseURL != "https://example.com/api/automation/v1.0" {
			t.Fatalf("unexpected base URL %q", gateway.baseURL)
		}
	})
}

func TestGetSendsAuthAndDecodes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "apikey test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected Accept header %q", got)
		}
		if r.URL.Path != "/datasets/da_abc" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("unexpected limit query %q", got)
		}
		_, _ = fmt.Fprint(w, `{"uid":"da_abc","dataset_id":"100522"}`)
	}))
	t.Cleanup(server.Close)

	gateway := mustGateway(t, server.URL)

	var decoded struct {
		UID       string `json:"uid"`
		DatasetID string `json:"dataset_id"`
	}
	query := url.Values{"limit": []string{"1"}}
	if err := gateway.Get(context.Background(), "/datasets/da_abc", query, &decoded); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if decoded.UID != "da_abc" || decoded.DatasetID != "100522" {
		t.Fatalf("unexpected decoded response %+v", decoded)
	}
}

func TestPutEncodesBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %q", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected Content-Type header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if body["value"] != "New Title" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	gateway := mustGateway(t, server.URL)

	payload := map[string]any{"value": "New Title"}
	if err := gateway.Put(context.Background(), "/datasets/da_abc/metadata/default/title/", payload, nil); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
}

func TestRetryOnTransientFailures(t *testing.T) {
	t.Parallel()

	t.Run("recovers_after_server_errors", func(t *testing.T) {
		t.Parallel()

		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
				return
			}
			_, _ = fmt.Fprint(w, `{"status":"idle"}`)
		}))
		t.Cleanup(server.Close)

		gateway := mustGateway(t, server.URL)

		var decoded struct {
			Status string `json:"status"`
		}
		if err := gateway.Get(context.Background(), "/datasets/da_abc/status", nil, &decoded); err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if decoded.Status != "idle" {
			t.Fatalf("unexpected status %q", decoded.Status)
		}
		if got := atomic.LoadInt32(&calls); got != 3 {
			t.Fatalf("expected 3 attempts, got %d", got)
		}
	})

	t.Run("gives_up_after_configured_attempts", func(t *testing.T) {
		t.Parallel()

		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		gateway := mustGateway(t, server.URL)

		err := gateway.Get(context.Background(), "/datasets/da_abc", nil, nil)
		assertTypedCategory(t, err, faults.TransportError)
		if got := atomic.LoadInt32(&calls); got != 3 {
			t.Fatalf("expected 3 attempts, got %d", got)
		}
	})

	t.Run("rate_limited_responses_are_retried", func(t *testing.T) {
		t.Parallel()

		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				http.Error(w, "slow down", http.StatusTooManyRequests)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		gateway := mustGateway(t, server.URL)

		if err := gateway.Get(context.Background(), "/datasets/", nil, nil); err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 2 {
			t.Fatalf("expected 2 attempts, got %d", got)
		}
	})
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		status   int
		category faults.ErrorCategory
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, category: faults.AuthError},
		{name: "forbidden", status: http.StatusForbidden, category: faults.AuthError},
		{name: "not_found", status: http.StatusNotFound, category: faults.NotFoundError},
		{name: "conflict", status: http.StatusConflict, category: faults.ConflictError},
		{name: "bad_request", status: http.StatusBadRequest, category: faults.ValidationError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				http.Error(w, "nope", tc.status)
			}))
			t.Cleanup(server.Close)

			gateway := mustGateway(t, server.URL)

			err := gateway.Get(context.Background(), "/datasets/da_abc", nil, nil)
			assertTypedCategory(t, err, tc.category)
			if got := atomic.LoadInt32(&calls); got != 1 {
				t.Fatalf("expected a single attempt, got %d", got)
			}
		})
	}
}

func TestContextCancellationStopsRetries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig()
	cfg.Retry.InitialDelay = time.Minute
	gateway, err := NewGateway(cfg, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewGateway returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := gateway.Get(ctx, "/datasets/da_abc", nil, nil); err == nil {
		t.Fatal("expected error after context cancellation, got nil")
	}
}

func assertTypedCategory(t *testing.T, err error, category faults.ErrorCategory) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %q error, got nil", category)
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		t.Fatalf("expected typed error, got %T: %v", err, err)
	}
	if typedErr.Category != category {
		t.Fatalf("expected %q category, got %q", category, typedErr.Category)
	}
}
