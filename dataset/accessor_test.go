package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dcc-bs/huwise-go/catalog"
	"github.com/dcc-bs/huwise-go/config"
	"github.com/dcc-bs/huwise-go/faults"
)

// fakeGateway scripts transport responses per method+path and records every
// call so tests can assert ordering and counts.
type fakeGateway struct {
	mu     sync.Mutex
	calls  []string
	handle func(method, path string, query url.Values, body any, out any) error
}

func (f *fakeGateway) record(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method+" "+path)
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) callsMatching(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []string
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			matched = append(matched, call)
		}
	}
	return matched
}

func (f *fakeGateway) Get(ctx context.Context, path string, query url.Values, out any) error {
	f.record("GET", path)
	return f.handle("GET", path, query, nil, out)
}

func (f *fakeGateway) Post(ctx context.Context, path string, body any, out any) error {
	f.record("POST", path)
	return f.handle("POST", path, nil, body, out)
}

func (f *fakeGateway) Put(ctx context.Context, path string, body any, out any) error {
	f.record("PUT", path)
	return f.handle("PUT", path, nil, body, out)
}

// respond encodes value into out the way the real gateway decodes JSON.
func respond(out any, value any) error {
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func fastIdleWait() AccessorOption {
	return WithIdleWait(config.IdleWait{
		PollInterval: time.Millisecond,
		MaxWait:      time.Second,
	})
}

func TestFieldAbsenceIsNotAnError(t *testing.T) {
	t.Parallel()

	t.Run("field_missing_from_template", func(t *testing.T) {
		t.Parallel()

		gateway := &fakeGateway{handle: func(method, path string, query url.Values, body any, out any) error {
			return respond(out, map[string]any{
				"title": map[string]any{"value": "Tree cadastre"},
			})
		}}
		accessor := NewAccessor(gateway, fastIdleWait())

		_, ok, err := accessor.Field(context.Background(), "da_abc", "default", "description")
		if err != nil {
			t.Fatalf("Field returned error: %v", err)
		}
		if ok {
			t.Fatal("expected absent field, got ok=true")
		}
	})

	t.Run("template_missing_entirely", func(t *testing.T) {
		t.Parallel()

		gateway := &fakeGateway{handle: func(method, path string, query url.Values, body any, out any) error {
			return faults.NewTypedError(faults.NotFoundError, "remote request failed with status 404", nil)
		}}
		accessor := NewAccessor(gateway, fastIdleWait())

		_, ok, err := accessor.Field(context.Background(), "da_abc", "custom", "anything")
		if err != nil {
			t.Fatalf("Field returned error: %v", err)
		}
		if ok {
			t.Fatal("expected absent field, got ok=true")
		}
	})

	t.Run("present_field_is_unwrapped", func(t *testing.T) {
		t.Parallel()

		gateway := &fakeGateway{handle: func(method, path string, query url.Values, body any, out any) error {
			return respond(out, map[string]any{
				"title": map[string]any{"value": "Tree cadastre"},
			})
		}}
		accessor := NewAccessor(gateway, fastIdleWait())

		value, ok, err := accessor.Field(context.Background(), "da_abc", "default", "title")
		if err != nil {
			t.Fatalf("Field returned error: %v", err)
		}
		if !ok || value != "Tree cadastre" {
			t.Fatalf("expected title value, got %v (ok=%v)", value, ok)
		}
	})
}

func TestSetFieldWaitsForIdle(t *testing.T) {
	t.Parallel()

	statuses := []string{"processing", "processing", "idle"}
	var statusPolls int

	gateway := &fakeGateway{}
	gateway.handle = func(method, path string, query url.Values, body any, out any) error {
		switch {
		case method == "GET" && strings.HasSuffix(path, "/status"):
			status := statuses[len(statuses)-1]
			if statusPolls < len(statuses) {
				status = statuses[statusPolls]
			}
			statusPolls++
			return respond(out, map[string]any{"status": status})
		case method == "PUT":
			if statusPolls != 3 {
				t.Errorf("PUT fired after %d status polls, want 3", statusPolls)
			}
			if wrapper, ok := body.(catalog.FieldWrapper); !ok || wrapper["value"] != "New Title" {
				t.Errorf("unexpected PUT body %v", body)
			}
			return nil
		case method == "POST" && strings.HasSuffix(path, "/publish/"):
			return nil
		default:
			return fmt.Errorf("unexpected call %s %s", method, path)
		}
	}

	accessor := NewAccessor(gateway, fastIdleWait())

	err := accessor.SetField(context.Background(), "da_abc", "default", "title", "New Title", true)
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if statusPolls != 3 {
		t.Fatalf("expected 3 status polls, got %d", statusPolls)
	}
	if puts := gateway.callsMatching("PUT"); len(puts) != 1 {
		t.Fatalf("expected 1 PUT, got %v", puts)
	}
	if posts := gateway.callsMatching("POST"); len(posts) != 1 {
		t.Fatalf("expected 1 publish POST, got %v", posts)
	}
}

func TestSetFieldWithoutPublish(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	gateway.handle = func(method, path string, query url.Values, body any, out any) error {
		if method == "GET" && strings.HasSuffix(path, "/status") {
			return respond(out, map[string]any{"status": "idle"})
		}
		return nil
	}

	accessor := NewAccessor(gateway, fastIdleWait())

	if err := accessor.SetField(context.Background(), "da_abc", "default", "title", "X", false); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if posts := gateway.callsMatching("POST"); len(posts) != 0 {
		t.Fatalf("expected no publish, got %v", posts)
	}
}

func TestWaitUntilIdleTimesOut(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	gateway.handle = func(method, path string, query url.Values, body any, out any) error {
		if method == "GET" && strings.HasSuffix(path, "/status") {
			return respond(out, map[string]any{"status": "processing"})
		}
		t.Errorf("unexpected call %s %s", method, path)
		return nil
	}

	accessor := NewAccessor(gateway, WithIdleWait(config.IdleWait{
		PollInterval: time.Millisecond,
		MaxWait:      5 * time.Millisecond,
	}))

	err := accessor.SetField(context.Background(), "da_abc", "default", "title", "X", true)
	assertTypedCategory(t, err, faults.TimeoutError)
	if puts := gateway.callsMatching("PUT"); len(puts) != 0 {
		t.Fatalf("expected no PUT after timeout, got %v", puts)
	}
}

func TestSetLicense(t *testing.T) {
	t.Parallel()

	t.Run("unknown_license_id_fails_before_any_call", func(t *testing.T) {
		t.Parallel()

		gateway := &fakeGateway{handle: func(method, path string, query url.Values, body any, out any) error {
			return nil
		}}
		accessor := NewAccessor(gateway, fastIdleWait())

		err := accessor.SetLicense(context.Background(), "da_abc", "not_a_license", "", true)
		assertTypedCategory(t, err, faults.ValidationError)
		if gateway.callCount() != 0 {
			t.Fatalf("expected no transport calls, got %d", gateway.callCount())
		}
	})

	t.Run("sets_id_and_name_then_publishes_once", func(t *testing.T) {
		t.Parallel()

		gateway := &fakeGateway{}
		gateway.handle = func(method, path string, query url.Values, body any, out any) error {
			if method == "GET" && strings.HasSuffix(path, "/status") {
				return respond(out, map[string]any{"status": "idle"})
			}
			return nil
		}
		accessor := NewAccessor(gateway, fastIdleWait())

		err := accessor.SetLicense(context.Background(), "da_abc", "5sylls5", "CC BY 4.0", true)
		if err != nil {
			t.Fatalf("SetLicense returned error: %v", err)
		}

		puts := gateway.callsMatching("PUT")
		if len(puts) != 2 {
			t.Fatalf("expected 2 field PUTs, got %v", puts)
		}
		if !strings.Contains(puts[0], "/metadata/default/license_id/") {
			t.Fatalf("first PUT should target license_id, got %q", puts[0])
		}
		if !strings.Contains(puts[1], "/metadata/default/license/") {
			t.Fatalf("second PUT should target license, got %q", puts[1])
		}
		if posts := gateway.callsMatching("POST"); len(posts) != 1 {
			t.Fatalf("expected one publish, got %v", posts)
		}
	})
}

func TestCount(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{handle: func(method, path string, query url.Values, body any, out any) error {
		if query.Get("limit") != "1" {
			t.Errorf("expected limit=1 query, got %v", query)
		}
		return respond(out, map[string]any{"total_count": 731, "results": []any{}})
	}}
	accessor := NewAccessor(gateway, fastIdleWait())

	count, err := accessor.Count(context.Background())
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 731 {
		t.Fatalf("expected count 731, got %d", count)
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
