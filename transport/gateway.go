// Package transport defines the seam between the typed client and the Huwise
// Automation API. Everything above it (dataset accessors, bulk orchestration)
// talks to the remote platform exclusively through Gateway, so tests can swap
// in doubles and count calls.
package transport

import (
	"context"
	"net/url"
)

// Gateway issues authenticated JSON requests against the Automation API.
// path is relative to the configured base URL (e.g. "/datasets/da_abc").
// A non-nil out receives the decoded JSON response body.
//
// Implementations absorb transient faults with bounded retries; the error
// returned after exhaustion is a faults.TypedError carrying the category
// callers dispatch on.
type Gateway interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Put(ctx context.Context, path string, body any, out any) error
}
