// Package dataset operates on one dataset at a time: identifier resolution,
// metadata reads, field writes gated on the idle-wait protocol, and the
// publish/unpublish/refresh actions. Bulk orchestration across many datasets
// lives in the bulk package and builds on this one.
package dataset

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-logr/logr"

	"github.com/dcc-bs/huwise-go/catalog"
	"github.com/dcc-bs/huwise-go/transport"
)

// Resolver maps human-facing numeric dataset ids to platform UIDs. Resolution
// is a pure lookup; the mapping is stable but a given id may match nothing.
type Resolver struct {
	gateway transport.Gateway
	logger  logr.Logger
}

func NewResolver(gateway transport.Gateway, opts ...ResolverOption) *Resolver {
	resolver := &Resolver{
		gateway: gateway,
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(resolver)
	}
	return resolver
}

type ResolverOption func(*Resolver)

func WithResolverLogger(logger logr.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolve returns the UID of the dataset with the given numeric id. Zero
// matches is a NotFoundError; the resolver never guesses a partial result.
func (r *Resolver) Resolve(ctx context.Context, datasetID string) (string, error) {
	if datasetID == "" {
		return "", validationError("dataset id must not be empty", nil)
	}

	query := url.Values{}
	query.Set("dataset_id", datasetID)

	var page catalog.DatasetPage
	if err := r.gateway.Get(ctx, "/datasets/", query, &page); err != nil {
		return "", err
	}
	if len(page.Results) == 0 {
		return "", notFoundError(fmt.Sprintf("no dataset found with dataset_id %q", datasetID), nil)
	}

	uid := page.Results[0].UID
	r.logger.V(1).Info("resolved dataset id", "dataset_id", datasetID, "uid", uid)
	return uid, nil
}

// ResolveIdentifier validates the identifier and returns its UID, resolving
// the numeric form when needed.
func (r *Resolver) ResolveIdentifier(ctx context.Context, id catalog.Identifier) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	if !id.NeedsResolution() {
		return id.UID, nil
	}
	return r.Resolve(ctx, id.DatasetID)
}
