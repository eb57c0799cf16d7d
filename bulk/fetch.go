package bulk

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dcc-bs/huwise-go/catalog"
)

// FetchOutcome is the per-dataset result of a bulk fetch: either the metadata
// document or the error that prevented it. Exactly one of the two is set.
type FetchOutcome struct {
	UID      string
	Metadata catalog.Document
	Err      error
}

func (o FetchOutcome) OK() bool {
	return o.Err == nil
}

// FetchMetadata fetches the metadata of every identified dataset, fanning the
// fetches out concurrently over a bounded worker group. Results are keyed by
// the identifier form the caller used (numeric id or UID). Every input key
// appears in the output exactly once; failures are captured per item, never
// propagated across siblings.
//
// Numeric ids are resolved sequentially before fan-out; resolution is cheap
// relative to the metadata fetches it unlocks.
func (o *Orchestrator) FetchMetadata(ctx context.Context, identifiers []catalog.Identifier) map[string]FetchOutcome {
	return o.fetchMetadata(ctx, identifiers, true)
}

// FetchMetadataSequential is FetchMetadata with the fetches issued one at a
// time. Same contract, lower throughput.
func (o *Orchestrator) FetchMetadataSequential(ctx context.Context, identifiers []catalog.Identifier) map[string]FetchOutcome {
	return o.fetchMetadata(ctx, identifiers, false)
}

func (o *Orchestrator) fetchMetadata(ctx context.Context, identifiers []catalog.Identifier, concurrent bool) map[string]FetchOutcome {
	operationID := uuid.NewString()
	ctx, span := o.tracer.Start(ctx, "bulk.fetch", trace.WithAttributes(
		attribute.String("operation_id", operationID),
		attribute.Int("datasets", len(identifiers)),
		attribute.Bool("concurrent", concurrent),
	))
	defer span.End()

	type slot struct {
		key string
		uid string
	}

	results := make(map[string]FetchOutcome, len(identifiers))
	var pending []slot

	// Validate and resolve up front; failed items go straight into the
	// result map under the caller's key.
	for _, id := range identifiers {
		key := id.Key()
		if _, seen := results[key]; seen {
			continue
		}
		uid, err := o.resolver.ResolveIdentifier(ctx, id)
		if err != nil {
			results[key] = FetchOutcome{Err: err}
			continue
		}
		results[key] = FetchOutcome{UID: uid}
		pending = append(pending, slot{key: key, uid: uid})
	}

	outcomes := make([]FetchOutcome, len(pending))
	fetchOne := func(i int) {
		document, err := o.accessor.Metadata(ctx, pending[i].uid)
		outcomes[i] = FetchOutcome{UID: pending[i].uid, Metadata: document, Err: err}
	}

	if concurrent {
		// Workers write only their own slot and never return errors, so a
		// failing fetch cannot cancel its siblings.
		group := &errgroup.Group{}
		group.SetLimit(o.concurrency)
		for i := range pending {
			i := i
			group.Go(func() error {
				fetchOne(i)
				return nil
			})
		}
		_ = group.Wait()
	} else {
		for i := range pending {
			fetchOne(i)
		}
	}

	succeeded, failed := 0, 0
	for i, entry := range pending {
		results[entry.key] = outcomes[i]
	}
	for _, outcome := range results {
		if outcome.OK() {
			succeeded++
		} else {
			failed++
		}
		o.observeItem("fetch", outcome.Err)
	}

	o.logger.Info("bulk fetch finished",
		"operation_id", operationID,
		"requested", len(results),
		"succeeded", succeeded,
		"failed", failed,
	)
	return results
}

func (o *Orchestrator) observeItem(operation string, err error) {
	outcome := StatusSuccess
	if err != nil {
		outcome = StatusError
	}
	o.metrics.ObserveItem(operation, outcome)
}
