package bulk

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dcc-bs/huwise-go/catalog"
)

// Update is one entry of a bulk update: the dataset to touch and the field
// values to write into its default template.
type Update struct {
	Identifier catalog.Identifier
	Fields     map[string]catalog.Value
}

// UpdateOutcome is the per-dataset result of a bulk update. Status is
// StatusSuccess or StatusError; FieldsUpdated lists the fields written, in
// sorted order, on success.
type UpdateOutcome struct {
	Status        string
	FieldsUpdated []string
	Err           error
}

// UpdateMetadata applies each update independently: validate the identifier,
// resolve it, write every field through the per-field endpoint (idle-wait
// gated), then publish when asked to. Updates run sequentially; each cycle
// does several round trips and mutates remote state, so correctness wins over
// throughput here.
//
// Results are keyed by UID once resolution succeeded, by the caller's
// identifier otherwise. One update's failure never aborts the batch.
func (o *Orchestrator) UpdateMetadata(ctx context.Context, updates []Update, publish bool) map[string]UpdateOutcome {
	operationID := uuid.NewString()
	ctx, span := o.tracer.Start(ctx, "bulk.update", trace.WithAttributes(
		attribute.String("operation_id", operationID),
		attribute.Int("datasets", len(updates)),
		attribute.Bool("publish", publish),
	))
	defer span.End()

	results := make(map[string]UpdateOutcome, len(updates))
	for _, update := range updates {
		key, outcome := o.applyUpdate(ctx, update, publish)
		results[key] = outcome
		o.observeItem("update", outcome.Err)
	}

	succeeded, failed := 0, 0
	for _, outcome := range results {
		if outcome.Status == StatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}
	o.logger.Info("bulk update finished",
		"operation_id", operationID,
		"requested", len(results),
		"succeeded", succeeded,
		"failed", failed,
	)
	return results
}

// applyUpdate runs one full update cycle and reports its outcome as a value.
func (o *Orchestrator) applyUpdate(ctx context.Context, update Update, publish bool) (string, UpdateOutcome) {
	key := update.Identifier.Key()

	uid, err := o.resolver.ResolveIdentifier(ctx, update.Identifier)
	if err != nil {
		return key, UpdateOutcome{Status: StatusError, Err: err}
	}
	key = uid

	fields := make([]string, 0, len(update.Fields))
	for field := range update.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	written := make([]string, 0, len(fields))
	for _, field := range fields {
		if err := o.accessor.SetField(ctx, uid, catalog.TemplateDefault, field, update.Fields[field], false); err != nil {
			return key, UpdateOutcome{Status: StatusError, FieldsUpdated: written, Err: err}
		}
		written = append(written, field)
	}

	if publish {
		if err := o.accessor.Publish(ctx, uid); err != nil {
			return key, UpdateOutcome{Status: StatusError, FieldsUpdated: written, Err: err}
		}
	}

	o.logger.V(1).Info("dataset updated", "uid", uid, "fields", written)
	return key, UpdateOutcome{Status: StatusSuccess, FieldsUpdated: written}
}
