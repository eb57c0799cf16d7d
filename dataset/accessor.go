package dataset

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-logr/logr"

	"github.com/dcc-bs/huwise-go/catalog"
	"github.com/dcc-bs/huwise-go/config"
	"github.com/dcc-bs/huwise-go/faults"
	"github.com/dcc-bs/huwise-go/transport"
)

// Accessor reads and writes the metadata of one dataset, identified by UID.
// Field writes wait for the dataset's processing pipeline to go idle before
// mutating; the wait is bounded and expires with a TimeoutError.
type Accessor struct {
	gateway  transport.Gateway
	idleWait config.IdleWait
	logger   logr.Logger
}

func NewAccessor(gateway transport.Gateway, opts ...AccessorOption) *Accessor {
	accessor := &Accessor{
		gateway:  gateway,
		idleWait: config.Default().IdleWait,
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(accessor)
	}
	return accessor
}

type AccessorOption func(*Accessor)

func WithAccessorLogger(logger logr.Logger) AccessorOption {
	return func(a *Accessor) {
		a.logger = logger
	}
}

// WithIdleWait overrides the idle-wait poll interval and maximum wait.
func WithIdleWait(idleWait config.IdleWait) AccessorOption {
	return func(a *Accessor) {
		if idleWait.PollInterval > 0 {
			a.idleWait.PollInterval = idleWait.PollInterval
		}
		if idleWait.MaxWait > 0 {
			a.idleWait.MaxWait = idleWait.MaxWait
		}
	}
}

// Record fetches the full dataset record, metadata included.
func (a *Accessor) Record(ctx context.Context, uid string) (catalog.DatasetRecord, error) {
	var record catalog.DatasetRecord
	if err := a.gateway.Get(ctx, datasetPath(uid), nil, &record); err != nil {
		return catalog.DatasetRecord{}, err
	}
	return record, nil
}

// Metadata fetches the dataset's full metadata document.
func (a *Accessor) Metadata(ctx context.Context, uid string) (catalog.Document, error) {
	record, err := a.Record(ctx, uid)
	if err != nil {
		return nil, err
	}
	if record.Metadata == nil {
		return catalog.Document{}, nil
	}
	return record.Metadata, nil
}

// TemplateMetadata fetches the fields of one template. An absent template is
// an empty result, not an error.
func (a *Accessor) TemplateMetadata(ctx context.Context, uid, template string) (catalog.Template, error) {
	var fields catalog.Template
	err := a.gateway.Get(ctx, datasetPath(uid)+"/metadata/"+url.PathEscape(template)+"/", nil, &fields)
	if err != nil {
		if faults.IsCategory(err, faults.NotFoundError) {
			return catalog.Template{}, nil
		}
		return nil, err
	}
	if fields == nil {
		fields = catalog.Template{}
	}
	return fields, nil
}

// Field returns the unwrapped value of template.field. The boolean is false
// when the template or field is unset; absence is never an error.
func (a *Accessor) Field(ctx context.Context, uid, template, field string) (catalog.Value, bool, error) {
	fields, err := a.TemplateMetadata(ctx, uid, template)
	if err != nil {
		return nil, false, err
	}
	wrapper, ok := fields[field]
	if !ok {
		return nil, false, nil
	}
	value, ok := wrapper["value"]
	if !ok || value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

// Status reports the dataset's processing state.
func (a *Accessor) Status(ctx context.Context, uid string) (catalog.DatasetStatus, error) {
	var status catalog.DatasetStatus
	if err := a.gateway.Get(ctx, datasetPath(uid)+"/status", nil, &status); err != nil {
		return catalog.DatasetStatus{}, err
	}
	return status, nil
}

// WaitUntilIdle polls the dataset status until it reports idle, sleeping one
// poll interval between polls. The wait is bounded: once the maximum wait
// would be exceeded the call fails with a TimeoutError instead of polling on.
func (a *Accessor) WaitUntilIdle(ctx context.Context, uid string) error {
	start := time.Now()
	for {
		status, err := a.Status(ctx, uid)
		if err != nil {
			return err
		}
		if status.Status.Idle() {
			return nil
		}

		if time.Since(start)+a.idleWait.PollInterval > a.idleWait.MaxWait {
			message := fmt.Sprintf("dataset %s still %q after %s", uid, status.Status, a.idleWait.MaxWait)
			return timeoutError(message, nil)
		}

		a.logger.V(1).Info("dataset not idle, waiting",
			"uid", uid,
			"status", string(status.Status),
			"poll_interval", a.idleWait.PollInterval.String(),
		)

		select {
		case <-ctx.Done():
			return timeoutError("idle wait interrupted", ctx.Err())
		case <-time.After(a.idleWait.PollInterval):
		}
	}
}

// SetField writes one metadata field through the per-field endpoint: wait for
// idle, PUT the wrapped value, then publish unless told not to.
func (a *Accessor) SetField(ctx context.Context, uid, template, field string, value catalog.Value, publish bool) error {
	if err := a.WaitUntilIdle(ctx, uid); err != nil {
		return err
	}

	path := datasetPath(uid) + "/metadata/" + url.PathEscape(template) + "/" + url.PathEscape(field) + "/"
	if err := a.gateway.Put(ctx, path, catalog.FieldWrapper{"value": value}, nil); err != nil {
		return err
	}
	a.logger.Info("field updated", "uid", uid, "template", template, "field", field)

	if publish {
		return a.Publish(ctx, uid)
	}
	return nil
}

// PutMetadata replaces the dataset's entire metadata document. Callers that
// only change single fields should prefer SetField; a whole-document write
// clobbers concurrent out-of-band changes to unrelated fields.
func (a *Accessor) PutMetadata(ctx context.Context, uid string, document catalog.Document) error {
	if err := a.WaitUntilIdle(ctx, uid); err != nil {
		return err
	}
	if err := a.gateway.Put(ctx, datasetPath(uid)+"/metadata/", document, nil); err != nil {
		return err
	}
	a.logger.Info("metadata document replaced", "uid", uid, "templates", document.Templates())
	return nil
}

// Publish makes staged metadata changes visible. It does not wait for idle.
func (a *Accessor) Publish(ctx context.Context, uid string) error {
	if err := a.gateway.Post(ctx, datasetPath(uid)+"/publish/", nil, nil); err != nil {
		return err
	}
	a.logger.Info("dataset published", "uid", uid)
	return nil
}

// Unpublish hides the dataset. It does not wait for idle.
func (a *Accessor) Unpublish(ctx context.Context, uid string) error {
	if err := a.gateway.Post(ctx, datasetPath(uid)+"/unpublish/", nil, nil); err != nil {
		return err
	}
	a.logger.Info("dataset unpublished", "uid", uid)
	return nil
}

// SetPublic publishes or unpublishes depending on the flag.
func (a *Accessor) SetPublic(ctx context.Context, uid string, public bool) error {
	if public {
		return a.Publish(ctx, uid)
	}
	return a.Unpublish(ctx, uid)
}

// Refresh triggers a reprocess of the dataset.
func (a *Accessor) Refresh(ctx context.Context, uid string) error {
	if err := a.gateway.Put(ctx, datasetPath(uid)+"/", nil, nil); err != nil {
		return err
	}
	a.logger.Info("dataset refresh triggered", "uid", uid)
	return nil
}

// Count returns the number of datasets in the catalog.
func (a *Accessor) Count(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("limit", "1")

	var page catalog.DatasetPage
	if err := a.gateway.Get(ctx, "/datasets/", query, &page); err != nil {
		return 0, err
	}
	return page.TotalCount, nil
}

func datasetPath(uid string) string {
	return "/datasets/" + url.PathEscape(uid)
}
