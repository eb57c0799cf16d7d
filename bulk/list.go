package bulk

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dcc-bs/huwise-go/catalog"
)

// ListOptions controls identifier listing. MaxDatasets of zero means no
// limit; a positive value truncates the result to exactly that many ids.
type ListOptions struct {
	IncludeRestricted bool
	MaxDatasets       int
}

// ListDatasetIDs pages through the dataset collection and returns the numeric
// dataset ids, sorted ascending. Pagination is inherently sequential; each
// page's cursor depends on the previous page.
func (o *Orchestrator) ListDatasetIDs(ctx context.Context, opts ListOptions) ([]string, error) {
	operationID := uuid.NewString()
	ctx, span := o.tracer.Start(ctx, "bulk.list", trace.WithAttributes(
		attribute.String("operation_id", operationID),
		attribute.Bool("include_restricted", opts.IncludeRestricted),
		attribute.Int("max_datasets", opts.MaxDatasets),
	))
	defer span.End()

	var ids []string
	offset := 0
	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("offset", strconv.Itoa(offset))

		var page catalog.DatasetPage
		if err := o.gateway.Get(ctx, "/datasets/", query, &page); err != nil {
			return nil, err
		}
		if len(page.Results) == 0 {
			break
		}

		for _, summary := range page.Results {
			if summary.IsRestricted && !opts.IncludeRestricted {
				continue
			}
			ids = append(ids, summary.DatasetID)
			if opts.MaxDatasets > 0 && len(ids) == opts.MaxDatasets {
				sort.Strings(ids)
				o.logListFinished(operationID, ids)
				return ids, nil
			}
		}

		if page.Next == "" {
			break
		}
		offset += len(page.Results)
	}

	sort.Strings(ids)
	o.logListFinished(operationID, ids)
	return ids, nil
}

func (o *Orchestrator) logListFinished(operationID string, ids []string) {
	o.logger.Info("dataset listing finished", "operation_id", operationID, "datasets", len(ids))
}
