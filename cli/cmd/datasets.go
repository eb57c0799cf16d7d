package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/dcc-bs/huwise-go/bulk"
	"github.com/dcc-bs/huwise-go/catalog"
)

func newDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Inspect the datasets of the catalog",
	}

	cmd.AddCommand(newDatasetsListCommand())
	cmd.AddCommand(newDatasetsCountCommand())
	cmd.AddCommand(newDatasetsMetadataCommand())
	cmd.AddCommand(newDatasetsQueryCommand())

	return cmd
}

func newDatasetsListCommand() *cobra.Command {
	var includeRestricted bool
	var maxDatasets int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dataset ids, sorted ascending",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient()
			if err != nil {
				return err
			}

			ids, err := client.Orchestrator.ListDatasetIDs(cmd.Context(), bulk.ListOptions{
				IncludeRestricted: includeRestricted,
				MaxDatasets:       maxDatasets,
			})
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeRestricted, "include-restricted", false, "Include restricted datasets")
	cmd.Flags().IntVar(&maxDatasets, "max", 0, "Stop after this many datasets (0 = no limit)")
	return cmd
}

func newDatasetsCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of datasets in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient()
			if err != nil {
				return err
			}

			count, err := client.Accessor.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}

func newDatasetsMetadataCommand() *cobra.Command {
	var datasetID, uid string

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Print one dataset's metadata document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient()
			if err != nil {
				return err
			}

			resolved, err := client.Resolver.ResolveIdentifier(cmd.Context(), catalog.Identifier{
				DatasetID: datasetID,
				UID:       uid,
			})
			if err != nil {
				return err
			}

			document, err := client.Accessor.Metadata(cmd.Context(), resolved)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), document)
		},
	}

	cmd.Flags().StringVar(&datasetID, "id", "", "Numeric dataset id")
	cmd.Flags().StringVar(&uid, "uid", "", "Platform dataset UID")
	return cmd
}

func newDatasetsQueryCommand() *cobra.Command {
	var expression string
	var datasetIDs, uids []string
	var maxDatasets int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a jq expression over dataset metadata",
		Long: `Fetches metadata for the selected datasets (all public datasets when no
--id or --uid is given) and evaluates the jq expression against each
document. Results are printed as "<dataset> <value>" lines; datasets whose
fetch failed are reported on stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if expression == "" {
				return validationError("a --jq expression is required", nil)
			}
			query, err := gojq.Parse(expression)
			if err != nil {
				return validationError("invalid jq expression", err)
			}
			code, err := gojq.Compile(query)
			if err != nil {
				return validationError("invalid jq expression", err)
			}

			client, err := resolveClient()
			if err != nil {
				return err
			}

			identifiers := make([]catalog.Identifier, 0, len(datasetIDs)+len(uids))
			for _, id := range datasetIDs {
				identifiers = append(identifiers, catalog.ByDatasetID(id))
			}
			for _, uid := range uids {
				identifiers = append(identifiers, catalog.ByUID(uid))
			}
			if len(identifiers) == 0 {
				ids, err := client.Orchestrator.ListDatasetIDs(cmd.Context(), bulk.ListOptions{
					MaxDatasets: maxDatasets,
				})
				if err != nil {
					return err
				}
				for _, id := range ids {
					identifiers = append(identifiers, catalog.ByDatasetID(id))
				}
			}

			results := client.Orchestrator.FetchMetadata(cmd.Context(), identifiers)

			keys := make([]string, 0, len(results))
			for key := range results {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				outcome := results[key]
				if !outcome.OK() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", key, outcome.Err)
					continue
				}
				document, err := normalizeForJQ(outcome.Metadata)
				if err != nil {
					return err
				}
				iter := code.Run(document)
				for {
					value, ok := iter.Next()
					if !ok {
						break
					}
					if err, isErr := value.(error); isErr {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", key, err)
						continue
					}
					encoded, err := json.Marshal(value)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", key, encoded)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&expression, "jq", "", "jq expression to evaluate per metadata document")
	cmd.Flags().StringSliceVar(&datasetIDs, "id", nil, "Numeric dataset ids (repeatable)")
	cmd.Flags().StringSliceVar(&uids, "uid", nil, "Platform dataset UIDs (repeatable)")
	cmd.Flags().IntVar(&maxDatasets, "max", 0, "When querying the whole catalog, stop after this many datasets")
	return cmd
}

// normalizeForJQ converts the typed document into the plain
// map[string]any/[]any shape gojq requires.
func normalizeForJQ(document catalog.Document) (any, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}
