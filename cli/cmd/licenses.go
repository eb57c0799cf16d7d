package cmd

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/dcc-bs/huwise-go/bulk"
	"github.com/dcc-bs/huwise-go/catalog"
)

// The CC BY migration: datasets still carrying the legacy license code or one
// of the legacy display names move to the current CC BY 4.0 entry.
const (
	targetLicenseID   = "5sylls5"
	targetLicenseName = "CC BY 4.0"
)

var legacyLicenseIDs = map[string]bool{
	"cc_by": true,
}

var legacyLicenseNames = map[string]bool{
	"CC BY":        true,
	"CC BY 3.0 CH": true,
}

func newLicensesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "License maintenance across the catalog",
	}
	cmd.AddCommand(newLicensesUpdateCommand())
	return cmd
}

func newLicensesUpdateCommand() *cobra.Command {
	var apply, yes bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Migrate legacy CC BY licenses to CC BY 4.0",
		Long: `Scans every dataset and finds the ones whose internal license id or
displayed license name still references the legacy CC BY entries. Without
--apply the command only prints what it would change. With --apply it asks
for confirmation (skip with --yes), then sets default.license_id and
default.license on each affected dataset and publishes the change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			ids, err := client.Orchestrator.ListDatasetIDs(ctx, bulk.ListOptions{IncludeRestricted: true})
			if err != nil {
				return err
			}
			identifiers := make([]catalog.Identifier, 0, len(ids))
			for _, id := range ids {
				identifiers = append(identifiers, catalog.ByDatasetID(id))
			}

			results := client.Orchestrator.FetchMetadata(ctx, identifiers)
			candidates, failures := licenseCandidates(results)

			for _, key := range failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: metadata fetch failed: %v\n", key, results[key].Err)
			}
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no datasets with a legacy CC BY license found")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d dataset(s) carry a legacy CC BY license:\n", len(candidates))
			for _, candidate := range candidates {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s): license_id=%q license=%q\n",
					candidate.Key, candidate.UID, candidate.LicenseID, candidate.License)
			}

			if !apply {
				fmt.Fprintln(cmd.OutOrStdout(), "dry run; re-run with --apply to migrate")
				return nil
			}

			if !yes {
				confirmed, err := confirmMigration(cmd, len(candidates))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			updates := make([]bulk.Update, 0, len(candidates))
			for _, candidate := range candidates {
				updates = append(updates, bulk.Update{
					Identifier: catalog.ByUID(candidate.UID),
					Fields: map[string]catalog.Value{
						catalog.FieldLicenseID: targetLicenseID,
						catalog.FieldLicense:   targetLicenseName,
					},
				})
			}

			outcomes := client.Orchestrator.UpdateMetadata(ctx, updates, true)

			succeeded := 0
			for _, candidate := range candidates {
				outcome := outcomes[candidate.UID]
				if outcome.Status == bulk.StatusSuccess {
					succeeded++
					continue
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to update %s (%s): %v\n", candidate.Key, candidate.UID, outcome.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d/%d dataset(s)\n", succeeded, len(candidates))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the migration instead of printing it")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

type licenseCandidate struct {
	Key       string
	UID       string
	LicenseID string
	License   string
}

// licenseCandidates filters the fetched metadata down to datasets still on a
// legacy CC BY license. Fetch failures are reported separately so the caller
// can surface them without aborting the scan.
func licenseCandidates(results map[string]bulk.FetchOutcome) ([]licenseCandidate, []string) {
	var candidates []licenseCandidate
	var failures []string

	for key, outcome := range results {
		if !outcome.OK() {
			failures = append(failures, key)
			continue
		}

		licenseID, _ := outcome.Metadata.GetString(catalog.TemplateInternal, catalog.FieldLicenseID)
		license, _ := outcome.Metadata.GetString(catalog.TemplateDefault, catalog.FieldLicense)
		if !legacyLicenseIDs[licenseID] && !legacyLicenseNames[license] {
			continue
		}
		candidates = append(candidates, licenseCandidate{
			Key:       key,
			UID:       outcome.UID,
			LicenseID: licenseID,
			License:   license,
		})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Key < candidates[j].Key })
	sort.Strings(failures)
	return candidates, failures
}

func confirmMigration(cmd *cobra.Command, count int) (bool, error) {
	confirmed := false
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Migrate %d dataset(s) to %s and publish?", count, targetLicenseName)).
		Value(&confirmed)
	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithInput(cmd.InOrStdin()).
		WithOutput(cmd.OutOrStdout())
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
