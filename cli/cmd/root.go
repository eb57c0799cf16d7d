// Package cmd implements the huwise command line interface.
package cmd

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/dcc-bs/huwise-go/bulk"
	"github.com/dcc-bs/huwise-go/config"
	"github.com/dcc-bs/huwise-go/dataset"
	"github.com/dcc-bs/huwise-go/transport"
)

// Client bundles the wired components a command needs. It is built lazily so
// help and completion invocations work without credentials.
type Client struct {
	Config       config.Config
	Gateway      transport.Gateway
	Resolver     *dataset.Resolver
	Accessor     *dataset.Accessor
	Orchestrator *bulk.Orchestrator
	Logger       logr.Logger
}

type Dependencies struct {
	NewClient func() (*Client, error)
}

var deps Dependencies

func Execute(d Dependencies) error {
	deps = d
	return newRootCommand().Execute()
}

func NewRootCommand(d Dependencies) *cobra.Command {
	deps = d
	return newRootCommand()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "huwise",
		Short: "Manage dataset metadata on a Huwise data catalog",
		Long: `huwise talks to the Automation API of a Huwise data catalog:
list datasets, read their metadata, and run bulk maintenance flows
such as the license migration.

Credentials come from HUWISE_API_KEY and HUWISE_DOMAIN, or from
` + config.DefaultConfigPath + `.`,
		Example: `  # List all public dataset ids
  huwise datasets list

  # Show one dataset's metadata
  huwise datasets metadata --id 100522

  # Extract titles across the whole catalog
  huwise datasets query --jq '.default.title.value'

  # Preview the CC BY license migration, then apply it
  huwise licenses update
  huwise licenses update --apply`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.AddCommand(newDatasetsCommand())
	cmd.AddCommand(newLicensesCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func resolveClient() (*Client, error) {
	if deps.NewClient == nil {
		return nil, internalError("command dependencies are not initialized", nil)
	}
	return deps.NewClient()
}
