// Package cli holds the finpal command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Running the binary without a
// subcommand starts the API server.
func NewRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           "finpal",
		Short:         "Personal finance assistant API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMigrateCommand())
	return root
}
