package cli

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.settings("")
			if err != nil {
				return err
			}

			store, closeStore, err := rootOpts.openStore(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer closeStore()

			return store.Migrate(cmd.Context())
		},
	}
}
