package cli

import (
	"cmp"
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AntonStoeckl/bookshelf/catalog/sqlstore"
	"github.com/AntonStoeckl/bookshelf/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Adapter    string
	DSN        string
	ReplicaDSN string

	logger *zap.Logger
}

// NewRootCommand creates the root command of the bookshelf CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// newRootCommand keeps a logger that is already set in opts.
func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Bookshelf - a catalog of books and categories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}

			logger, err := buildZapLogger(opts.Verbose)
			if err != nil {
				return err
			}

			opts.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log SQL statements and requests")
	cmd.PersistentFlags().StringVar(&opts.Adapter, "adapter", "", "database adapter: pgx.pool, sql.db, sqlx.db or sqlite (env "+config.EnvAdapter+")")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "database DSN (env "+config.EnvDSN+")")
	cmd.PersistentFlags().StringVar(&opts.ReplicaDSN, "replica-dsn", "", "read replica DSN, pgx.pool only (env "+config.EnvReplicaDSN+")")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// settings reads the environment and lets flags override it.
func (opts *RootOptions) settings(addr string) (config.Settings, error) {
	s := config.Settings{
		Adapter:    cmp.Or(opts.Adapter, os.Getenv(config.EnvAdapter)),
		DSN:        cmp.Or(opts.DSN, os.Getenv(config.EnvDSN)),
		ReplicaDSN: cmp.Or(opts.ReplicaDSN, os.Getenv(config.EnvReplicaDSN)),
		Addr:       cmp.Or(addr, os.Getenv(config.EnvAddr)),
	}

	return s.WithDefaults()
}

func (opts *RootOptions) openStore(ctx context.Context, s config.Settings) (sqlstore.Store, config.CloseFunc, error) {
	return config.OpenStore(ctx, s, sqlstore.WithLogger(NewLogger(opts.logger)))
}
