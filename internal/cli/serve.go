package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/bookshelf/catalog/httpapi"
	"github.com/AntonStoeckl/bookshelf/catalog/service"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type serveOptions struct {
	addr    string
	migrate bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (env BOOKSHELF_ADDR)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "create missing tables before serving")

	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, opts *serveOptions) error {
	s, err := rootOpts.settings(opts.addr)
	if err != nil {
		return err
	}

	store, closeStore, err := rootOpts.openStore(ctx, s)
	if err != nil {
		return err
	}
	defer closeStore()

	if opts.migrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	logger := NewLogger(rootOpts.logger)
	handler := httpapi.NewServer(
		service.NewBookService(store.Books(), store.Categories()),
		service.NewCategoryService(store.Categories()),
		httpapi.WithLogger(logger),
	)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving catalog api", "addr", s.Addr, "adapter", s.Adapter)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("catalog api stopped")

	return nil
}
