package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fathom/internal/bootstrap"
	materialsoutadapter "fathom/internal/modules/materials/adapter/out"
	progressoutadapter "fathom/internal/modules/progression/adapter/out"
	"fathom/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	vaultPath string
	asJSON    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "fathom",
		Short:         "Reflective journaling with streaks, levels and badges",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.vaultPath, "vault", ".", "vault path")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newJournalCmd(opts))
	root.AddCommand(newChatCmd(opts))
	root.AddCommand(newMaterialsCmd(opts))
	return root
}

func loadApp(opts *rootOptions, logLevel string) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.vaultPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" && os.Getenv("FATHOM_LOG_LEVEL") == "" {
		cfg.LogLevel = logLevel
	}
	return bootstrap.New(cfg)
}

// withApp builds the app for one command and closes it afterwards.
func withApp(opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(opts, "")
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(context.Background(), app)
}

// emit prints v as indented JSON under --json, otherwise it runs the plain-text printer.
func emit(cmd *cobra.Command, opts *rootOptions, v any, plain func(w io.Writer)) error {
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	plain(cmd.OutOrStdout())
	return nil
}

func printOutcomes(w io.Writer, outcomes []string) {
	for _, o := range outcomes {
		_, _ = fmt.Fprintln(w, "  "+o)
	}
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(opts, "")
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, "info")
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if addr == "" {
				addr = app.Config.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           app.Router,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			app.Logger.Info("http server listening", zap.String("addr", addr), zap.String("vault", app.Config.VaultPath))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			app.Logger.Info("http server shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default FATHOM_HTTP_ADDR or :7777)")
	return cmd
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default catalog.yaml and modules.yaml into the vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.vaultPath)
			if err != nil {
				return err
			}
			seeds := []struct {
				name  string
				path  string
				write func(string) (bool, error)
			}{
				{"catalog", cfg.CatalogPath, progressoutadapter.WriteDefaultCatalog},
				{"modules", cfg.ModulesPath, materialsoutadapter.WriteDefaultModules},
			}
			for _, seed := range seeds {
				written, err := seed.write(seed.path)
				if err != nil {
					return err
				}
				if !written {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already exists: %s\n", seed.name, seed.path)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s written: %s\n", seed.name, seed.path)
			}
			return nil
		},
	}
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
