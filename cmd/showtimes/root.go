package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chronoworld/showtimes/internal/app"
	"github.com/chronoworld/showtimes/internal/config"
	"github.com/chronoworld/showtimes/internal/log"
	"github.com/chronoworld/showtimes/internal/search"
	"github.com/chronoworld/showtimes/internal/storage"
)

type rootOptions struct {
	configPath  string
	recordsPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "showtimes",
		Short:         "Search ChronoWorld showtimes by event name",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML or JSON config file")
	cmd.PersistentFlags().StringVar(&opts.recordsPath, "records", "", "Serve records from a JSON/YAML file instead of DynamoDB")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// buildApp loads configuration and constructs the App, using a MemoryTable
// when --records is given.
func buildApp(ctx context.Context, opts *rootOptions) (*app.App, *config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	log.Setup(os.Stderr, cfg.Log.Level, "console")

	var appOpts []app.Option
	if opts.recordsPath != "" {
		records, err := storage.LoadRecordsFile(opts.recordsPath)
		if err != nil {
			return nil, nil, err
		}
		appOpts = append(appOpts, app.WithTable(storage.NewMemoryTable(records...)))
	}

	a, err := app.New(ctx, cfg, appOpts...)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <eventName>",
		Short: "Run one search and print the invocation response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, _, err := buildApp(ctx, opts)
			if err != nil {
				return err
			}

			var req search.Request
			if len(args) == 1 {
				req.EventName = args[0]
			}

			resp, err := a.Handler().Handle(ctx, req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /v1/search over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, cfg, err := buildApp(ctx, opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			return a.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default from config)")
	return cmd
}
