package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhaveripatric/ota-gateway/internal/config"
	"github.com/jhaveripatric/ota-gateway/internal/logger"
	"github.com/jhaveripatric/ota-gateway/internal/metrics"
	"github.com/jhaveripatric/ota-gateway/internal/server"
	"github.com/jhaveripatric/ota-gateway/internal/storage"
	"github.com/jhaveripatric/ota-gateway/internal/telemetry"
	"github.com/jhaveripatric/ota-gateway/internal/version"
)

type options struct {
	configPath string
	port       int
	buildDir   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ota-gateway",
		Short: "Serve an exported app bundle and its OTA update manifest.",
		Long: `Serves the exported build output directory and answers
GET /manifest?platform=<android|ios>&runtimeVersion=<version> with the
update manifest derived from the export's metadata.json.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err := run(ctx, cmd, opts)
			if err != nil {
				logger.Errorf(ctx, "%v", err)
			}
			logger.Sync()
			return err
		},
	}

	root.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultFilename, "path to config file")
	root.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides config and PORT)")
	root.Flags().StringVarP(&opts.buildDir, "dir", "d", "", "build output directory (overrides config)")

	version.AttachCobraVersionCommand(root)

	return root
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	var overrides []config.Option
	if cmd.Flags().Changed("port") {
		overrides = append(overrides, config.WithPort(opts.port))
	}
	if opts.buildDir != "" {
		overrides = append(overrides, config.WithBuildDir(opts.buildDir))
	}

	cfg, err := config.Load(opts.configPath, overrides...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.Logging.Level); ok {
		logger.SetLevel(level)
	}
	ctx = logger.WithName(ctx, cfg.Name)

	logger.InfoKV(ctx, "loaded config", "name", cfg.Name, "version", version.Version,
		"port", cfg.Server.Port, "build_dir", cfg.Build.Dir, "storage", cfg.Storage.Driver)

	shutdownTracing, tracing, err := telemetry.Init(ctx, cfg.Name, version.Version, cfg.Tracing.Endpoint)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.WarnKV(ctx, "telemetry shutdown", "error", err)
		}
	}()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open build output: %w", err)
	}

	srv, err := server.New(cfg, store,
		server.WithMetrics(metrics.New()),
		server.WithTracing(tracing),
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Run(ctx)
}
