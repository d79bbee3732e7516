package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mywio/guilded-relay/pkg/config"
	"github.com/mywio/guilded-relay/pkg/core"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/relay"
	"github.com/mywio/guilded-relay/pkg/render"
	"github.com/mywio/guilded-relay/pkg/server"
	"github.com/spf13/cobra"
)

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func identityFrom(cfg config.Config) render.Identity {
	return render.Identity{Name: cfg.BotName, AvatarURL: cfg.BotAvatarURL}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	engine, err := relay.NewEngine(identityFrom(cfg), logger.With("module", "relay"))
	if err != nil {
		return fmt.Errorf("build relay engine: %w", err)
	}
	client := guilded.NewClient(cfg.GuildedBaseURL, &http.Client{Timeout: cfg.DeliveryTimeout}, logger.With("module", "guilded"))

	mgr := core.NewModuleManager(logger)
	srv := server.New(cfg, engine, client)
	srv.ReportStatusOf(mgr)
	mgr.Register(srv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mgr.Init(ctx); err != nil {
		return err
	}
	mgr.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down...", "signal", sig)
	case runErr = <-mgr.Errors():
		logger.Error("Module failed, shutting down", "error", runErr)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.DeliveryTimeout)
	defer stopCancel()
	mgr.Stop(stopCtx)
	logger.Info("Shutdown complete")
	return runErr
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "guilded-relay",
		Short:         "Relay GitHub webhooks to Guilded",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "Path to the YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = "config.yaml"
			}
			return serve(path)
		},
	}

	rootCmd.AddCommand(serveCmd, newRenderCmd(&configPath))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
