package main

//
//  @title           b3dash API
//  @version         1.0
//  @description     Brazilian market dashboard: macro indicators, PTAX quotes, B3 prices and cumulative returns.
//  @termsOfService  https://github.com/guttosm/b3dash
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/b3dash
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Chart payloads for the dashboard views
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/b3dash/config"
	_ "github.com/guttosm/b3dash/docs" // swagger docs
	"github.com/guttosm/b3dash/internal/app"
	"github.com/guttosm/b3dash/internal/logger"
)

// cli holds what the subcommands share once the root command has loaded it.
type cli struct {
	cfg config.Config
	out io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd assembles the b3dash command tree writing results to out.
func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "b3dash",
		Short:         "Brazilian market dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env")
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				cfg.Log.Level = lvl
			}
			c.cfg = cfg

			opts := logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}
			if cmd.Name() == "returns" {
				// keep stdout for the table
				opts.Out = os.Stderr
			}
			logger.Configure(opts)
			return nil
		},
	}
	root.PersistentFlags().String("env", "", "env file to read (default .env)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(c.serveCmd(), c.ingestCmd(), c.returnsCmd())
	return root
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				c.cfg.Server.Port = port
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			logger.L().Info().Msg("starting API server")
			router, cleanup, err := app.InitializeApp(ctx, c.cfg)
			if err != nil {
				return fmt.Errorf("app init error: %w", err)
			}

			server := startServer(router, c.cfg.Server.Port)
			gracefulShutdown(ctx, server, cleanup)
			return nil
		},
	}
	cmd.Flags().String("port", "", "port to listen on (default SERVER_PORT)")
	return cmd
}

// startServer starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains the server and
// runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}
