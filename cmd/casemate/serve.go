// File path: cmd/casemate/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nicodishanthj/casemate/internal/api"
	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/common/telemetry"
	"github.com/nicodishanthj/casemate/internal/llm"
	"github.com/nicodishanthj/casemate/internal/sqlite"
)

var (
	addrFlag      string
	staticDirFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, chat websocket and frontend",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides CASEMATE_ADDR)")
	serveCmd.Flags().StringVar(&staticDirFlag, "static-dir", "", "frontend build directory (overrides CASEMATE_STATIC_DIR)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := common.Logger()
	if trimmed := strings.TrimSpace(addrFlag); trimmed != "" {
		cfg.Addr = trimmed
	}
	if trimmed := strings.TrimSpace(staticDirFlag); trimmed != "" {
		cfg.StaticDir = trimmed
	}
	logger.Info("casemate: startup initiated", "addr", cfg.Addr, "db", cfg.DatabasePath)

	shutdownTracing, err := telemetry.Setup(cmd.Context(), "casemate", telemetry.Config{
		Endpoint: cfg.Telemetry.Endpoint,
		Enabled:  cfg.Telemetry.Enabled,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("casemate: span flush failed", "error", err)
		}
	}()

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	proxy := llm.NewProxy(llm.Config{
		Token:   cfg.AI.Token,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	})
	server, err := api.NewServer(store, proxy, &api.Config{
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reachable := cfg.Addr
		if strings.HasPrefix(reachable, ":") {
			reachable = "localhost" + reachable
		}
		logger.Info("casemate: server listening", "addr", cfg.Addr, "health", fmt.Sprintf("http://%s/healthz", reachable))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("casemate: shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("casemate: server stopped", "error", err)
		return err
	}
	logger.Info("casemate: server stopped")
	return nil
}
