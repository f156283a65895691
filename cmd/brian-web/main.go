// Command brian-web serves the server-rendered web frontend over the
// brian REST API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"brian/internal/api"
	"brian/internal/config"
	"brian/internal/logging"
	"brian/internal/store"
	"brian/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "brian-web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, level, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting brian-web",
		zap.String("api_url", cfg.APIURL),
		zap.String("listen_addr", cfg.Web.ListenAddr),
		zap.Strings("config_sources", cfg.LoadedFrom),
	)

	client := api.NewClient(cfg.APIURL, logger)
	st := store.New(client, logger)

	server, err := web.NewServer(cfg, logger, client, st)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	// Hot-reload the log level when the config file changes; everything
	// else requires a restart.
	watcher, err := config.NewWatcher(*configPath, logger, func(next *config.Config) {
		if parsed, err := logging.Level(next.Logging.Level); err == nil {
			level.SetLevel(parsed)
		}
	})
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	httpServer := &http.Server{
		Addr:         cfg.Web.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Web.ListenAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
