package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscription_feed_api/infrastructure/config"
	"subscription_feed_api/infrastructure/logger"
	"subscription_feed_api/infrastructure/provider"
	"subscription_feed_api/internal/core/usecases"
	"subscription_feed_api/internal/handler/rest"
	"subscription_feed_api/internal/handler/server"
	"subscription_feed_api/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return 1
	}

	appLogger, err := logger.NewZapLogger(cfg.LogLevel, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	m := metrics.New()
	youtubeProvider := provider.NewYoutubeProvider(cfg.APIKey, appLogger, m)
	feedUseCase := usecases.NewFeedUseCase(youtubeProvider, appLogger)
	feedHandler := rest.NewFeedHandler(feedUseCase, appLogger)

	srv := server.New(cfg, feedHandler, m, appLogger)

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info(fmt.Sprintf("Listening on %s", srv.Addr))
		errChan <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err = <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server error", err)
			return 1
		}
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Error while shutting down server", err)
			return 1
		}
	}

	appLogger.Info("Application finished.")
	return 0
}
