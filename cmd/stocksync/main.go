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

	_ "github.com/joho/godotenv/autoload"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/fanout"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/kintone"
	"github.com/ruudy-sib/stocksync/internal/config"
)

const appName = "stocksync"

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := buildContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("building container: %w", err)
	}

	return c.Invoke(func(
		router http.Handler,
		logger *zap.Logger,
		redisClient *goredis.Client,
		sinks *fanout.Fanout,
		kintoneClient *kintone.Client,
	) error {
		defer func() {
			if err := sinks.Close(); err != nil {
				logger.Error("error closing adjustment sinks", zap.Error(err))
			}
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Error("error closing redis", zap.Error(err))
				}
			}
			_ = kintoneClient.Close()
			_ = logger.Sync()
		}()

		logger.Info("starting application",
			zap.String("app", appName),
			zap.String("version", version),
			zap.String("environment", cfg.Environment),
			zap.String("http_addr", cfg.HTTPAddr),
			zap.String("webhook_path", cfg.WebhookPath),
			zap.Strings("sinks", sinks.Sinks()),
		)

		server := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		err := serve(server, quit, logger)
		cancel()
		logger.Info("shutdown complete")
		return err
	})
}

// serve runs the server until a signal arrives on quit or the listener fails,
// then shuts it down. A listener failure is returned.
func serve(server *http.Server, quit <-chan os.Signal, logger *zap.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr))
		if srvErr := server.ListenAndServe(); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", srvErr)
		}
	}()

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("service error", zap.Error(runErr))
	}

	// Graceful shutdown with timeout.
	logger.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	return runErr
}
