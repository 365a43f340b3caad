// cmd/panel-server/main.go
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"krixo-panel/internal/auth"
	"krixo-panel/internal/backend"
	"krixo-panel/internal/common/config"
	"krixo-panel/internal/common/database"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/observability"
	"krixo-panel/internal/dashboard"
	"krixo-panel/internal/hiring"
	"krixo-panel/internal/normalizer"
	"krixo-panel/internal/notify"
	"krixo-panel/internal/profile"
	"krixo-panel/internal/requests"
	"krixo-panel/internal/server"
	"krixo-panel/internal/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func main() {
	var configPath, addr string
	flagSet := pflag.NewFlagSet("panel-server", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a config file (default: configs/config.yaml)")
	flagSet.StringVar(&addr, "addr", "", "listen address, overrides server.address")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ep := cfg.Backend.Current(cfg.App.Environment)
	zapLog.Info("Starting panel server",
		zap.String("environment", cfg.App.Environment),
		zap.String("backend", ep.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
	)

	obs := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Client storage ---
	var store session.Storage
	switch cfg.Storage.Driver {
	case "redis":
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Storage.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully", zap.String("redis", cfg.Storage.Redis.String()))
		store = session.NewRedisStorage(rdb.Client, config.GetDuration(cfg.Storage.TTL))
	default:
		store = session.NewMemoryStorage()
	}

	// --- Services ---
	api := backend.NewClient(ep.BaseURL, config.GetDuration(ep.Timeout), obs, log)
	norm := normalizer.New()

	notifier, err := notify.FromConfig(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	srv := server.New(server.Deps{
		Server:     cfg.Server,
		Store:      store,
		API:        api,
		Auth:       auth.NewService(api, cfg.Admin, log),
		Hiring:     hiring.NewService(api, log),
		Requests:   requests.NewService(api, log),
		Profile:    profile.NewService(api, norm, log),
		Dashboards: dashboard.NewRegistry(api, norm, notifier, log),
		Logger:     log,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Panel API listening", zap.String("addr", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("Panel API server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during server shutdown", zap.Error(err))
	}
	zapLog.Info("Panel server stopped")
}
