package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartspend/internal/config"
	"smartspend/internal/dashboard"
	"smartspend/internal/events"
	"smartspend/internal/gateway"
	apphttp "smartspend/internal/http"
	"smartspend/internal/log"
	"smartspend/internal/mutation"
	"smartspend/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     parseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	// Session store backs the credential gate with a persisted token.
	store, err := session.NewStore(cfg.SessionDBPath)
	if err != nil {
		logger.Error("Failed to initialize session store", log.FieldError, err, "path", cfg.SessionDBPath)
		os.Exit(1)
	}
	defer store.Close()
	holder := session.NewHolder(store)

	// Backend selection is explicit: the demo gateway is never a silent
	// fallback for a failing remote.
	var api gateway.API
	if cfg.DemoMode {
		api = gateway.NewDemo()
		logger.Info("Using demo gateway", log.FieldBackend, "demo")
	} else {
		api = gateway.NewClient(cfg.APIBaseURL, cfg.APITimeout)
		logger.Info("Using remote gateway", log.FieldBackend, cfg.APIBaseURL)
	}

	// Activity publisher is optional; a missing broker downgrades to no-op.
	var publisher *events.Client
	if cfg.AMQPURL != "" {
		publisher, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, activity events disabled", log.FieldError, err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	dash := dashboard.New(api)
	mut := mutation.New(api, dash, publisher, cfg.UploadSettleDelay)

	srv := apphttp.NewServer(":"+cfg.Port, api, dash, mut, holder, logger)

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown, "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting smartspend server", log.FieldOperation, log.OpStartup, "port", cfg.Port, "demo_mode", cfg.DemoMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
