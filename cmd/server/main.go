package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cloud-ru/deferred-contract-go/internal/config"
	"github.com/cloud-ru/deferred-contract-go/internal/server"
	"github.com/cloud-ru/deferred-contract-go/internal/tools"
	"github.com/cloud-ru/deferred-contract-go/internal/tracing"
)

func main() {
	if err := run(); err != nil {
		slog.Error("сервер завершился с ошибкой", "component", "main", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	setupLogger(cfg.SlogLevel())

	slog.Info("запуск сервиса",
		"component", "main",
		slog.Group("build",
			slog.String("service", cfg.OTELServiceName),
			slog.String("version", tracing.ServiceVersion),
			slog.String("go", runtime.Version()),
		),
		"port", cfg.Port,
	)

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("ошибка остановки трейсинга", "component", "main", "error", err)
		}
	}()

	srv := server.New(cfg, tools.Registry(cfg, tracer))
	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info("сервис остановлен", "component", "main")
	return nil
}

func setupLogger(level slog.Level) {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
}
