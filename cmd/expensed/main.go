package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"expensed/internal/catalog"
	"expensed/internal/cli"
	"expensed/internal/events"
	apphttp "expensed/internal/http"
	"expensed/internal/services"
	"expensed/internal/tools"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	store := cli.InitStore(logger, cfg.DBPath)
	defer store.Close()

	// Event publishing is optional: without an AMQP URL the service
	// runs standalone and mutations are not broadcast.
	var publisher *events.Client
	if cfg.AMQPURL != "" {
		var err error
		publisher, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err, "url", cfg.AMQPURL)
			os.Exit(1)
		}
		defer publisher.Close()
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	cat := catalog.Load(cfg.CategoriesPath)

	svc := services.NewExpenseService(store, publisher)

	registry := tools.NewRegistry()
	tools.RegisterExpenseTools(registry, svc)

	srv := apphttp.NewServer(":"+cfg.Port, registry, cat)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting expensed server", "port", cfg.Port, "db_path", cfg.DBPath, "tools", registry.Names())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
