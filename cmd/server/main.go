package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"qms-server/configs"
	httpEngine "qms-server/internal/app/http"
	"qms-server/internal/logics"
	"qms-server/internal/repositories"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", "", "Path to config file (short)")
	flag.StringVar(&configPath, "config", "", "Path to config file (long)")
	flag.Parse()

	// Initialize configuration
	configs.Init(&configPath)
	configs.Logger.Info("Configuration loaded.",
		zap.String("configPath", configPath),
	)

	// Initialize repositories (Postgres, optionally Redis)
	repositories.Init()

	// Seed the database with sample audits on first boot.
	auditService := logics.NewAuditService(repositories.DBS.Postgres, configs.Logger)
	if err := auditService.EnsureSeedData(); err != nil {
		configs.Logger.Error("Failed to seed sample data", zap.Error(err))
	}

	// Create HTTP server and run it in a separate goroutine.
	httpServer := httpEngine.NewServer()
	go func() {
		if err := httpServer.Start(); err != nil {
			if err.Error() != "http: Server closed" {
				configs.Logger.Fatal("HTTP server error", zap.Error(err))
			}
		}
	}()

	// Wait for an OS shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	configs.Logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		configs.Logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		configs.Logger.Info("HTTP server shutdown gracefully")
	}

	configs.Logger.Info("Server exited")
}
