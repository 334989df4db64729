package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
	"github.com/FACorreiaa/go-tripplanner/internal/server"
	"github.com/FACorreiaa/go-tripplanner/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	appLogger := logger.Log
	defer func() { _ = appLogger.Sync() }()

	// Initialize observability
	otelShutdown, err := server.InitObservability(cfg.Observability, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv := server.New(cfg, appLogger)
	srv.SetRouter(server.SetupRouter(cfg, appLogger))

	// pprof stays on its own private port
	pprofServer := server.StartPprofServer(cfg.Observability.PprofAddr, appLogger)

	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go server.GracefulShutdown(appLogger, done, httpServer, pprofServer)

	appLogger.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.Bool("mapbox", cfg.Mapbox.Token != ""),
		zap.Bool("llm", cfg.Gemini.APIKey != ""))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error("Server error", zap.Error(err))
		return err
	}

	<-done
	appLogger.Info("Graceful shutdown complete")

	return nil
}
