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

	"finmanager/internal/config"
	"finmanager/internal/database"
	"finmanager/internal/logger"
	"finmanager/internal/middleware"
	"finmanager/internal/router"
)

// @title           Financial Manager API
// @version         1.0
// @description     Record financial transactions and classify them by category and counterparty.

// @host      localhost:3000
// @BasePath  /api

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logger.ParseLevel(appConfig.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	log, err := logger.New(logger.Options{
		Dir:         appConfig.LogDir,
		Level:       level,
		Service:     "financial-manager",
		Environment: appConfig.Env,
		Console:     !appConfig.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	if err := serve(appConfig, log); err != nil {
		log.Error("Server stopped with error", "error", err.Error())
		return err
	}
	return nil
}

func serve(appConfig *config.Config, log *logger.Logger) error {
	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig), log)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warn("Failed to close database", "error", err.Error())
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = dbManager.Ping(ctx)
	cancel()
	if err != nil {
		return err
	}

	// Run migrations
	if err := dbManager.RunMigrations(database.DefaultMigrationsSource); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	logLimiter := middleware.NewRateLimiter(appConfig.LogRateLimit, appConfig.LogRateWindow)
	defer logLimiter.Stop()

	engine := router.New(router.Deps{
		DB:             dbManager.DB(),
		Log:            log,
		Environment:    appConfig.Env,
		CORSOrigins:    appConfig.CORSOrigins,
		TrustedProxies: appConfig.TrustedProxies,
		LogLimiter:     logLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server is running", "port", appConfig.Port, "environment", appConfig.Env)
		log.Info("Swagger documentation available", "url", fmt.Sprintf("http://localhost:%s/swagger/index.html", appConfig.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
