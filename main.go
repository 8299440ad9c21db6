package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/eu-vat-rates/config"
	"github.com/giygas/eu-vat-rates/data"
	"github.com/giygas/eu-vat-rates/handlers"
	"github.com/giygas/eu-vat-rates/health"
	"github.com/giygas/eu-vat-rates/logging"
	"github.com/giygas/eu-vat-rates/scheduler"
	"github.com/giygas/eu-vat-rates/server"
	"github.com/giygas/eu-vat-rates/validation"
	"github.com/joho/godotenv"
)

// application bundles the wired components of the service
type application struct {
	config    *config.Config
	store     *data.DataContainer
	scheduler *scheduler.Scheduler
	server    *server.Server
}

// newRateStore returns a container over DATA_FILE, or over the bundled snapshot when unset
func newRateStore(cfg *config.Config) *data.DataContainer {
	if cfg.DataFile == "" {
		return data.NewDataContainer()
	}
	fsys, path := data.SourceForFile(cfg.DataFile)
	return data.NewDataContainerFromFS(fsys, path)
}

// newApplication wires every component from cfg without starting anything
func newApplication(cfg *config.Config) *application {
	store := newRateStore(cfg)
	store.SetServerStartTime(time.Now())

	staleAfter := time.Duration(cfg.StaleAfterDays) * 24 * time.Hour
	validator := validation.NewDataValidator()
	healthChecker := health.NewHealthChecker(store, staleAfter)
	handler := handlers.NewHTTPHandler(store, validator, healthChecker)

	return &application{
		config:    cfg,
		store:     store,
		scheduler: scheduler.NewScheduler(store, validator, healthChecker, staleAfter),
		server:    server.NewServer(cfg, handler),
	}
}

// loadEnvFile reads .env from the working directory, then from the executable directory
func loadEnvFile() error {
	if err := godotenv.Load(); err == nil {
		return nil
	}

	ex, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	exPath := filepath.Dir(ex)
	if err := os.Chdir(exPath); err != nil {
		return fmt.Errorf("failed to change directory: %w", err)
	}

	// A missing .env is fine, the environment may carry everything
	_ = godotenv.Load()
	return nil
}

func main() {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logService := logging.InitLoggerWithOptions(logging.Options{
		Dir:            cfg.LogDir,
		Env:            string(cfg.Env),
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer logService.Close()

	app := newApplication(cfg)

	if err := app.scheduler.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer app.scheduler.Stop()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := app.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		logging.Error("Server failed to start", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
	}
}
