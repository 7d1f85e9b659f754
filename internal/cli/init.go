// Package cli provides the bootstrap shared by the retrospectiva commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"retrospectiva/internal/chart"
	"retrospectiva/internal/config"
	"retrospectiva/internal/dataset"
	applog "retrospectiva/internal/log"
	"retrospectiva/internal/report"
	"retrospectiva/internal/stats"
)

// SetupLogger builds the application logger from cfg and sets it as the
// slog default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, _ := applog.ParseLevel(cfg.LogLevel)
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App is everything the commands need, built once per process.
type App struct {
	Table    *dataset.Table
	Agg      *stats.Aggregator
	Report   report.Report
	Renderer *chart.Renderer
}

// Bootstrap builds the dataset, the aggregator, the report and the chart
// renderer in that order.
func Bootstrap(cfg *config.Config, logger *applog.Logger) (*App, error) {
	start := time.Now()
	log := logger.WithComponent(applog.ComponentDataset)

	table, err := dataset.Build()
	if err != nil {
		log.LogError(context.Background(), "Failed to build dataset", err, applog.OpBuild, nil)
		return nil, fmt.Errorf("build dataset: %w", err)
	}

	agg := stats.New(table)
	rep, err := report.Default(agg)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	log.Info("Dataset ready",
		applog.FieldRows, table.Len(),
		"charts", len(rep.Charts()),
		applog.FieldDuration, time.Since(start).Milliseconds())

	return &App{
		Table:    table,
		Agg:      agg,
		Report:   rep,
		Renderer: chart.NewRenderer(agg, chart.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight}),
	}, nil
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// The returned context is cancelled on SIGINT or SIGTERM; cleanup then runs
// with a context bounded by timeout and the done channel closes when it returns.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}

		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached", "timeout", timeout.String())
			return
		}
		logger.Info("Shutdown complete")
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup finished.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
