package main

import (
	"context"
	"errors"
	"net/http"

	"retrospectiva/internal/cli"
	apphttp "retrospectiva/internal/http"
	applog "retrospectiva/internal/log"
)

type ServeCmd struct {
	Port string `short:"p" help:"Port to listen on. Overrides PORT."`
}

func (c *ServeCmd) Run(ctx *runContext) error {
	if c.Port != "" {
		ctx.cfg.Port = c.Port
		if err := ctx.cfg.Validate(); err != nil {
			return err
		}
	}

	a, err := cli.Bootstrap(ctx.cfg, ctx.logger)
	if err != nil {
		return err
	}

	srv := apphttp.NewServer(ctx.cfg.Addr(), a.Table, a.Agg, a.Report, a.Renderer, apphttp.Options{
		Logger:         ctx.logger,
		ChartCacheSize: ctx.cfg.ChartCacheSize,
		ChartCacheTTL:  ctx.cfg.ChartCacheTTL,
		RateLimitRPM:   ctx.cfg.RateLimitRPM,
	})

	shutdownCtx, done := cli.GracefulShutdown(ctx.logger, ctx.cfg.ShutdownTimeout, func(sctx context.Context) {
		if err := srv.Shutdown(sctx); err != nil {
			ctx.logger.LogError(sctx, "Server shutdown error", err, applog.OpShutdown, nil)
		}
	})
	prewarmInBackground(shutdownCtx, srv, ctx.logger)

	ctx.logger.Info("Starting retrospectiva server",
		"port", ctx.cfg.Port,
		"charts", len(a.Report.Charts()),
		"rate_limit_rpm", ctx.cfg.RateLimitRPM)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		ctx.logger.Error("Server error", applog.FieldError, err, "port", ctx.cfg.Port)
		return err
	}

	cli.WaitForShutdown(shutdownCtx, done)
	ctx.logger.Info("Server stopped gracefully")
	return nil
}

// prewarmInBackground fills the chart cache while the listener is already up.
// The returned channel closes once prewarming has finished or failed.
func prewarmInBackground(ctx context.Context, srv *apphttp.Server, logger *applog.Logger) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if err := srv.Prewarm(ctx); err != nil {
			logger.LogError(ctx, "Chart prewarm failed", err, applog.OpStartup, nil)
		}
	}()
	return finished
}
