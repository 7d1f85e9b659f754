package main

import (
	"github.com/alecthomas/kong"

	"retrospectiva/internal/cli"
	"retrospectiva/internal/config"
	applog "retrospectiva/internal/log"
)

var app struct {
	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve the dashboard over HTTP."`
	Summary SummaryCmd `cmd:"" help:"Print the dashboard to the terminal."`
	Export  ExportCmd  `cmd:"" help:"Write the dataset as CSV and every chart as SVG."`
}

type runContext struct {
	cfg    *config.Config
	logger *applog.Logger
}

func main() {
	cli.LoadEnvFile()
	ctx := kong.Parse(&app,
		kong.Name("retrospectiva"),
		kong.Description("Retrospectiva '25: a year of dates as a dashboard."),
		kong.ShortUsageOnError(),
	)

	cfg, err := cli.LoadAndValidateConfig()
	ctx.FatalIfErrorf(err)

	logger := cli.SetupLogger(cfg)

	err = ctx.Run(&runContext{cfg: cfg, logger: logger})
	ctx.FatalIfErrorf(err)
}
