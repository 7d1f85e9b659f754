package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"retrospectiva/internal/cli"
	applog "retrospectiva/internal/log"
)

type ExportCmd struct {
	Out string `short:"o" default:"export" type:"path" help:"Directory to write files into."`
}

func (c *ExportCmd) Run(ctx *runContext) error {
	a, err := cli.Bootstrap(ctx.cfg, ctx.logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", c.Out, err)
	}

	log := ctx.logger.WithComponent(applog.ComponentCLI)

	var csv bytes.Buffer
	if err := a.Table.WriteCSV(&csv); err != nil {
		return fmt.Errorf("export table: %w", err)
	}
	if err := c.write(log, "dataset.csv", csv.Bytes()); err != nil {
		return err
	}

	for _, spec := range a.Report.Charts() {
		svg, err := a.Renderer.RenderBytes(spec)
		if err != nil {
			return fmt.Errorf("render %s: %w", spec.ID, err)
		}
		if err := c.write(log, spec.ID+".svg", svg); err != nil {
			return err
		}
	}

	log.Info("Export complete", "dir", c.Out, "files", len(a.Report.Charts())+1)
	return nil
}

func (c *ExportCmd) write(log *applog.Logger, name string, data []byte) error {
	path := filepath.Join(c.Out, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("File written", "path", path, "size", humanize.Bytes(uint64(len(data))), applog.FieldOperation, applog.OpExport)
	return nil
}
