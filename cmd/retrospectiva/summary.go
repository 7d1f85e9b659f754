package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"

	"retrospectiva/internal/cli"
	"retrospectiva/internal/core"
	"retrospectiva/internal/terminal"
)

type SummaryCmd struct {
	Field []string `short:"f" default:"area,country,outcome" help:"Fields to break down (${default})."`
}

func (c *SummaryCmd) Run(ctx *runContext) error {
	fields := make([]core.Field, 0, len(c.Field))
	for _, name := range lo.Uniq(c.Field) {
		f, err := core.ParseField(name)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}

	a, err := cli.Bootstrap(ctx.cfg, ctx.logger)
	if err != nil {
		return err
	}

	out, err := terminal.Summary(terminal.NewTheme(), a.Report, a.Agg, fields...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
