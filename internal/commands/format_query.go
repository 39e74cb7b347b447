package commands

import (
	"fmt"

	"github.com/GrzesiuKo/covidsimulation/internal/prometheus"
)

type FormatQueryCmd struct {
	Query string `arg:"" name:"query" help:"Query to format." required:"true"`
}

func (f *FormatQueryCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Stdout, prometheus.FormatQuery(f.Query))
	return err
}
