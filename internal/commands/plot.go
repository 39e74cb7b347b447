package commands

import (
	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/sources"
)

type PlotCmd struct {
	File string `arg:"" name:"file" help:"Chart request file (.yaml, .yml or .json)." type:"existingfile"`

	ChartFlags `embed:""`
}

func (p *PlotCmd) Run(ctx *Context) error {
	req, err := sources.LoadFile(p.File)
	if err != nil {
		return err
	}
	items, err := req.ChartItems()
	if err != nil {
		return err
	}
	opts, err := req.Options()
	if err != nil {
		return err
	}
	opts, title, err := p.apply(opts, req.Title)
	if err != nil {
		return err
	}

	ctx.Logger.Debug("composing chart", "file", p.File, "items", len(items))
	fig, err := charts.Compose(items, title, opts)
	if err != nil {
		return err
	}
	return p.render(ctx, fig)
}
