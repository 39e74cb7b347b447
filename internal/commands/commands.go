package commands

import (
	"io"
	"log/slog"
	"time"
)

type Context struct {
	Timeout time.Duration
	Logger  *slog.Logger
	Stdout  io.Writer
}

var Cli struct {
	Timeout  time.Duration `help:"Timeout for Prometheus queries." default:"60s"`
	LogLevel string        `help:"Log level." default:"warn" enum:"debug,info,warn,error" env:"COVIDPLOT_LOG_LEVEL" name:"log-level"`

	Plot        PlotCmd        `cmd:"" help:"Plot a chart request file."`
	QueryRange  QueryRangeCmd  `cmd:"" help:"Plot daily Prometheus range queries."`
	FormatQuery FormatQueryCmd `cmd:"" help:"Format query."`
}
