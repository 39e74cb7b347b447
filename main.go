package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/GrzesiuKo/covidsimulation/internal/commands"
	"github.com/GrzesiuKo/covidsimulation/internal/logging"
)

func main() {
	ctx := kong.Parse(&commands.Cli,
		kong.Name("covidplot"),
		kong.Description("Compare simulated populations day by day with confidence bands."),
	)
	logger := logging.New(os.Stderr, commands.Cli.LogLevel)
	// Call the Run() method of the selected parsed command.
	err := ctx.Run(&commands.Context{
		Timeout: commands.Cli.Timeout,
		Logger:  logger,
		Stdout:  os.Stdout,
	})
	ctx.FatalIfErrorf(err)
}
