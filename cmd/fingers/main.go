package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/jaked0626/analyzing-fingers-while-drunk/cmd/fingers/shared"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/config"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/randutil"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/report"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `kong:"default='fingers.hcl',help='HCL config file, ignored if it does not exist'"`
	LogLevel string `kong:"help='Log level (debug|info|warn|error), overrides config'"`
	NoColor  bool   `kong:"help='Disable colored output'"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" default:"withargs" help:"Simulate many games and tally finishing ranks"`
	Odds     OddsCmd          `cmd:"" help:"Print the exact chance of a correct guess for each table size"`
	Trace    TraceCmd         `cmd:"" help:"Play a single game and print every round"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fingers"),
		kong.Description("Monte Carlo rank simulator for the fingers drinking game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and builds the logger. Commands apply their
// own overrides and validate afterwards.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	return cfg, shared.SetupLogger(cfg.Level()), nil
}

// colorProfile picks the color profile for output written to stderr
func (g *Globals) colorProfile() termenv.Profile {
	if g.NoColor {
		return termenv.Ascii
	}
	return termenv.NewOutput(os.Stderr).EnvColorProfile()
}

// reporter writes to w, in color only when w is a terminal and colors are on
func (g *Globals) reporter(w io.Writer, logger *log.Logger) *report.Reporter {
	if g.NoColor {
		return report.NewReporter(w, logger, report.WithColorProfile(termenv.Ascii))
	}
	return report.NewReporter(w, logger)
}

// resolveSeed turns a zero seed into a time based one and logs the choice
func resolveSeed(seed int64, logger *log.Logger) int64 {
	if seed != 0 {
		return seed
	}
	seed = randutil.Seed(0)
	logger.Info("Using time based seed", "seed", seed)
	return seed
}
