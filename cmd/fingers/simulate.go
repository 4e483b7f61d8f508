package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/jaked0626/analyzing-fingers-while-drunk/cmd/fingers/shared"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/config"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/fileutil"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/progress"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/simulator"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/statistics"
)

type SimulateCmd struct {
	// Simulation, zero values keep the config file setting
	Games   int    `kong:"short='n',help='Number of games to simulate'"`
	Players int    `kong:"short='p',help='Number of players per game'"`
	Seed    *int64 `kong:"help='Random seed (0 for a time based seed)'"`
	Workers int    `kong:"short='w',help='Number of parallel workers'"`
	Values  []int  `kong:"sep=',',help='Values a hand can take, e.g. 0,5'"`

	// Output
	Format   string `kong:"short='f',help='Output format: table, json or csv'"`
	Output   string `kong:"short='o',help='Write results to a file instead of stdout'"`
	Progress bool   `kong:"help='Show a progress bar on stderr'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	simConfig, err := cfg.SimulatorConfig()
	if err != nil {
		return err
	}
	simConfig.Seed = resolveSeed(simConfig.Seed, logger)
	simConfig.Logger = logger

	clock := quartz.NewReal()
	var opts []progress.Option
	if c.Progress {
		opts = append(opts, progress.WithBar(os.Stderr, g.colorProfile()))
	}
	start := clock.Now()
	tracker := progress.New(clock, logger, opts...)
	simConfig.Progress = tracker.Update

	ctx, stop := shared.SetupSignalHandler()
	defer stop()

	tally, err := simulator.New(simConfig).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	end := start.Add(tracker.Elapsed())

	return g.writeResults(cfg.Output, tally, simConfig, logger, start, end)
}

// apply copies explicitly set flags over the config file values
func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Games != 0 {
		cfg.Simulation.Games = &c.Games
	}
	if c.Players != 0 {
		cfg.Simulation.Players = &c.Players
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = c.Seed
	}
	if c.Workers != 0 {
		cfg.Simulation.Workers = &c.Workers
	}
	if len(c.Values) > 0 {
		cfg.Simulation.HandValues = c.Values
	}
	if c.Format != "" {
		cfg.Output.Format = c.Format
	}
	if c.Output != "" {
		cfg.Output.File = c.Output
	}
}

func (g *Globals) writeResults(out *config.OutputSettings, tally *statistics.Tally, simConfig simulator.Config, logger *log.Logger, start, end time.Time) error {
	write := func(w io.Writer) error {
		reporter := g.reporter(w, logger)
		rep, err := reporter.GenerateReport(tally, simConfig, start, end)
		if err != nil {
			return err
		}
		return reporter.Write(rep, out.Format)
	}

	if out.File == "" {
		return write(os.Stdout)
	}

	if err := fileutil.WriteAtomic(out.File, 0o644, write); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	logger.Info("Results written", "file", out.File, "format", out.Format)
	return nil
}
