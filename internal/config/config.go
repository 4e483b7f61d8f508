// Package config loads simulator settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/simulator"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Config represents the complete simulator configuration
type Config struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Output     *OutputSettings     `hcl:"output,block"`
}

// SimulationSettings controls the games that are played. Nil fields were not
// set in the file; an explicit zero is kept so Validate can reject it. A zero
// seed asks for a time based seed.
type SimulationSettings struct {
	Players    *int   `hcl:"players,optional"`
	Games      *int   `hcl:"games,optional"`
	Seed       *int64 `hcl:"seed,optional"`
	Workers    *int   `hcl:"workers,optional"`
	HandValues []int  `hcl:"hand_values,optional"`
}

// OutputSettings controls how results are written
type OutputSettings struct {
	Format string `hcl:"format,optional"`
	File   string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	d := simulator.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Simulation: &SimulationSettings{
			Players:    &d.Players,
			Games:      &d.Games,
			Seed:       &d.Seed,
			Workers:    &d.Workers,
			HandValues: d.Values.Slice(),
		},
		Output: &OutputSettings{
			Format: FormatTable,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in anything the file left out
func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Simulation == nil {
		c.Simulation = d.Simulation
	}
	if c.Output == nil {
		c.Output = d.Output
	}

	if c.Simulation.Players == nil {
		c.Simulation.Players = d.Simulation.Players
	}
	if c.Simulation.Games == nil {
		c.Simulation.Games = d.Simulation.Games
	}
	if c.Simulation.Seed == nil {
		c.Simulation.Seed = d.Simulation.Seed
	}
	if c.Simulation.Workers == nil {
		c.Simulation.Workers = d.Simulation.Workers
	}
	if c.Simulation.HandValues == nil {
		c.Simulation.HandValues = d.Simulation.HandValues
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}

	if len(c.Simulation.HandValues) == 0 {
		return hand.ErrEmptyValues
	}

	sim, err := c.SimulatorConfig()
	if err != nil {
		return err
	}
	return sim.Validate()
}

// SimulatorConfig converts the simulation block into a simulator.Config
func (c *Config) SimulatorConfig() (simulator.Config, error) {
	values, err := hand.NewValues(c.Simulation.HandValues...)
	if err != nil {
		return simulator.Config{}, err
	}
	return simulator.Config{
		Games:   *c.Simulation.Games,
		Players: *c.Simulation.Players,
		Values:  values,
		Seed:    *c.Simulation.Seed,
		Workers: *c.Simulation.Workers,
	}, nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
