package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fingers.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5, *cfg.Simulation.Players)
	assert.Equal(t, 10000, *cfg.Simulation.Games)
	assert.Equal(t, int64(20240101), *cfg.Simulation.Seed)
	assert.Equal(t, []int{0, 5}, cfg.Simulation.HandValues)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

simulation {
  players     = 4
  games       = 2500
  seed        = 99
  workers     = 8
  hand_values = [0, 1, 2]
}

output {
  format = "json"
  file   = "out.json"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "out.json", cfg.Output.File)

	sim, err := cfg.SimulatorConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, sim.Players)
	assert.Equal(t, 2500, sim.Games)
	assert.Equal(t, int64(99), sim.Seed)
	assert.Equal(t, 8, sim.Workers)
	assert.Equal(t, hand.MustValues(0, 1, 2), sim.Values)
}

func TestLoadPartialFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation {
  games = 42
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 42, *cfg.Simulation.Games)
	assert.Equal(t, 5, *cfg.Simulation.Players)
	assert.Equal(t, 1, *cfg.Simulation.Workers)
	assert.Equal(t, FormatTable, cfg.Output.Format)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, `simulation {`))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `unknown = 1`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	path := writeConfig(t, `
simulation {
  players = 0
  games   = 0
  seed    = 0
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Simulation.Seed)
	assert.Equal(t, int64(0), *cfg.Simulation.Seed)
	assert.Equal(t, 0, *cfg.Simulation.Players)
	assert.Error(t, cfg.Validate())

	path = writeConfig(t, `
simulation {
  seed = 0
}
`)
	cfg, err = Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	sim, err := cfg.SimulatorConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(0), sim.Seed)
}

func TestDefaultsAreNotShared(t *testing.T) {
	a, b := Default(), Default()
	*a.Simulation.Games = 1
	assert.Equal(t, 10000, *b.Simulation.Games)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"no values", func(c *Config) { c.Simulation.HandValues = []int{} }},
		{"no players", func(c *Config) { *c.Simulation.Players = -1 }},
		{"no games", func(c *Config) { *c.Simulation.Games = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
