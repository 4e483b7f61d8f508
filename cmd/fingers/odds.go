package main

import (
	"fmt"
	"os"
)

type OddsCmd struct {
	Players int   `kong:"short='p',help='Number of players at the start of the game'"`
	Values  []int `kong:"sep=',',help='Values a hand can take, e.g. 0,5'"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Players != 0 {
		cfg.Simulation.Players = &c.Players
	}
	if len(c.Values) > 0 {
		cfg.Simulation.HandValues = c.Values
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	simConfig, err := cfg.SimulatorConfig()
	if err != nil {
		return err
	}
	return g.reporter(os.Stdout, logger).WriteOdds(simConfig.Values, simConfig.Players)
}
