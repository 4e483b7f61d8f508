package main

import (
	"fmt"
	"os"

	"github.com/jaked0626/analyzing-fingers-while-drunk/cmd/fingers/shared"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/game"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/randutil"
)

// TraceCmd replays one game round by round. With the same seed, game N
// draws exactly what game N of a simulate run draws.
type TraceCmd struct {
	Players int    `kong:"short='p',help='Number of players'"`
	Seed    *int64 `kong:"help='Random seed (0 for a time based seed)'"`
	Values  []int  `kong:"sep=',',help='Values a hand can take, e.g. 0,5'"`
	Game    int    `kong:"short='g',default='1',help='Which game of the seeded run to replay'"`
}

func (c *TraceCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Players != 0 {
		cfg.Simulation.Players = &c.Players
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = c.Seed
	}
	if len(c.Values) > 0 {
		cfg.Simulation.HandValues = c.Values
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Game < 1 {
		return fmt.Errorf("game must be positive, got %d", c.Game)
	}

	simConfig, err := cfg.SimulatorConfig()
	if err != nil {
		return err
	}
	seed := resolveSeed(simConfig.Seed, logger)

	reporter := g.reporter(os.Stdout, logger)
	src := hand.NewSource(simConfig.Values, randutil.Derive(seed, c.Game-1))

	var writeErr error
	gm, err := game.NewGame(game.NewPlayers(simConfig.Players), src,
		game.WithLogger(logger.With("game", c.Game)),
		game.WithObserver(func(rr game.RoundResult) {
			if writeErr == nil {
				writeErr = reporter.WriteRound(rr)
			}
		}),
	)
	if err != nil {
		return err
	}

	logger.Debug("Tracing game", "game", c.Game, "seed", seed, "players", simConfig.Players)
	ctx, stop := shared.SetupSignalHandler()
	defer stop()

	result, err := gm.Play(ctx)
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	return reporter.WriteFinish(result)
}
