package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/game"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/randutil"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultSeed seeds runs that do not pick their own seed
const DefaultSeed int64 = 20240101

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Players int
	Values  hand.Values
	Seed    int64
	Workers int
	Logger  *log.Logger

	// Progress, if set, is called after every finished game with the number
	// of games finished so far. It may be called from several goroutines.
	Progress func(done, total int)
}

// DefaultConfig returns the standard five player, 10,000 game setup
func DefaultConfig() Config {
	return Config{
		Games:   10000,
		Players: 5,
		Values:  hand.Default(),
		Seed:    DefaultSeed,
		Workers: 1,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Players < 1 {
		return fmt.Errorf("players must be positive, got %d", c.Players)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Values.Len() == 0 {
		return hand.ErrEmptyValues
	}
	return nil
}

// Simulator plays many independent games and tallies finishing ranks
type Simulator struct {
	config Config
	logger *log.Logger
	done   atomic.Int64
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger}
}

// Run plays the configured number of games and returns the merged tally.
// Game i always draws from randutil.Derive(Seed, i), so the result does not
// depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Tally, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	s.done.Store(0)

	workers := min(s.config.Workers, s.config.Games)
	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"players", s.config.Players,
		"values", s.config.Values.String(),
		"seed", s.config.Seed,
		"workers", workers)

	if workers == 1 {
		tally, err := s.runRange(ctx, 0, s.config.Games)
		if err != nil {
			return nil, err
		}
		return s.finish(tally)
	}

	// Split games into contiguous ranges, one per worker
	tallies := make([]*statistics.Tally, workers)
	per := s.config.Games / workers
	remainder := s.config.Games % workers

	g, gctx := errgroup.WithContext(ctx)
	start := 0
	for w := 0; w < workers; w++ {
		count := per
		if w < remainder {
			count++
		}
		from, to := start, start+count
		start = to

		g.Go(func() error {
			tally, err := s.runRange(gctx, from, to)
			if err != nil {
				return err
			}
			tallies[w] = tally
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := statistics.NewTally(s.config.Players)
	for _, t := range tallies {
		if err := total.Merge(t); err != nil {
			return nil, fmt.Errorf("merging worker tallies: %w", err)
		}
	}
	return s.finish(total)
}

// runRange plays games [from, to) with its own players and tally
func (s *Simulator) runRange(ctx context.Context, from, to int) (*statistics.Tally, error) {
	players := game.NewPlayers(s.config.Players)
	tally := statistics.NewTally(s.config.Players)

	for i := from; i < to; i++ {
		result, err := s.playGame(ctx, players, i)
		if err != nil {
			return nil, err
		}
		if err := tally.Add(result); err != nil {
			return nil, fmt.Errorf("recording game %d: %w", i+1, err)
		}

		done := int(s.done.Add(1))
		if s.config.Progress != nil {
			s.config.Progress(done, s.config.Games)
		}
	}
	return tally, nil
}

// playGame plays the index-th game of the run
func (s *Simulator) playGame(ctx context.Context, players []*game.Player, index int) (statistics.GameResult, error) {
	src := hand.NewSource(s.config.Values, randutil.Derive(s.config.Seed, index))

	g, err := game.NewGame(players, src, game.WithLogger(s.logger.With("game", index+1)))
	if err != nil {
		return statistics.GameResult{}, fmt.Errorf("starting game %d: %w", index+1, err)
	}

	result, err := g.Play(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return statistics.GameResult{}, fmt.Errorf("simulation stopped after %d games: %w", s.done.Load(), err)
		}
		return statistics.GameResult{}, fmt.Errorf("playing game %d: %w", index+1, err)
	}

	return statistics.GameResult{
		Ranks:    result.Ranks,
		Rounds:   result.Rounds,
		Attempts: result.Attempts,
		Matches:  result.Matches,
	}, nil
}

func (s *Simulator) finish(tally *statistics.Tally) (*statistics.Tally, error) {
	if err := tally.Validate(); err != nil {
		return nil, fmt.Errorf("tally validation failed: %w", err)
	}
	s.logger.Info("Simulation finished",
		"games", tally.Games,
		"mean_rounds", fmt.Sprintf("%.2f", tally.MeanRounds()),
		"max_rounds", tally.MaxRounds)
	return tally, nil
}
