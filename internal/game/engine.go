package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
)

var (
	ErrNoPlayers       = errors.New("game needs at least one player")
	ErrDuplicatePlayer = errors.New("duplicate player id")
)

// State is the lifecycle state of a game
type State int

const (
	InProgress State = iota
	Done
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "IN_PROGRESS"
	case Done:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of a finished game
type Result struct {
	Ranks    map[int]int // rank -> player id
	Rounds   int
	Attempts []int // rounds played, indexed by alive count
	Matches  []int // correct guesses, indexed by alive count
}

// RankOf returns the rank the player finished with, or 0 if unknown
func (r Result) RankOf(playerID int) int {
	for rank, id := range r.Ranks {
		if id == playerID {
			return rank
		}
	}
	return 0
}

// Order returns player ids from 1st to last
func (r Result) Order() []int {
	order := make([]int, len(r.Ranks))
	for rank, id := range r.Ranks {
		order[rank-1] = id
	}
	return order
}

// Option configures a Game
type Option func(*Game)

// WithLogger logs each round at debug level
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithObserver calls fn after every round
func WithObserver(fn func(RoundResult)) Option {
	return func(g *Game) {
		g.observer = fn
	}
}

// Game drives rounds until one player remains
type Game struct {
	players  []*Player
	alive    []*Player
	turn     int
	nextRank int
	state    State
	ranks    map[int]int
	rounds   int
	attempts []int
	matches  []int

	src      hand.Source
	logger   *log.Logger
	observer func(RoundResult)
}

// NewGame starts a game over players. Players keep their identity across
// games; their per-round state is reset here.
func NewGame(players []*Player, src hand.Source, opts ...Option) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
		p.Reset()
	}

	g := &Game{
		players:  players,
		alive:    slices.Clone(players),
		nextRank: 1,
		state:    InProgress,
		ranks:    make(map[int]int, len(players)),
		attempts: make([]int, len(players)+1),
		matches:  make([]int, len(players)+1),
		src:      src,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.checkDone()
	return g, nil
}

// State returns the current lifecycle state
func (g *Game) State() State { return g.state }

// IsDone reports whether a single player remains
func (g *Game) IsDone() bool { return g.state == Done }

// Alive returns the alive players in turn order
func (g *Game) Alive() []*Player { return slices.Clone(g.alive) }

// Turn returns the index into Alive of the next guesser
func (g *Game) Turn() int { return g.turn }

// NextRank returns the rank the next correct guess will earn
func (g *Game) NextRank() int { return g.nextRank }

// Step plays one round. It returns false without doing anything once the
// game is done.
func (g *Game) Step() (RoundResult, bool) {
	if g.state == Done {
		return RoundResult{}, false
	}

	g.rounds++
	r := resolveRound(g.alive, g.turn, g.src)
	r.Round = g.rounds
	g.attempts[r.Alive]++

	if r.Matched {
		g.matches[r.Alive]++
		r.Rank = g.nextRank
		g.ranks[g.nextRank] = r.GuesserID
		g.nextRank++
		g.alive = slices.Delete(g.alive, g.turn, g.turn+1)
		g.turn = g.turn % len(g.alive)
	} else {
		g.turn = (g.turn + 1) % len(g.alive)
	}

	g.logger.Debug("Round played",
		"round", r.Round,
		"guesser", r.GuesserID,
		"alive", r.Alive,
		"sum", r.TrueSum,
		"guess", r.Guess,
		"matched", r.Matched)

	g.checkDone()
	if g.observer != nil {
		g.observer(r)
	}
	return r, true
}

// Play steps until the game is done or ctx is cancelled
func (g *Game) Play(ctx context.Context) (Result, error) {
	for !g.IsDone() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		g.Step()
	}
	return g.Result(), nil
}

// Result returns the ranks awarded so far
func (g *Game) Result() Result {
	ranks := make(map[int]int, len(g.ranks))
	for rank, id := range g.ranks {
		ranks[rank] = id
	}
	return Result{
		Ranks:    ranks,
		Rounds:   g.rounds,
		Attempts: slices.Clone(g.attempts),
		Matches:  slices.Clone(g.matches),
	}
}

// checkDone awards last place to a sole survivor
func (g *Game) checkDone() {
	if g.state == Done || len(g.alive) != 1 {
		return
	}
	last := g.alive[0]
	g.ranks[len(g.players)] = last.ID
	g.state = Done
	g.logger.Debug("Game finished", "rounds", g.rounds, "last", last.ID)
}
