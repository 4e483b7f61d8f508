package statistics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrRankOutOfRange   = errors.New("rank out of range")
	ErrPlayerOutOfRange = errors.New("player id out of range")
	ErrShapeMismatch    = errors.New("tallies have different player counts")
)

// GameResult is the outcome of one game as seen by the tally
type GameResult struct {
	Ranks    map[int]int // rank -> player id
	Rounds   int
	Attempts []int // rounds played, indexed by alive count
	Matches  []int // correct guesses, indexed by alive count
}

// Tally counts how often each player finished in each rank across many games
type Tally struct {
	Players int
	Games   int
	Counts  [][]int // Counts[id-1][rank-1]

	// Game length
	SumRounds  int
	SumRounds2 float64 // Sum of squares for variance calculation
	MaxRounds  int

	// Guess accuracy by alive count, index 0 and 1 unused
	Attempts []int
	Matches  []int
}

// NewTally creates an empty tally for players seats with ranks 1..players
func NewTally(players int) *Tally {
	counts := make([][]int, players)
	for i := range counts {
		counts[i] = make([]int, players)
	}
	return &Tally{
		Players:  players,
		Counts:   counts,
		Attempts: make([]int, players+1),
		Matches:  make([]int, players+1),
	}
}

// RecordRank counts one finish in rank for the player
func (t *Tally) RecordRank(playerID, rank int) error {
	if playerID < 1 || playerID > t.Players {
		return fmt.Errorf("%w: %d", ErrPlayerOutOfRange, playerID)
	}
	if rank < 1 || rank > t.Players {
		return fmt.Errorf("%w: %d", ErrRankOutOfRange, rank)
	}
	t.Counts[playerID-1][rank-1]++
	return nil
}

// Add incorporates a finished game
func (t *Tally) Add(result GameResult) error {
	if len(result.Ranks) != t.Players {
		return fmt.Errorf("game awarded %d ranks, want %d", len(result.Ranks), t.Players)
	}
	for rank, id := range result.Ranks {
		if err := t.RecordRank(id, rank); err != nil {
			return err
		}
	}

	t.Games++
	t.SumRounds += result.Rounds
	t.SumRounds2 += float64(result.Rounds) * float64(result.Rounds)
	if result.Rounds > t.MaxRounds {
		t.MaxRounds = result.Rounds
	}

	for alive := range result.Attempts {
		if alive < len(t.Attempts) {
			t.Attempts[alive] += result.Attempts[alive]
		}
	}
	for alive := range result.Matches {
		if alive < len(t.Matches) {
			t.Matches[alive] += result.Matches[alive]
		}
	}
	return nil
}

// Merge folds other into t
func (t *Tally) Merge(other *Tally) error {
	if other.Players != t.Players {
		return fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, t.Players, other.Players)
	}
	for i := range t.Counts {
		for j := range t.Counts[i] {
			t.Counts[i][j] += other.Counts[i][j]
		}
	}
	t.Games += other.Games
	t.SumRounds += other.SumRounds
	t.SumRounds2 += other.SumRounds2
	t.MaxRounds = max(t.MaxRounds, other.MaxRounds)
	for i := range t.Attempts {
		t.Attempts[i] += other.Attempts[i]
		t.Matches[i] += other.Matches[i]
	}
	return nil
}

// Count returns how many games the player finished in rank
func (t *Tally) Count(playerID, rank int) int {
	if playerID < 1 || playerID > t.Players || rank < 1 || rank > t.Players {
		return 0
	}
	return t.Counts[playerID-1][rank-1]
}

// Row returns the player's counts for ranks 1..N
func (t *Tally) Row(playerID int) []int {
	row := make([]int, t.Players)
	if playerID >= 1 && playerID <= t.Players {
		copy(row, t.Counts[playerID-1])
	}
	return row
}

// Column returns every player's count for rank, ordered by player id
func (t *Tally) Column(rank int) []int {
	col := make([]int, t.Players)
	for i := range col {
		col[i] = t.Count(i+1, rank)
	}
	return col
}

// Probability returns the observed frequency of the player finishing in rank
func (t *Tally) Probability(playerID, rank int) float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Count(playerID, rank)) / float64(t.Games)
}

// StdError returns the standard error of Probability
func (t *Tally) StdError(playerID, rank int) float64 {
	if t.Games == 0 {
		return 0
	}
	p := t.Probability(playerID, rank)
	return math.Sqrt(p * (1 - p) / float64(t.Games))
}

// ConfidenceInterval95 returns the normal approximation 95% interval for Probability
func (t *Tally) ConfidenceInterval95(playerID, rank int) (float64, float64) {
	p := t.Probability(playerID, rank)
	margin := 1.96 * t.StdError(playerID, rank)
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// MeanRounds returns the average number of rounds per game
func (t *Tally) MeanRounds() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.SumRounds) / float64(t.Games)
}

// RoundsStdDev returns the sample standard deviation of rounds per game
func (t *Tally) RoundsStdDev() float64 {
	if t.Games < 2 {
		return 0
	}
	mean := t.MeanRounds()
	v := (t.SumRounds2 - float64(t.Games)*mean*mean) / float64(t.Games-1)
	return math.Sqrt(math.Max(0, v))
}

// MatchRate returns the observed fraction of correct guesses with alive
// players left, and how many rounds that is based on
func (t *Tally) MatchRate(alive int) (float64, int) {
	if alive < 0 || alive >= len(t.Attempts) || t.Attempts[alive] == 0 {
		return 0, 0
	}
	return float64(t.Matches[alive]) / float64(t.Attempts[alive]), t.Attempts[alive]
}

// Validate checks that the tally is internally consistent
func (t *Tally) Validate() error {
	if t.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", t.Games)
	}

	for id := 1; id <= t.Players; id++ {
		sum := 0
		for _, c := range t.Counts[id-1] {
			sum += c
		}
		if sum != t.Games {
			return fmt.Errorf("player %d finished %d times in %d games", id, sum, t.Games)
		}
	}

	for rank := 1; rank <= t.Players; rank++ {
		sum := 0
		for _, c := range t.Column(rank) {
			sum += c
		}
		if sum != t.Games {
			return fmt.Errorf("rank %d awarded %d times in %d games", rank, sum, t.Games)
		}
	}

	attempts, matches := 0, 0
	for i := range t.Attempts {
		attempts += t.Attempts[i]
		matches += t.Matches[i]
	}
	if attempts != t.SumRounds {
		return fmt.Errorf("attempts (%d) do not match rounds played (%d)", attempts, t.SumRounds)
	}
	if want := t.Games * (t.Players - 1); matches != want {
		return fmt.Errorf("correct guesses (%d) do not match eliminations (%d)", matches, want)
	}

	return nil
}
