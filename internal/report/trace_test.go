package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/game"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRound(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, nil)

	require.NoError(t, r.WriteRound(game.RoundResult{
		Round: 3, GuesserID: 2, Alive: 3, Hands: []int{5, 0, 5}, TrueSum: 10, Guess: 15,
	}))
	require.NoError(t, r.WriteRound(game.RoundResult{
		Round: 4, GuesserID: 3, Alive: 3, Hands: []int{0, 0, 5}, TrueSum: 5, Guess: 5, Matched: true, Rank: 1,
	}))

	out := buf.String()
	assert.Contains(t, out, "round   3")
	assert.Contains(t, out, "P2")
	assert.Contains(t, out, "hands [5 0 5] = 10")
	assert.Contains(t, out, "miss")
	assert.Contains(t, out, "out in 1st Place")
}

func TestWriteFinish(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, nil).WriteFinish(game.Result{
		Ranks:  map[int]int{1: 3, 2: 1, 3: 2},
		Rounds: 7,
	}))

	out := buf.String()
	assert.Contains(t, out, "Finished after 7 rounds")
	assert.Regexp(t, `1st Place\s+P3`, out)
	assert.Regexp(t, `3rd Place\s+P2`, out)
}

func TestWriteOdds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, nil).WriteOdds(hand.Default(), 5))

	out := buf.String()
	assert.Contains(t, out, "hands {0, 5}, 5 players")
	assert.Contains(t, out, "27.34%")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, "2.00")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteFinishReturnsWriteErrors(t *testing.T) {
	r := NewReporter(failingWriter{}, nil)
	assert.Error(t, r.WriteFinish(game.Result{Ranks: map[int]int{1: 1}}))
	assert.Error(t, r.WriteFinish(game.Result{}), "header write must fail even with no standings")
}
