package game

import (
	"errors"
	"fmt"

	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
)

// ErrGuessBeforeDraw is the panic value when a player guesses before drawing
// a hand for the round.
var ErrGuessBeforeDraw = errors.New("player must draw a hand before guessing")

// Player represents a seat in the game
type Player struct {
	ID    int
	Hand  int // Hand drawn for the current round
	Guess int // Estimate of the alive total, set when this player guesses

	drawn bool
}

// NewPlayer creates a player with the given id
func NewPlayer(id int) *Player {
	return &Player{ID: id}
}

// NewPlayers creates players with ids 1..n
func NewPlayers(n int) []*Player {
	players := make([]*Player, n)
	for i := range players {
		players[i] = NewPlayer(i + 1)
	}
	return players
}

// DrawHand draws the player's hand for this round
func (p *Player) DrawHand(src hand.Source) int {
	p.Hand = src.Draw()
	p.drawn = true
	return p.Hand
}

// FormGuess estimates the total of all alive hands: the player's own hand plus
// an independent draw for each of the other aliveCount-1 players.
func (p *Player) FormGuess(src hand.Source, aliveCount int) int {
	if !p.drawn {
		panic(ErrGuessBeforeDraw)
	}
	guess := p.Hand
	for i := 0; i < aliveCount-1; i++ {
		guess += src.Draw()
	}
	p.Guess = guess
	return guess
}

// Reset clears per-round state before a new game
func (p *Player) Reset() {
	p.Hand = 0
	p.Guess = 0
	p.drawn = false
}

func (p *Player) String() string {
	return fmt.Sprintf("P%d", p.ID)
}
