package game

import "github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"

// RoundResult describes one played round
type RoundResult struct {
	Round     int   // 1-based round number within the game
	GuesserID int   // Player who guessed
	Alive     int   // Alive players when the round started
	Hands     []int // Hands drawn, in alive order
	TrueSum   int
	Guess     int
	Matched   bool
	Rank      int // Rank awarded to the guesser, 0 on a miss
}

// resolveRound draws hands for every alive player and checks the guess of
// alive[turn] against the true total. It does not change the roster.
func resolveRound(alive []*Player, turn int, src hand.Source) RoundResult {
	guesser := alive[turn]

	hands := make([]int, len(alive))
	trueSum := 0
	for i, p := range alive {
		hands[i] = p.DrawHand(src)
		trueSum += hands[i]
	}

	guess := guesser.FormGuess(src, len(alive))

	return RoundResult{
		GuesserID: guesser.ID,
		Alive:     len(alive),
		Hands:     hands,
		TrueSum:   trueSum,
		Guess:     guess,
		Matched:   guess == trueSum,
	}
}
