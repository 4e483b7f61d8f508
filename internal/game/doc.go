// Package game implements the elimination guessing game.
//
// Every round each alive player draws a hand and the player whose turn it is
// guesses the total of all alive hands. The guess is the guesser's own hand
// plus one fresh draw standing in for each other alive player. A correct
// guess takes the guesser out of the game with the best rank still
// available; the first player out finishes 1st. The last player left
// finishes last.
//
// # Basic Usage
//
//	players := game.NewPlayers(5)
//	src := hand.NewSource(hand.Default(), randutil.New(42))
//	g, err := game.NewGame(players, src)
//	if err != nil {
//	    return err
//	}
//	result, err := g.Play(ctx)
//	// result.Ranks[1] is the id of the player who finished 1st
//
// # Stepping
//
// Step plays a single round and reports what happened, which is what the
// trace command uses:
//
//	for {
//	    r, ok := g.Step()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(r.GuesserID, r.Guess, r.TrueSum)
//	}
//
// # Turn Order
//
// After a miss the turn passes to the next alive player. After a correct
// guess the guesser is removed and the turn index is reduced modulo the new
// alive count, so the player who sat after the guesser goes next unless the
// guesser was last in the order, in which case the turn wraps to the front.
//
// Players are reusable across games. Rank counts are kept outside the game
// in a statistics.Tally so that concurrent games never share mutable state.
package game
