package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/analysis"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/game"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
)

// WriteRound prints one line describing a played round
func (r *Reporter) WriteRound(rr game.RoundResult) error {
	hands := make([]string, len(rr.Hands))
	for i, h := range rr.Hands {
		hands[i] = strconv.Itoa(h)
	}

	outcome := "miss"
	if rr.Matched {
		outcome = r.styles.count.Render(fmt.Sprintf("out in %s", Ordinal(rr.Rank)))
	}

	_, err := fmt.Fprintf(r.writer, "round %3d  %s guesses %2d  hands [%s] = %2d  %s\n",
		rr.Round,
		r.styles.player.Render(fmt.Sprintf("P%d", rr.GuesserID)),
		rr.Guess,
		strings.Join(hands, " "),
		rr.TrueSum,
		outcome)
	return err
}

// WriteFinish prints the final standings of a traced game
func (r *Reporter) WriteFinish(result game.Result) error {
	header := r.styles.header.Render(fmt.Sprintf("Finished after %d rounds", result.Rounds))
	if _, err := fmt.Fprintf(r.writer, "\n%s\n", header); err != nil {
		return err
	}
	for rank, id := range result.Order() {
		if _, err := fmt.Fprintf(r.writer, "  %-10s P%d\n", Ordinal(rank+1), id); err != nil {
			return err
		}
	}
	return nil
}

// WriteOdds prints the exact chance of a correct guess at every alive count
func (r *Reporter) WriteOdds(values hand.Values, players int) error {
	s := r.styles
	title := s.header.Render(fmt.Sprintf("hands %s, %d players", values, players))
	if _, err := fmt.Fprintf(r.writer, "%s\n\n", title); err != nil {
		return err
	}

	rows := [][]cell{{
		{"alive", s.header},
		{"p(match)", s.header},
		{"rounds/elim", s.header},
		{"totals", s.header},
	}}
	for alive := players; alive >= 2; alive-- {
		p := analysis.MatchProbability(values, alive)
		rows = append(rows, []cell{
			{strconv.Itoa(alive), s.plain},
			{fmt.Sprintf("%.2f%%", p*100), s.percent},
			{fmt.Sprintf("%.2f", analysis.ExpectedRounds(values, alive)), s.plain},
			{strconv.Itoa(len(analysis.Support(values, alive))), s.plain},
		})
	}
	return r.writeGrid(rows)
}
