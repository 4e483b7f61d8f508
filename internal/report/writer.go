package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnGap separates table columns
const columnGap = "  "

type styles struct {
	header  lipgloss.Style
	player  lipgloss.Style
	count   lipgloss.Style
	percent lipgloss.Style
	warn    lipgloss.Style
	plain   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		player: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")),
		count: r.NewStyle().
			Foreground(lipgloss.Color("10")),
		percent: r.NewStyle().
			Foreground(lipgloss.Color("12")),
		warn: r.NewStyle().
			Foreground(lipgloss.Color("9")),
		plain: r.NewStyle(),
	}
}

// cell is one table entry. Widths are measured on text, before styling.
type cell struct {
	text  string
	style lipgloss.Style
}

// writeGrid writes rows with every column right aligned to its widest cell
func (r *Reporter) writeGrid(rows [][]cell) error {
	var widths []int
	for _, row := range rows {
		for i, c := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c.text))
		}
	}

	for _, row := range rows {
		parts := make([]string, len(row))
		for i, c := range row {
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(c.text))
			parts[i] = pad + c.style.Render(c.text)
		}
		if _, err := fmt.Fprintln(r.writer, strings.Join(parts, columnGap)); err != nil {
			return err
		}
	}
	return nil
}

// rankHeader is the player/1st Place/... heading row
func (r *Reporter) rankHeader(players int) []cell {
	row := []cell{{"player", r.styles.header}}
	for rank := 1; rank <= players; rank++ {
		row = append(row, cell{Ordinal(rank), r.styles.header})
	}
	return row
}

// Write outputs the report in the named format: table, json or csv
func (r *Reporter) Write(report *Report, format string) error {
	switch format {
	case "table", "":
		return r.WriteTable(report)
	case "json":
		return r.WriteJSON(report)
	case "csv":
		return r.WriteCSV(report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteJSON outputs the report as JSON
func (r *Reporter) WriteJSON(report *Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// WriteCSV outputs the rank count table, one row per player
func (r *Reporter) WriteCSV(report *Report) error {
	w := csv.NewWriter(r.writer)

	header := []string{"player"}
	for rank := 1; rank <= report.Config.Players; rank++ {
		header = append(header, Ordinal(rank))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range report.Players {
		record := []string{strconv.Itoa(row.PlayerID)}
		for _, c := range row.Counts {
			record = append(record, strconv.Itoa(c))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteTable outputs a human-readable summary
func (r *Reporter) WriteTable(report *Report) error {
	s := r.styles
	players := report.Config.Players

	fmt.Fprintf(r.writer, "%s\n\n", s.header.Render(fmt.Sprintf(
		"%d games, %d players, hands %s, seed %d",
		report.Config.Games, players, formatValues(report.Config.HandValues), report.Config.Seed)))

	// Counts
	rows := [][]cell{r.rankHeader(players)}
	for _, pr := range report.Players {
		row := []cell{{strconv.Itoa(pr.PlayerID), s.player}}
		for _, c := range pr.Counts {
			row = append(row, cell{strconv.Itoa(c), s.count})
		}
		rows = append(rows, row)
	}
	if err := r.writeGrid(rows); err != nil {
		return err
	}
	fmt.Fprintln(r.writer)

	// Probabilities with 95% interval half widths
	rows = [][]cell{r.rankHeader(players)}
	for _, pr := range report.Players {
		row := []cell{{strconv.Itoa(pr.PlayerID), s.player}}
		for i, p := range pr.Probabilities {
			margin := math.Max(p-pr.CI95Low[i], pr.CI95High[i]-p)
			row = append(row, cell{fmt.Sprintf("%.1f%% ±%.1f", p*100, margin*100), s.percent})
		}
		rows = append(rows, row)
	}
	if err := r.writeGrid(rows); err != nil {
		return err
	}
	fmt.Fprintln(r.writer)

	fmt.Fprintf(r.writer, "Rounds per game: %.2f mean, %.2f std dev, %d max\n",
		report.Rounds.Mean, report.Rounds.StdDev, report.Rounds.Max)

	if len(report.MatchRates) > 0 {
		fmt.Fprintln(r.writer)
		rows = [][]cell{{
			{"alive", s.header},
			{"rounds", s.header},
			{"observed", s.header},
			{"exact", s.header},
			{"z", s.header},
		}}
		for _, mr := range report.MatchRates {
			zStyle := s.plain
			if math.Abs(mr.ZScore) > anomalyZ {
				zStyle = s.warn
			}
			rows = append(rows, []cell{
				{strconv.Itoa(mr.Alive), s.plain},
				{strconv.Itoa(mr.Rounds), s.plain},
				{fmt.Sprintf("%.4f", mr.Observed), s.plain},
				{fmt.Sprintf("%.4f", mr.Exact), s.plain},
				{fmt.Sprintf("%+.2f", mr.ZScore), zStyle},
			})
		}
		if err := r.writeGrid(rows); err != nil {
			return err
		}
	}

	if len(report.SeatFairness) > 0 {
		fmt.Fprintln(r.writer)
		parts := make([]string, 0, len(report.SeatFairness))
		for _, f := range report.SeatFairness {
			parts = append(parts, fmt.Sprintf("%s p=%.3g", Ordinal(f.Rank), f.PValue))
		}
		fmt.Fprintf(r.writer, "Seat fairness (chi-square): %s\n", strings.Join(parts, ", "))
	}

	_, err := fmt.Fprintf(r.writer, "\n%d games in %.2fs (%.0f games/sec)\n",
		report.Config.Games, report.Metadata.DurationSeconds, report.Metadata.GamesPerSecond)
	return err
}

func formatValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
