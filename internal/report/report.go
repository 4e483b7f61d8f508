// Package report turns a finished tally into tables, JSON and CSV.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/analysis"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/simulator"
	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/statistics"
	"github.com/muesli/termenv"
)

// anomalyZ is the z score beyond which a match rate is logged as suspicious
const anomalyZ = 4.0

// Reporter handles output generation for simulation results
type Reporter struct {
	writer   io.Writer
	logger   *log.Logger
	renderer *lipgloss.Renderer
	styles   styles
}

// Option configures a Reporter
type Option func(*Reporter)

// WithColorProfile overrides the color profile detected from the writer
func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Reporter) {
		r.renderer.SetColorProfile(profile)
	}
}

// NewReporter creates a new reporter instance. Colors follow the writer, so
// files and pipes get plain text.
func NewReporter(writer io.Writer, logger *log.Logger, opts ...Option) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Reporter{
		writer:   writer,
		logger:   logger,
		renderer: lipgloss.NewRenderer(writer),
	}
	r.styles = newStyles(r.renderer)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report is the full result of a simulation run
type Report struct {
	RunID        string         `json:"run_id"`
	Metadata     Metadata       `json:"metadata"`
	Config       Config         `json:"configuration"`
	Players      []PlayerRow    `json:"players"`
	Rounds       RoundStats     `json:"rounds"`
	MatchRates   []MatchRate    `json:"match_rates"`
	SeatFairness []RankFairness `json:"seat_fairness"`
}

// Metadata contains run timing
type Metadata struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	GamesPerSecond  float64   `json:"games_per_second"`
}

// Config echoes the simulation settings
type Config struct {
	Games      int   `json:"games"`
	Players    int   `json:"players"`
	HandValues []int `json:"hand_values"`
	Seed       int64 `json:"seed"`
	Workers    int   `json:"workers"`
}

// PlayerRow holds one player's finishes, index 0 is 1st place
type PlayerRow struct {
	PlayerID      int       `json:"player_id"`
	Counts        []int     `json:"counts"`
	Probabilities []float64 `json:"probabilities"`
	StdErrors     []float64 `json:"std_errors"`
	CI95Low       []float64 `json:"ci95_low"`
	CI95High      []float64 `json:"ci95_high"`
}

// RoundStats summarises game length
type RoundStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Max    int     `json:"max"`
}

// MatchRate compares the observed guess accuracy with the exact value
type MatchRate struct {
	Alive    int     `json:"alive"`
	Rounds   int     `json:"rounds"`
	Matches  int     `json:"matches"`
	Observed float64 `json:"observed"`
	Exact    float64 `json:"exact"`
	ZScore   float64 `json:"z_score"`
}

// RankFairness tests whether a rank is spread evenly across seats
type RankFairness struct {
	Rank      int     `json:"rank"`
	ChiSquare float64 `json:"chi_square"`
	PValue    float64 `json:"p_value"`
}

// GenerateReport builds a report from a validated tally
func (r *Reporter) GenerateReport(tally *statistics.Tally, cfg simulator.Config, startTime, endTime time.Time) (*Report, error) {
	if err := tally.Validate(); err != nil {
		return nil, fmt.Errorf("cannot report on invalid tally: %w", err)
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating run id: %w", err)
	}

	duration := endTime.Sub(startTime)
	gamesPerSecond := 0.0
	if duration > 0 {
		gamesPerSecond = float64(tally.Games) / duration.Seconds()
	}

	report := &Report{
		RunID: runID.String(),
		Metadata: Metadata{
			StartTime:       startTime,
			EndTime:         endTime,
			DurationSeconds: duration.Seconds(),
			GamesPerSecond:  gamesPerSecond,
		},
		Config: Config{
			Games:      cfg.Games,
			Players:    cfg.Players,
			HandValues: cfg.Values.Slice(),
			Seed:       cfg.Seed,
			Workers:    cfg.Workers,
		},
		Rounds: RoundStats{
			Mean:   tally.MeanRounds(),
			StdDev: tally.RoundsStdDev(),
			Max:    tally.MaxRounds,
		},
	}

	for id := 1; id <= tally.Players; id++ {
		row := PlayerRow{PlayerID: id, Counts: tally.Row(id)}
		for rank := 1; rank <= tally.Players; rank++ {
			low, high := tally.ConfidenceInterval95(id, rank)
			row.Probabilities = append(row.Probabilities, tally.Probability(id, rank))
			row.StdErrors = append(row.StdErrors, tally.StdError(id, rank))
			row.CI95Low = append(row.CI95Low, low)
			row.CI95High = append(row.CI95High, high)
		}
		report.Players = append(report.Players, row)
	}

	for alive := tally.Players; alive >= 2; alive-- {
		observed, rounds := tally.MatchRate(alive)
		exact := analysis.MatchProbability(cfg.Values, alive)
		mr := MatchRate{
			Alive:    alive,
			Rounds:   rounds,
			Matches:  tally.Matches[alive],
			Observed: observed,
			Exact:    exact,
			ZScore:   analysis.ZScore(tally.Matches[alive], rounds, exact),
		}
		if math.Abs(mr.ZScore) > anomalyZ {
			r.logger.Warn("Match rate far from exact probability",
				"alive", alive, "observed", observed, "exact", exact, "z", mr.ZScore)
		}
		report.MatchRates = append(report.MatchRates, mr)
	}

	if tally.Players > 1 {
		for rank := 1; rank <= tally.Players; rank++ {
			stat, p := analysis.ChiSquareUniform(tally.Column(rank))
			report.SeatFairness = append(report.SeatFairness, RankFairness{Rank: rank, ChiSquare: stat, PValue: p})
		}
	}

	return report, nil
}

// Ordinal returns the column heading for rank, e.g. "2nd Place"
func Ordinal(rank int) string {
	suffix := "th"
	switch rank % 100 {
	case 11, 12, 13:
	default:
		switch rank % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s Place", rank, suffix)
}
