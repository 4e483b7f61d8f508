// Package progress reports how far a long simulation has got.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
)

// DefaultInterval is how often progress is logged
const DefaultInterval = 2 * time.Second

// Option configures a Tracker
type Option func(*Tracker)

// WithInterval sets the minimum time between progress updates
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// WithBar renders a progress bar to w on every update
func WithBar(w io.Writer, profile termenv.Profile) Option {
	return func(t *Tracker) {
		t.out = w
		t.bar = progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithColorProfile(profile),
		)
	}
}

// Tracker throttles progress reports for a run of games. It is safe for
// concurrent use.
type Tracker struct {
	mu       sync.Mutex
	clock    quartz.Clock
	logger   *log.Logger
	interval time.Duration
	out      io.Writer
	bar      progress.Model
	start    time.Time
	last     time.Time
	highest  int
}

// New creates a tracker. The clock is injectable for tests.
func New(clock quartz.Clock, logger *log.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		clock:    clock,
		logger:   logger,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.start = clock.Now()
	t.last = t.start
	return t
}

// Update records that done of total games have finished. It reports when the
// interval has passed since the last report and always on the final game.
// Workers can call it out of order; counts below the highest seen are ignored.
func (t *Tracker) Update(done, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if done <= t.highest {
		return
	}
	t.highest = done

	now := t.clock.Now()
	final := done >= total
	if !final && now.Sub(t.last) < t.interval {
		return
	}
	t.last = now

	elapsed := now.Sub(t.start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed.Seconds()
	}

	t.logger.Info("Simulation progress",
		"done", done,
		"total", total,
		"games_per_sec", fmt.Sprintf("%.0f", rate))

	if t.out != nil && total > 0 {
		fmt.Fprintf(t.out, "\r%s %d/%d", t.bar.ViewAs(float64(done)/float64(total)), done, total)
		if final {
			fmt.Fprintln(t.out)
		}
	}
}

// Elapsed returns the time since the tracker was created
func (t *Tracker) Elapsed() time.Duration {
	return t.clock.Since(t.start)
}
