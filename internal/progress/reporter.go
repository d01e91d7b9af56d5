package progress

import (
	"os"
	"sync"
	"time"

	"github.com/vvka-141/tripload/internal/tui"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// NewReporter returns a BarReporter on an interactive stderr and a
// LogReporter otherwise.
func NewReporter(logger tripload.Logger) tripload.ProgressReporter {
	if tui.IsInteractive() {
		return NewBarReporter(os.Stderr, tui.TerminalWidth(os.Stderr, 80))
	}
	return NewLogReporter(logger)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Report(tripload.Progress) {}
func (Nop) Done(tripload.Result)     {}

// LogReporter writes one line per appended batch.
type LogReporter struct {
	logger tripload.Logger
	now    func() time.Time
	last   time.Time
}

// NewLogReporter creates a reporter writing through logger.
func NewLogReporter(logger tripload.Logger) *LogReporter {
	return &LogReporter{logger: logger, now: time.Now}
}

func (r *LogReporter) Report(p tripload.Progress) {
	now := r.now()
	elapsed := ""
	if !r.last.IsZero() {
		elapsed = ", took " + now.Sub(r.last).Round(time.Millisecond).String()
	}
	r.last = now

	if f := p.Fraction(); f >= 0 {
		r.logger.Info("Inserted chunk %d into %s: %d rows (%d total, %.0f%% of source%s)",
			p.BatchIndex+1, p.Table, p.BatchRows, p.TotalRows, f*100, elapsed)
		return
	}
	r.logger.Info("Inserted chunk %d into %s: %d rows (%d total%s)",
		p.BatchIndex+1, p.Table, p.BatchRows, p.TotalRows, elapsed)
}

func (r *LogReporter) Done(res tripload.Result) {
	r.logger.Info("Loaded %d rows into %s in %d chunks (%s)",
		res.Rows, res.Table, res.Batches, res.Duration.Round(time.Millisecond))
}

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []tripload.Progress
	result *tripload.Result
}

func (r *Recorder) Report(p tripload.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
}

func (r *Recorder) Done(res tripload.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = &res
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []tripload.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tripload.Progress(nil), r.events...)
}

// Result returns the final result, or nil if Done was never called.
func (r *Recorder) Result() *tripload.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

var (
	_ tripload.ProgressReporter = Nop{}
	_ tripload.ProgressReporter = (*LogReporter)(nil)
	_ tripload.ProgressReporter = (*Recorder)(nil)
	_ tripload.ProgressReporter = (*BarReporter)(nil)
)
