package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/vvka-141/tripload/internal/tui"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// statusWidth is reserved next to the bar for the row counter.
const statusWidth = 32

// BarReporter redraws a single progress line on a terminal. The bar tracks
// the share of the compressed source consumed, which is the only measure
// known before the last batch.
type BarReporter struct {
	out   io.Writer
	bar   progress.Model
	start time.Time
	drawn bool
}

// NewBarReporter creates a bar sized to a terminal of the given width.
func NewBarReporter(out io.Writer, width int) *BarReporter {
	barWidth := width - statusWidth
	if barWidth < 10 {
		barWidth = 10
	}
	return &BarReporter{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		start: time.Now(),
	}
}

func (r *BarReporter) Report(p tripload.Progress) {
	f := p.Fraction()
	status := tui.LabelStyle.Render(fmt.Sprintf("%d rows", p.TotalRows))

	var line string
	if f >= 0 {
		line = r.bar.ViewAs(f) + " " + status
	} else {
		line = tui.TitleStyle.Render(fmt.Sprintf("chunk %d", p.BatchIndex+1)) + " " + status
	}

	fmt.Fprintf(r.out, "\r%s", line)
	r.drawn = true
}

func (r *BarReporter) Done(res tripload.Result) {
	if r.drawn {
		fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", r.bar.Width+statusWidth))
	}
	fmt.Fprintln(r.out, tui.SuccessStyle.Render(fmt.Sprintf("%s Loaded %d rows into %s in %d chunks (%s)",
		tui.SymbolCheck, res.Rows, res.Table, res.Batches, res.Duration.Round(time.Millisecond))))
}
