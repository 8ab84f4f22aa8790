package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// progressBar renders pipeline progress on a single terminal line. It is
// redrawn only when the whole percentage changes.
type progressBar struct {
	w       io.Writer
	bar     progress.Model
	enabled bool
	last    int
}

func newProgressBar(w io.Writer, enabled bool) *progressBar {
	return &progressBar{
		w:       w,
		bar:     progress.New(progress.WithGradient("#00FF99", "#00CCFF"), progress.WithWidth(40)),
		enabled: enabled,
		last:    -1,
	}
}

// Update is an engine.ProgressFunc.
func (p *progressBar) Update(fraction float64) {
	if !p.enabled {
		return
	}
	pct := int(fraction * 100)
	if pct == p.last {
		return
	}
	p.last = pct
	fmt.Fprintf(p.w, "\r%s", p.bar.ViewAs(fraction))
}

// Finish ends the progress line.
func (p *progressBar) Finish() {
	if p.enabled && p.last >= 0 {
		fmt.Fprintln(p.w)
	}
}
