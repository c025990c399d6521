package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Progress renders a single-line progress bar for case evaluation.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.RWMutex
	enabled   bool
}

// NewProgress creates a progress tracker writing to stderr.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records the latest counters and redraws the line when enabled.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed, p.total, p.failed = completed, total, failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns a ProgressFunc suitable for use with Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

func (p *Progress) snapshot() (completed, total, failed int, elapsed time.Duration) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.completed, p.total, p.failed, time.Since(p.startTime)
}

// Print writes the current progress line.
func (p *Progress) Print() {
	completed, total, failed, elapsed := p.snapshot()

	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(completed) / s
	}

	filled := 0
	if total > 0 {
		filled = completed * barWidth / total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	var b strings.Builder
	fmt.Fprintf(&b, "\r[%s] %d/%d cases", bar, completed, total)
	if failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", failed)
	}
	fmt.Fprintf(&b, " - %.1f cases/sec", rate)
	if completed == total {
		fmt.Fprintf(&b, " - done in %s", formatDuration(elapsed))
	}
	b.WriteString("          ")

	fmt.Fprint(p.output, b.String())
}

// Done prints the final progress and a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary returns a one-line summary of the completed work.
func (p *Progress) Summary() string {
	completed, total, failed, elapsed := p.snapshot()
	return fmt.Sprintf("Evaluated %d/%d cases (%d failed) in %s",
		completed-failed, total, failed, formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
