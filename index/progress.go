package index

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Progress reports how many items of a known total are done.
// It is safe for concurrent use.
type Progress struct {
	w        io.Writer
	label    string
	total    int
	every    int
	done     int
	reported int
	start    time.Time
	finished bool
	mu       sync.Mutex
}

// NewProgress starts a progress report for total items, written to w every
// time at least every items have completed since the last report.
// A nil writer discards output.
func NewProgress(w io.Writer, label string, total, every int) *Progress {
	if w == nil {
		w = io.Discard
	}
	if every < 1 {
		every = 1
	}
	return &Progress{
		w:     w,
		label: label,
		total: total,
		every: every,
		start: time.Now(),
	}
}

// Add records n more completed items.
func (p *Progress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.done = min(p.done+n, p.total)
	if p.done-p.reported >= p.every {
		p.report()
		p.reported = p.done
	}
}

// Done returns the number of completed items.
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish writes the final line. Later calls to Add are ignored.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true
	p.report()
	fmt.Fprintln(p.w)
}

// Elapsed returns the time since the report started.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.start)
}

// report must be called with the lock held.
func (p *Progress) report() {
	percent := 100.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total) * 100.0
	}
	rate := 0.0
	if secs := time.Since(p.start).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	fmt.Fprintf(p.w, "\r%s: %d/%d (%.1f%%) - %.1f items/s", p.label, p.done, p.total, percent, rate)
}
