package monitoring

import (
	"sync"
	"time"
)

// Progress logs scan completion at fixed percentage steps. It is safe for
// concurrent use and is meant to be passed as a scanner progress callback.
type Progress struct {
	label string
	step  int

	mu       sync.Mutex
	nextPct  int
	started  time.Time
	finished bool
}

// NewProgress returns a reporter that logs every stepPct percent. A step of
// zero or less disables intermediate lines; completion is always logged.
func NewProgress(label string, stepPct int) *Progress {
	if stepPct <= 0 || stepPct > 100 {
		stepPct = 100
	}
	return &Progress{label: label, step: stepPct, nextPct: stepPct, started: time.Now()}
}

// Update records that done of total units are complete.
func (p *Progress) Update(done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished || pct < p.nextPct {
		return
	}
	for p.nextPct <= pct {
		p.nextPct += p.step
	}
	if done >= total {
		p.finished = true
		Logf("%s: 100%% (%d/%d) in %s", p.label, done, total, time.Since(p.started).Round(time.Millisecond))
		return
	}
	Logf("%s: %d%% (%d/%d)", p.label, pct, done, total)
}
