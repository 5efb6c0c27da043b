package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MaxETA caps ETA estimates so that a stalled first shard does not produce
// absurd values.
const MaxETA = 24 * time.Hour

// ShardProgress tracks how many of a batch's shards have completed and
// extrapolates the remaining time linearly from the elapsed time.
type ShardProgress struct {
	mu        sync.Mutex
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewShardProgress starts tracking a batch of total shards.
func NewShardProgress(total int) *ShardProgress {
	return &ShardProgress{total: total, startTime: time.Now(), now: time.Now}
}

// Complete records one finished shard and returns the completed fraction
// and the estimated time remaining.
func (p *ShardProgress) Complete() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.fractionLocked(), p.etaLocked()
}

// Fraction returns the completed fraction in [0, 1].
func (p *ShardProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fractionLocked()
}

// ETA returns the current estimate without recording progress.
func (p *ShardProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

// Elapsed returns the time since tracking started.
func (p *ShardProgress) Elapsed() time.Duration {
	return p.now().Sub(p.startTime)
}

// Done returns the number of completed shards.
func (p *ShardProgress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *ShardProgress) fractionLocked() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

func (p *ShardProgress) etaLocked() time.Duration {
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	eta := time.Duration(float64(elapsed) * float64(p.total-p.done) / float64(p.done))
	return min(eta, MaxETA)
}

// FormatETA renders an ETA for display: "calculating..." when unknown,
// "< 1s", then seconds, minutes+seconds, or hours+minutes.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar renders a bar of the given width, clamping progress to [0, 1].
func ProgressBar(progress float64, width int) string {
	progress = max(0, min(progress, 1))
	filled := int(progress * float64(width))
	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA combines the bar, the percentage and the ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), max(0, min(progress, 1))*100, FormatETA(eta))
}

// FormatShardLine renders the per-shard progress line of the batch driver:
// "<pct>% done, <elapsed>s since start".
func FormatShardLine(done, total int, elapsed time.Duration) string {
	pct := 0
	if total > 0 {
		pct = 100 * done / total
	}
	return fmt.Sprintf("%d%% done, %.1fs since start", pct, elapsed.Seconds())
}
