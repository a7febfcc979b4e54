package preview

import (
	"context"
	"sync"
	"time"
)

// DebouncerConfig bounds how change bursts coalesce into rebuilds.
type DebouncerConfig struct {
	// QuietWindow is the silence required after the last change before a
	// rebuild fires.
	QuietWindow time.Duration
	// MaxDelay caps how long a steady stream of changes can postpone the
	// rebuild.
	MaxDelay time.Duration
}

// Debouncer coalesces bursts of file change notifications into single
// rebuild triggers. Saving a file in most editors produces several events
// in quick succession; one rebuild covers them all.
//
// It is safe to run as a single goroutine with Notify called from others.
type Debouncer struct {
	cfg     DebouncerConfig
	changes chan struct{}

	mu      sync.Mutex
	pending bool
}

// NewDebouncer creates a debouncer. Zero durations get sane defaults.
func NewDebouncer(cfg DebouncerConfig) *Debouncer {
	if cfg.QuietWindow <= 0 {
		cfg.QuietWindow = 300 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 2 * time.Second
	}
	return &Debouncer{cfg: cfg, changes: make(chan struct{}, 64)}
}

// Notify records one change. Never blocks; a full channel means a trigger
// is already queued.
func (d *Debouncer) Notify() {
	select {
	case d.changes <- struct{}{}:
	default:
	}
}

// Run forwards coalesced triggers to out until ctx is canceled. The reason
// string is "quiet" or "max_delay".
func (d *Debouncer) Run(ctx context.Context, out chan<- string) {
	quietTimer := newStoppedTimer()
	maxTimer := newStoppedTimer()

	var quietC, maxC <-chan time.Time

	emit := func(reason string) {
		d.mu.Lock()
		d.pending = false
		d.mu.Unlock()
		quietC = nil
		maxC = nil

		select {
		case out <- reason:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-d.changes:
			d.mu.Lock()
			if !d.pending {
				d.pending = true
				resetTimer(maxTimer, d.cfg.MaxDelay)
				maxC = maxTimer.C
			}
			d.mu.Unlock()

			resetTimer(quietTimer, d.cfg.QuietWindow)
			quietC = quietTimer.C

		case <-quietC:
			emit("quiet")

		case <-maxC:
			emit("max_delay")
		}
	}
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	return t
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}
