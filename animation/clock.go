package animation

import (
	"context"
	"time"
)

// Clock provides time for animations. Tests inject a fake clock to control
// timing deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Timer fires a callback at a fixed interval once started. A Scheduler starts
// its timer at most once.
type Timer interface {
	Start(interval time.Duration, fire func())
}

// TickerTimer drives a Scheduler from a time.Ticker until its context is
// cancelled.
type TickerTimer struct {
	ctx context.Context
}

// NewTickerTimer creates a TickerTimer bound to ctx.
func NewTickerTimer(ctx context.Context) *TickerTimer {
	t := new(TickerTimer)
	t.ctx = ctx
	return t
}

// Start launches the ticker goroutine.
func (t *TickerTimer) Start(interval time.Duration, fire func()) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fire()
			case <-t.ctx.Done():
				return
			}
		}
	}()
}
