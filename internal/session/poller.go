package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// poller re-evaluates a condition on a fixed interval. It deliberately
// polls instead of arming one deadline timer: every tick decides from
// absolute wall-clock time, so ticks lost to a suspended process are
// harmless.
type poller struct {
	name     string
	interval time.Duration
	tick     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newPoller(name string, interval time.Duration, tick func(ctx context.Context)) *poller {
	return &poller{name: name, interval: interval, tick: tick}
}

// start runs the tick immediately and then on every interval until stop.
// Starting an already-running poller first cancels the existing interval
// so exactly one is ever active.
func (p *poller) start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	go p.run(ctx)
}

func (p *poller) run(ctx context.Context) {
	p.safeTick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.safeTick(ctx)
		}
	}
}

// safeTick never lets a tick propagate a failure; a broken evaluation
// is treated as "nothing expired" until the next tick.
func (p *poller) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[POLLER] %s tick panic recovered: %v", p.name, r)
		}
	}()
	p.tick(ctx)
}

func (p *poller) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *poller) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
