// Package reachability detects whether the backing data store currently
// responds to a lightweight probe, so the platform can show one blocking
// "server down" state instead of letting every feature fail on its own.
package reachability

import (
	"context"
	"log"
	"sync"
	"time"
)

// State of the monitor. Transitions are driven only by probe outcomes
// and host connectivity events; no other component writes it.
type State int

const (
	StateUnknown State = iota
	StateReachable
	StateUnreachable
)

func (s State) String() string {
	switch s {
	case StateReachable:
		return "reachable"
	case StateUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Prober performs one lightweight read against the backend.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// Monitor runs the probe immediately on Start and then on a fixed
// interval until Stop. A probe already in flight makes further probe
// requests no-ops (skipped, not queued).
type Monitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration

	mu          sync.Mutex
	state       State
	lastChecked time.Time
	inFlight    bool
	cancel      context.CancelFunc
}

func NewMonitor(prober Prober, interval, timeout time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Monitor{
		prober:   prober,
		interval: interval,
		timeout:  timeout,
		state:    StateUnknown,
	}
}

// Start begins periodic monitoring. Calling Start on a running monitor
// cancels the previous interval first, so exactly one is ever active.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// Stop cancels the periodic interval. The monitor keeps its last state.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Refresh is the manual one-shot probe behind the "Retry" action.
func (m *Monitor) Refresh(ctx context.Context) {
	m.probe(ctx)
}

// HandleOnline mirrors a host "connection restored" event: probe now
// rather than waiting for the next tick.
func (m *Monitor) HandleOnline(ctx context.Context) {
	m.probe(ctx)
}

// HandleOffline mirrors a host "connection lost" event: flip to
// unreachable immediately.
func (m *Monitor) HandleOffline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnreachable
	m.lastChecked = time.Now()
}

func (m *Monitor) probe(ctx context.Context) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return
	}
	m.inFlight = true
	m.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.prober.Probe(probeCtx)
	cancel()

	down := IsDownError(err)

	m.mu.Lock()
	previous := m.state
	if down {
		m.state = StateUnreachable
	} else {
		m.state = StateReachable
	}
	if m.state != previous {
		log.Printf("[REACHABILITY] Backend is %s", m.state)
	}
	m.lastChecked = time.Now()
	m.inFlight = false
	m.mu.Unlock()
}

// Down reports whether the backend is currently considered unreachable.
func (m *Monitor) Down() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateUnreachable
}

// Status returns the current state and the time of the last probe.
func (m *Monitor) Status() (State, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.lastChecked
}
