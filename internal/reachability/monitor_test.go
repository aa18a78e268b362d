package reachability

import (
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

// countingProber answers with the configured error and counts calls.
type countingProber struct {
	calls int64
	err   atomic.Value // errBox; boxing keeps the stored type consistent
}

// errBox wraps errors so atomic.Value always sees one concrete type.
type errBox struct{ err error }

func (p *countingProber) setErr(err error) {
	p.err.Store(errBox{err})
}

func (p *countingProber) Probe(context.Context) error {
	atomic.AddInt64(&p.calls, 1)
	if v, ok := p.err.Load().(errBox); ok {
		return v.err
	}
	return nil
}

func (p *countingProber) count() int64 { return atomic.LoadInt64(&p.calls) }

func TestMonitorStartProbesImmediately(t *testing.T) {
	p := &countingProber{}
	p.setErr(nil)

	m := NewMonitor(p, time.Hour, time.Second)
	m.Start(context.Background())
	defer m.Stop()

	deadline := time.Now().Add(time.Second)
	for p.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no probe fired on Start")
		}
		time.Sleep(time.Millisecond)
	}

	waitForState(t, m, StateReachable)
	if m.Down() {
		t.Error("Down() = true after a healthy probe")
	}
}

func TestMonitorFlipsDownOnNetworkError(t *testing.T) {
	p := &countingProber{}
	p.setErr(syscall.ECONNREFUSED)

	m := NewMonitor(p, time.Hour, time.Second)
	m.Refresh(context.Background())

	if !m.Down() {
		t.Fatal("Down() = false after connection refused")
	}

	// A server that answers, even with an error, is back up.
	p.setErr(errors.New("pq: permission denied"))
	m.Refresh(context.Background())
	if m.Down() {
		t.Error("application-level error classified as down")
	}
}

func TestMonitorHandleOfflineAndOnline(t *testing.T) {
	p := &countingProber{}
	p.setErr(nil)

	m := NewMonitor(p, time.Hour, time.Second)
	m.Refresh(context.Background())
	waitForState(t, m, StateReachable)

	m.HandleOffline()
	if !m.Down() {
		t.Fatal("HandleOffline did not flip the state")
	}

	m.HandleOnline(context.Background())
	waitForState(t, m, StateReachable)
}

func TestMonitorSkipsOverlappingProbes(t *testing.T) {
	release := make(chan struct{})
	var calls int64

	slow := ProberFunc(func(ctx context.Context) error {
		atomic.AddInt64(&calls, 1)
		<-release
		return nil
	})

	m := NewMonitor(slow, time.Hour, time.Minute)

	go m.Refresh(context.Background())

	// Wait until the first probe is holding the in-flight slot.
	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt64(&calls) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first probe never started")
		}
		time.Sleep(time.Millisecond)
	}

	// These must be skipped, not queued.
	m.Refresh(context.Background())
	m.HandleOnline(context.Background())

	close(release)

	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("prober called %d times, want 1 (overlap must be skipped)", got)
	}
}

func TestMonitorProbeTimeout(t *testing.T) {
	hang := ProberFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	m := NewMonitor(hang, time.Hour, 10*time.Millisecond)
	m.Refresh(context.Background())

	if !m.Down() {
		t.Error("hung probe not classified as down")
	}
}

func TestMonitorRestartKeepsSingleInterval(t *testing.T) {
	p := &countingProber{}
	p.setErr(nil)

	m := NewMonitor(p, 20*time.Millisecond, time.Second)
	m.Start(context.Background())
	m.Start(context.Background())
	defer m.Stop()

	time.Sleep(110 * time.Millisecond)
	got := p.count()

	// One interval yields ~5 ticks plus the immediate probes; two stacked
	// intervals would roughly double that.
	if got > 9 {
		t.Errorf("probe count %d suggests more than one active interval", got)
	}
	if got < 3 {
		t.Errorf("probe count %d suggests the monitor is not running", got)
	}
}

func waitForState(t *testing.T, m *Monitor, want State) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		if state, _ := m.Status(); state == want {
			return
		}
		if time.Now().After(deadline) {
			state, _ := m.Status()
			t.Fatalf("state = %v, want %v", state, want)
		}
		time.Sleep(time.Millisecond)
	}
}
