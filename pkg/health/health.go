// Package health tracks reachability of remote dependencies from a client
// process.
//
// Each registered probe runs in its own background goroutine at a configurable
// interval. Probes use failure/success thresholds (inspired by Kubernetes
// probe configuration) to avoid flapping: a probe must fail consecutively
// failureThreshold times before being marked unreachable, and succeed
// successThreshold times before being marked reachable again.
package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ProbeFunc checks one remote dependency. It should return nil when the
// dependency answered, or an error describing the problem.
type ProbeFunc func(ctx context.Context) error

// probe holds the configuration and runtime state for a single probe.
//
// Concurrency model: run() is called from exactly one goroutine (the ticker).
// The counters (consecutiveFails, consecutiveOK) are only accessed by run(),
// so they need no synchronization. The reachable flag and lastErr are read by
// callers from arbitrary goroutines, so they use atomic operations.
type probe struct {
	name             string
	timeout          time.Duration
	check            ProbeFunc
	failureThreshold int
	successThreshold int

	reachable atomic.Bool
	lastErr   atomic.Pointer[error]

	// counters are only accessed from the single run() goroutine.
	consecutiveFails int
	consecutiveOK    int
}

// run executes the probe once and updates thresholds accordingly.
// Must be called from a single goroutine.
func (p *probe) run(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.check(probeCtx)
	p.lastErr.Store(&err)

	if err != nil {
		p.consecutiveOK = 0
		p.consecutiveFails++
		if p.consecutiveFails >= p.failureThreshold {
			p.reachable.Store(false)
		}
	} else {
		p.consecutiveFails = 0
		p.consecutiveOK++
		if p.consecutiveOK >= p.successThreshold {
			p.reachable.Store(true)
		}
	}
}

// Status is a point-in-time snapshot of one probe.
type Status struct {
	Name      string
	Reachable bool
	Err       error
}

// Monitor manages connectivity probes for remote dependencies.
type Monitor struct {
	// mu protects probes and cancel. Only held during registration (before
	// Start) and in Start/Stop. Readers snapshot the slice under RLock.
	mu     sync.RWMutex
	probes []*probe
	cancel context.CancelFunc
}

// New creates an empty Monitor. Register probes with AddProbe, then call Start.
func New() *Monitor {
	return &Monitor{}
}

// AddProbe registers a connectivity probe. Probes start out assumed reachable
// until proven otherwise.
func (m *Monitor) AddProbe(name string, timeout time.Duration, check ProbeFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &probe{
		name:             name,
		timeout:          timeout,
		check:            check,
		failureThreshold: 3,
		successThreshold: 1,
	}
	p.reachable.Store(true)
	m.probes = append(m.probes, p)
}

// Start begins running all registered probes in background goroutines at the
// given interval. Each probe runs once immediately, then on every tick.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.cancel = cancel
	probes := make([]*probe, len(m.probes))
	copy(probes, m.probes)
	m.mu.Unlock()

	for _, p := range probes {
		go runProbe(ctx, p, interval)
	}
}

// runProbe periodically executes a single probe until the context is cancelled.
func runProbe(ctx context.Context, p *probe, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

// Reachable reports whether every registered probe currently passes.
func (m *Monitor) Reachable() bool {
	m.mu.RLock()
	probes := m.probes
	m.mu.RUnlock()

	for _, p := range probes {
		if !p.reachable.Load() {
			return false
		}
	}
	return true
}

// Statuses returns a snapshot of all probes.
func (m *Monitor) Statuses() []Status {
	m.mu.RLock()
	probes := make([]*probe, len(m.probes))
	copy(probes, m.probes)
	m.mu.RUnlock()

	out := make([]Status, len(probes))
	for i, p := range probes {
		var err error
		if e := p.lastErr.Load(); e != nil {
			err = *e
		}
		out[i] = Status{Name: p.name, Reachable: p.reachable.Load(), Err: err}
	}
	return out
}

// Stop cancels all background probe goroutines. Safe to call multiple times.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
