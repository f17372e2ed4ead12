package view

import (
	"sync"

	"github.com/go-faster/errors"
)

// ErrInFlight is returned when an action is already running for the same key.
var ErrInFlight = errors.New("action already in flight")

// Guard rejects duplicate concurrent triggers of the same user action. Keys
// combine the action with the affected identifier, e.g. "cart.set:p1", so a
// double-fired mutation cannot race itself while unrelated actions proceed.
type Guard struct {
	mu      sync.Mutex
	running map[string]struct{}
}

// NewGuard creates an empty Guard.
func NewGuard() *Guard {
	return &Guard{running: make(map[string]struct{})}
}

// Do runs fn unless the same key is already in flight, in which case it
// returns ErrInFlight without calling fn.
func (g *Guard) Do(key string, fn func() error) error {
	g.mu.Lock()
	if _, busy := g.running[key]; busy {
		g.mu.Unlock()
		return ErrInFlight
	}
	g.running[key] = struct{}{}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.running, key)
		g.mu.Unlock()
	}()
	return fn()
}

// Busy reports whether key is currently in flight.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.running[key]
	return busy
}
