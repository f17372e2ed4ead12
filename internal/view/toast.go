package view

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is the severity of a toast.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Toast is one transient notification.
type Toast struct {
	Level   Level
	Message string
	shownAt time.Time
}

// Toaster queues transient, auto-expiring notifications. Every failure in the
// application surfaces here with a human-readable message; nothing is fatal.
type Toaster struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	toasts []Toast
}

// NewToaster creates a Toaster whose entries expire after ttl.
func NewToaster(ttl time.Duration) *Toaster {
	return &Toaster{ttl: ttl, now: time.Now}
}

// Info queues an informational toast.
func (t *Toaster) Info(msg string) { t.push(LevelInfo, msg) }

// Success queues a success toast.
func (t *Toaster) Success(msg string) { t.push(LevelSuccess, msg) }

// Error queues an error toast.
func (t *Toaster) Error(msg string) { t.push(LevelError, msg) }

func (t *Toaster) push(level Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, Toast{Level: level, Message: msg, shownAt: t.now()})
}

// Active prunes expired toasts and returns the live ones, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.ttl)
	live := t.toasts[:0]
	for _, toast := range t.toasts {
		if toast.shownAt.After(cutoff) {
			live = append(live, toast)
		}
	}
	t.toasts = live

	out := make([]Toast, len(live))
	copy(out, live)
	return out
}

// Dismiss drops all queued toasts.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = nil
}

// Render writes the live toasts to w, one per line.
func (t *Toaster) Render(w io.Writer) {
	for _, toast := range t.Active() {
		switch toast.Level {
		case LevelSuccess:
			fmt.Fprintln(w, color.GreenString("✔ %s", toast.Message))
		case LevelError:
			fmt.Fprintln(w, color.RedString("✘ %s", toast.Message))
		default:
			fmt.Fprintln(w, color.CyanString("ℹ %s", toast.Message))
		}
	}
}
