// Package view is the terminal presentation layer: page components over the
// API client, a navigation shell composing them, and the shared interaction
// pattern every data-driven view follows — loading, success, or error
// surfaced as a transient toast while prior state stays on screen.
package view

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"github.com/xenking/storefront-cli/internal/api"
)

// Page is one routable view component. The shell calls Enter when navigating
// to the page with a context that stays alive until the shell navigates away;
// in-flight work must treat context cancellation as "discard the result".
type Page interface {
	// Route is the stable path the shell maps to this page.
	Route() string
	// Title is the heading shown in the chrome.
	Title() string
	// Enter starts the page's initial fetches.
	Enter(ctx context.Context)
	// Exec handles one user command line, already split into fields.
	Exec(ctx context.Context, args []string) error
	// Render writes the page's current state.
	Render(w io.Writer)
}

// errUnknownCommand is returned by pages for input they do not handle.
var errUnknownCommand = errors.New("unknown command, try 'help'")

// errMessage normalizes any failure into the human-readable string a toast
// shows: the server-supplied message when one exists, otherwise the error
// text itself.
func errMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
