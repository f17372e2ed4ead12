package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-cli/internal/api"
	"github.com/xenking/storefront-cli/internal/session"
)

// newPageClient spins up a fake backend and returns a client wired to it.
func newPageClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.Load("")
	require.NoError(t, err)
	return api.NewClient(api.Config{BaseURL: srv.URL}, sess)
}

func toastMessages(ts *Toaster) []string {
	var out []string
	for _, toast := range ts.Active() {
		out = append(out, toast.Message)
	}
	return out
}
