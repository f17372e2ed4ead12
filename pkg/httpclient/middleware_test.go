package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func doThrough(t *testing.T, rt http.RoundTripper, check func(*http.Request)) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		check(r)
	}))
	defer srv.Close()

	client := &http.Client{Transport: rt}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestBearer(t *testing.T) {
	t.Run("token present", func(t *testing.T) {
		rt := Wrap(nil, Bearer(staticTokens("tok-1")))
		doThrough(t, rt, func(r *http.Request) {
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		})
	})

	t.Run("no token omits header", func(t *testing.T) {
		rt := Wrap(nil, Bearer(staticTokens("")))
		doThrough(t, rt, func(r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
		})
	})
}

func TestBearer_DoesNotOverride(t *testing.T) {
	rt := Wrap(nil, Bearer(staticTokens("tok-1")))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer explicit", r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer explicit")

	resp, err := (&http.Client{Transport: rt}).Do(req)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestRequestID(t *testing.T) {
	seen := map[string]bool{}
	rt := Wrap(nil, RequestID())
	for range 3 {
		doThrough(t, rt, func(r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			assert.NotEmpty(t, id)
			assert.False(t, seen[id], "request IDs must be unique")
			seen[id] = true
		})
	}
}

func TestWrap_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Wrap(nil, tag("outer"), tag("inner"))
	doThrough(t, rt, func(*http.Request) {})
	assert.Equal(t, []string{"outer", "inner"}, order)
}
