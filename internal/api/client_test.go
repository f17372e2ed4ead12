package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-cli/internal/session"
)

// newTestClient builds a client against a fake backend with an in-memory
// session.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.Load("")
	require.NoError(t, err)
	return NewClient(Config{BaseURL: srv.URL}, sess), sess
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	// No token: the header is omitted entirely.
	_, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	require.NoError(t, sess.SetToken("tok-123"))
	_, err = client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestRequestID(t *testing.T) {
	var gotID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))

	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("application failure: 2xx with success false", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"success":false,"error":"rate limited"}`))
		}))

		err := client.AddToCart(context.Background(), "p1", 1)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "rate limited", apiErr.Message)
		assert.Equal(t, http.StatusOK, apiErr.Status)
	})

	t.Run("http failure with server message", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Product not found"}`))
		}))

		err := client.AddToCart(context.Background(), "missing", 1)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Product not found", apiErr.Message)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})

	t.Run("http failure without body falls back to generic message", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		err := client.AddToCart(context.Background(), "p1", 1)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, genericFailure, apiErr.Message)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // nothing listening anymore

		sess, err := session.Load("")
		require.NoError(t, err)
		client := NewClient(Config{BaseURL: srv.URL}, sess)

		getErr := client.Ping(context.Background())
		var apiErr *Error
		require.ErrorAs(t, getErr, &apiErr)
		assert.Equal(t, 0, apiErr.Status)
		assert.Equal(t, genericFailure, apiErr.Message)
	})
}

func TestProbeEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want envelope
	}{
		{"success true", `{"success":true,"products":[]}`, envelope{hasSuccess: true, success: true}},
		{"success false with error", `{"success":false,"error":"boom"}`, envelope{hasSuccess: true, errMsg: "boom"}},
		{"error only", `{"error":"bad"}`, envelope{errMsg: "bad"}},
		{"bare array", `[1,2,3]`, envelope{}},
		{"not json", `hello`, envelope{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, probeEnvelope([]byte(tt.body)))
		})
	}
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProducts(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
