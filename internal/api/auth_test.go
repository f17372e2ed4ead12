package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.Write([]byte(`{"success":true,"access_token":"jwt-abc"}`))
		case "/cart":
			// Privileged call right after login must carry the fresh token.
			assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		}
	}))

	require.NoError(t, client.Login(context.Background(), "a@b.c", "hunter2"))
	assert.Equal(t, "jwt-abc", sess.Token())

	_, err := client.GetCart(context.Background())
	require.NoError(t, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))

	err := client.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, sess.Token())
}

func TestLogoutClearsToken(t *testing.T) {
	client, sess := newTestClient(t, http.NotFoundHandler())

	require.NoError(t, sess.SetToken("tok"))
	require.True(t, client.Authenticated())

	require.NoError(t, client.Logout())
	assert.False(t, client.Authenticated())
}
