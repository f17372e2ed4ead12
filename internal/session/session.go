// Package session owns the bearer token for the storefront backend.
//
// The session is constructed once at application start and handed to the API
// client; request plumbing never reads ambient global storage. Only the auth
// flows (login, register, logout) write it. An empty token means
// unauthenticated — there is no refresh or expiry handling, an invalid token
// simply fails server-side.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-faster/errors"
)

// Session holds the persisted bearer token. Safe for concurrent use: every
// outgoing request reads the token while auth flows may replace it.
type Session struct {
	path string

	mu    sync.RWMutex
	token string
}

// Load opens the session backed by the token file at path. A missing file is
// not an error — it is an unauthenticated session. An empty path keeps the
// session in memory only.
func Load(path string) (*Session, error) {
	s := &Session{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "read token file")
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present. Presence says nothing
// about validity; the backend is the judge of that.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores a new bearer token and persists it to the token file.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create token dir")
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "write token file")
	}
	return nil
}

// Clear forgets the token and removes the token file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove token file")
	}
	return nil
}
