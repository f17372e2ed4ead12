package api

import (
	"context"

	"github.com/go-faster/errors"
)

// credentials is the body of both credential-exchange calls.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the credential-exchange reply.
type tokenResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session. Subsequent privileged calls carry it automatically.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.post(ctx, "/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if err := c.session.SetToken(resp.AccessToken); err != nil {
		return errors.Wrap(err, "store token")
	}
	return nil
}

// Register creates a new account and stores the returned token in the session.
func (c *Client) Register(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.post(ctx, "/register", credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if err := c.session.SetToken(resp.AccessToken); err != nil {
		return errors.Wrap(err, "store token")
	}
	return nil
}

// Logout forgets the stored token. Purely local; the backend keeps no session
// state to invalidate.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Authenticated reports whether the session holds a token.
func (c *Client) Authenticated() bool {
	return c.session.Authenticated()
}
