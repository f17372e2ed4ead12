package api

import (
	"context"

	"github.com/xenking/storefront-cli/internal/domain/chat"
)

// chatRequest is the body of the assistant call.
type chatRequest struct {
	Message         string           `json:"message"`
	UserPreferences chat.Preferences `json:"userPreferences"`
}

// ChatReply is the assistant's answer plus the structured hints it matched on.
type ChatReply struct {
	Success  bool          `json:"success"`
	Response string        `json:"response"`
	Context  *chat.Context `json:"context,omitempty"`
}

// SendMessage sends one user message to the assistant and returns its reply.
// The transcript is purely client-side; only the outgoing text is ever sent.
func (c *Client) SendMessage(ctx context.Context, text string, prefs chat.Preferences) (*ChatReply, error) {
	var resp ChatReply
	if err := c.post(ctx, "/chat", chatRequest{Message: text, UserPreferences: prefs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
