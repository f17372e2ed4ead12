package api

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-cli/internal/domain/catalog"
	"github.com/xenking/storefront-cli/internal/domain/chat"
)

// recommendRequest is the body of the cart-based recommendation call.
type recommendRequest struct {
	CartTotal   decimal.Decimal  `json:"cartTotal"`
	Preferences chat.Preferences `json:"preferences"`
}

// recommendResponse wraps the server-ranked suggestions.
type recommendResponse struct {
	Success         bool                     `json:"success"`
	Recommendations []catalog.Recommendation `json:"recommendations"`
}

// Recommend asks the backend for product suggestions based on the current
// cart total and shopper preferences. The ranking is entirely server-side.
func (c *Client) Recommend(ctx context.Context, cartTotal decimal.Decimal, prefs chat.Preferences) ([]catalog.Recommendation, error) {
	var resp recommendResponse
	if err := c.post(ctx, "/recommend", recommendRequest{CartTotal: cartTotal, Preferences: prefs}, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// paymentRequest carries the opaque payment token to the backend.
type paymentRequest struct {
	PaymentData json.RawMessage `json:"paymentData"`
}

// SubmitPayment forwards a payment token. On success the backend clears the
// cart; the caller should refetch it.
func (c *Client) SubmitPayment(ctx context.Context, paymentData json.RawMessage) error {
	return c.post(ctx, "/google-pay", paymentRequest{PaymentData: paymentData}, nil)
}
