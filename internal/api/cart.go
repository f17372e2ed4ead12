package api

import (
	"context"

	"github.com/xenking/storefront-cli/internal/domain/cart"
)

// GetCart fetches the full cart. The cart endpoint replies with a bare JSON
// array of lines; the backend copy is authoritative.
func (c *Client) GetCart(ctx context.Context) (cart.Cart, error) {
	var lines cart.Cart
	if err := c.get(ctx, "/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// cartMutation is the body of both cart mutation calls.
type cartMutation struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

// AddToCart adds or updates a cart line. The caller is expected to refetch
// the cart afterwards rather than patch local state.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	return c.post(ctx, "/cart", cartMutation{ProductID: productID, Quantity: quantity}, nil)
}

// RemoveFromCart removes the line for productID. The line to remove travels
// in the request body, not the path.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	return c.del(ctx, "/cart", cartMutation{ProductID: productID}, nil)
}
