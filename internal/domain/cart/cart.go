// Package cart defines the client-side representation of the shopping cart.
//
// The backend is the sole source of truth: every mutation goes to the server
// and the full cart is refetched afterwards. Nothing here is cached beyond
// the lifetime of the view that fetched it.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-cli/internal/domain/catalog"
)

// Line is a single cart entry: a denormalized product snapshot plus quantity,
// exactly as returned by the cart endpoint.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the full cart as fetched from the backend.
type Cart []Line

// Total sums all line subtotals, rounded to 2 decimal places.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

// Quantity returns the quantity of the line holding productID, or 0 when the
// product is not in the cart.
func (c Cart) Quantity(productID string) int {
	for _, l := range c {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

// Contains reports whether a line for productID exists.
func (c Cart) Contains(productID string) bool {
	return c.Quantity(productID) > 0
}
