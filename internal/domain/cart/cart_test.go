package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xenking/storefront-cli/internal/domain/catalog"
)

func line(id string, price string, qty int) Line {
	return Line{
		Product: catalog.Product{
			ID:    id,
			Name:  "item " + id,
			Price: decimal.RequireFromString(price),
		},
		Quantity: qty,
	}
}

func TestTotal(t *testing.T) {
	c := Cart{line("p1", "10.00", 2), line("p2", "4.99", 3)}
	assert.True(t, c.Total().Equal(decimal.RequireFromString("34.97")))
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, Cart{}.Total().IsZero())
	assert.True(t, Cart(nil).Total().IsZero())
}

func TestQuantity(t *testing.T) {
	c := Cart{line("p1", "10.00", 2)}
	assert.Equal(t, 2, c.Quantity("p1"))
	assert.Equal(t, 0, c.Quantity("missing"))
	assert.True(t, c.Contains("p1"))
	assert.False(t, c.Contains("missing"))
}

func TestSubtotal(t *testing.T) {
	l := line("p1", "6.50", 3)
	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("19.50")))
}
