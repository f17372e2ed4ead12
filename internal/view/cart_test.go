package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-cli/internal/domain/chat"
)

// cartBackend is a fake cart endpoint holding one mutable line for p1.
type cartBackend struct {
	mu       sync.Mutex
	quantity int
	posts    []map[string]any
	failPost string // error message to return on POST /cart, "" for success
}

func (b *cartBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method + " " + r.URL.Path {
	case "GET /cart":
		if b.quantity == 0 {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprintf(w, `[{"product":{"id":"p1","name":"Classic Tee","price":10.00},"quantity":%d}]`, b.quantity)
	case "POST /cart":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.posts = append(b.posts, body)
		if b.failPost != "" {
			fmt.Fprintf(w, `{"success":false,"error":%q}`, b.failPost)
			return
		}
		b.quantity = int(body["quantity"].(float64))
		fmt.Fprint(w, `{"success":true}`)
	case "DELETE /cart":
		b.quantity = 0
		fmt.Fprint(w, `{"success":true}`)
	case "POST /recommend":
		fmt.Fprint(w, `{"success":true,"recommendations":[]}`)
	case "POST /google-pay":
		fmt.Fprint(w, `{"success":true}`)
	default:
		http.NotFound(w, r)
	}
}

func newCartPage(t *testing.T, backend *cartBackend) (*CartPage, *Toaster) {
	t.Helper()
	toast := NewToaster(time.Minute)
	client := newPageClient(t, backend)
	return NewCartPage(client, toast, NewGuard(), chat.DefaultPreferences(), 99), toast
}

func TestCartPage_QuantityChange(t *testing.T) {
	backend := &cartBackend{quantity: 2}
	page, _ := newCartPage(t, backend)
	ctx := context.Background()

	require.NoError(t, page.Refresh(ctx))
	assert.Equal(t, "20.00", page.Total().StringFixed(2))

	// Stepping the quantity to 3 issues exactly one mutation, then refetches.
	require.NoError(t, page.SetQuantity(ctx, "p1", 3))

	require.Len(t, backend.posts, 1)
	assert.Equal(t, "p1", backend.posts[0]["product_id"])
	assert.Equal(t, float64(3), backend.posts[0]["quantity"])
	assert.Equal(t, 3, page.Cart().Quantity("p1"))
	assert.Equal(t, "30.00", page.Total().StringFixed(2))
}

func TestCartPage_QuantityValidation(t *testing.T) {
	backend := &cartBackend{quantity: 1}
	page, _ := newCartPage(t, backend)
	ctx := context.Background()

	assert.Error(t, page.SetQuantity(ctx, "p1", 0))
	assert.Error(t, page.SetQuantity(ctx, "p1", 100))
	assert.Empty(t, backend.posts, "out-of-range quantities must not reach the backend")
}

func TestCartPage_FailedMutationKeepsDisplayedCart(t *testing.T) {
	backend := &cartBackend{quantity: 2}
	page, toast := newCartPage(t, backend)
	ctx := context.Background()

	require.NoError(t, page.Refresh(ctx))

	backend.failPost = "Product not found"
	require.NoError(t, page.SetQuantity(ctx, "p1", 5))

	assert.Equal(t, 2, page.Cart().Quantity("p1"), "displayed cart must survive a failed mutation")
	assert.Equal(t, "20.00", page.Total().StringFixed(2))
	assert.Contains(t, toastMessages(toast), "Product not found")
}

func TestCartPage_Remove(t *testing.T) {
	backend := &cartBackend{quantity: 2}
	page, toast := newCartPage(t, backend)
	ctx := context.Background()

	require.NoError(t, page.Refresh(ctx))
	require.NoError(t, page.Remove(ctx, "p1"))

	assert.Empty(t, page.Cart())
	assert.Contains(t, toastMessages(toast), "Item removed")
}

func TestCartPage_Checkout(t *testing.T) {
	backend := &cartBackend{quantity: 1}
	page, toast := newCartPage(t, backend)
	ctx := context.Background()

	require.NoError(t, page.Checkout(ctx, json.RawMessage(`{}`)))
	assert.Contains(t, toastMessages(toast), "Payment processed. Thank you for your purchase!")
}

func TestCartPage_RefreshErrorKeepsStaleCart(t *testing.T) {
	backend := &cartBackend{quantity: 2}
	page, _ := newCartPage(t, backend)
	ctx := context.Background()

	require.NoError(t, page.Refresh(ctx))

	// Subsequent refetch fails; the stale cart stays visible with the error.
	client := newPageClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	page.api = client

	require.NoError(t, page.Refresh(ctx))
	state, lines, errMsg := page.cart.Get()
	assert.Equal(t, StateErr, state)
	assert.Equal(t, 2, lines.Quantity("p1"))
	assert.NotEmpty(t, errMsg)
}
