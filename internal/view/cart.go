package view

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/xenking/storefront-cli/internal/api"
	"github.com/xenking/storefront-cli/internal/domain/cart"
	"github.com/xenking/storefront-cli/internal/domain/catalog"
	"github.com/xenking/storefront-cli/internal/domain/chat"
)

// CartPage shows the cart and drives its mutations.
//
// Mutations are not optimistic: the page issues the call, waits for server
// confirmation, then refetches the entire cart. The displayed cart can never
// diverge from the backend, at the cost of an extra round trip per mutation.
// A failed mutation leaves the displayed cart exactly as it was.
type CartPage struct {
	api         *api.Client
	toast       *Toaster
	guard       *Guard
	prefs       chat.Preferences
	maxQuantity int

	// fetch collapses concurrent refetches into one backend call.
	fetch singleflight.Group

	cart Result[cart.Cart]
	recs Result[[]catalog.Recommendation]
}

// NewCartPage builds the cart page. maxQuantity bounds the per-line stepper.
func NewCartPage(client *api.Client, toast *Toaster, guard *Guard, prefs chat.Preferences, maxQuantity int) *CartPage {
	return &CartPage{
		api:         client,
		toast:       toast,
		guard:       guard,
		prefs:       prefs,
		maxQuantity: maxQuantity,
	}
}

func (p *CartPage) Route() string { return "/cart" }
func (p *CartPage) Title() string { return "Shopping Cart" }

// Enter fetches the cart, then the recommendations for its total.
func (p *CartPage) Enter(ctx context.Context) {
	go func() {
		_ = p.Refresh(ctx)
		p.LoadRecommendations(ctx)
	}()
}

// Refresh refetches the full cart. Concurrent callers share one request.
func (p *CartPage) Refresh(ctx context.Context) error {
	p.cart.SetLoading()
	v, err, _ := p.fetch.Do("cart", func() (any, error) {
		return p.api.GetCart(ctx)
	})
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		msg := errMessage(err)
		p.cart.SetErr(msg)
		p.toast.Error(msg)
		return nil
	}
	p.cart.SetOK(v.(cart.Cart))
	return nil
}

// SetQuantity updates one line to the given quantity, then refetches.
func (p *CartPage) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 || quantity > p.maxQuantity {
		return errors.Errorf("quantity must be between 1 and %d", p.maxQuantity)
	}
	return p.guard.Do("cart.set:"+productID, func() error {
		if err := p.api.AddToCart(ctx, productID, quantity); err != nil {
			p.toast.Error(errMessage(err))
			return nil
		}
		return p.Refresh(ctx)
	})
}

// Remove deletes one line, then refetches.
func (p *CartPage) Remove(ctx context.Context, productID string) error {
	return p.guard.Do("cart.remove:"+productID, func() error {
		if err := p.api.RemoveFromCart(ctx, productID); err != nil {
			p.toast.Error(errMessage(err))
			return nil
		}
		p.toast.Success("Item removed")
		return p.Refresh(ctx)
	})
}

// Checkout submits the payment token. The backend clears the cart on success,
// so the page refetches to show it empty.
func (p *CartPage) Checkout(ctx context.Context, paymentData json.RawMessage) error {
	return p.guard.Do("cart.checkout", func() error {
		if err := p.api.SubmitPayment(ctx, paymentData); err != nil {
			p.toast.Error(errMessage(err))
			return nil
		}
		p.toast.Success("Payment processed. Thank you for your purchase!")
		return p.Refresh(ctx)
	})
}

// LoadRecommendations fetches server-side suggestions for the current total.
func (p *CartPage) LoadRecommendations(ctx context.Context) {
	p.recs.SetLoading()
	recs, err := p.api.Recommend(ctx, p.Total(), p.prefs)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		msg := errMessage(err)
		p.recs.SetErr(msg)
		p.toast.Error(msg)
		return
	}
	p.recs.SetOK(recs)
}

// Cart returns the currently displayed cart.
func (p *CartPage) Cart() cart.Cart {
	return p.cart.Data()
}

// Total is the displayed cart total.
func (p *CartPage) Total() decimal.Decimal {
	return p.cart.Data().Total()
}

func (p *CartPage) Exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "set":
		if len(args) < 3 {
			return errUnknownCommand
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.Errorf("quantity %q is not a number", args[2])
		}
		return p.SetQuantity(ctx, args[1], qty)
	case "rm":
		if len(args) < 2 {
			return errUnknownCommand
		}
		return p.Remove(ctx, args[1])
	case "checkout":
		token := "{}"
		if len(args) > 1 {
			token = strings.Join(args[1:], " ")
		}
		return p.Checkout(ctx, json.RawMessage(token))
	case "recs":
		p.LoadRecommendations(ctx)
		return nil
	case "refresh":
		return p.Refresh(ctx)
	default:
		return errUnknownCommand
	}
}

func (p *CartPage) Render(w io.Writer) {
	state, lines, errMsg := p.cart.Get()

	switch state {
	case StateLoading:
		fmt.Fprintln(w, "loading your cart...")
		return
	case StateErr:
		fmt.Fprintln(w, color.RedString("last refresh failed: %s", errMsg))
	}

	if len(lines) == 0 {
		fmt.Fprintln(w, "your cart is empty")
	} else {
		for _, l := range lines {
			fmt.Fprintf(w, "%-8s %-40s %10s  x%d = %s\n",
				l.Product.ID, l.Product.Name,
				"$"+l.Product.Price.StringFixed(2), l.Quantity,
				"$"+l.Subtotal().StringFixed(2))
		}
		fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprintf("total: $%s", lines.Total().StringFixed(2)))
	}

	if recState, recs, _ := p.recs.Get(); recState == StateOK && len(recs) > 0 {
		fmt.Fprintln(w, "you might also like:")
		for _, r := range recs {
			fmt.Fprintf(w, "  %-8s %-40s %10s  %s\n",
				r.ID, r.Name, "$"+r.Price.StringFixed(2), r.Reason)
		}
	}
}
