package view

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/xenking/storefront-cli/internal/api"
	"github.com/xenking/storefront-cli/internal/domain/catalog"
)

// ProductsPage lists the catalog and runs text search with filter tags.
//
// Backend-suggested filters merge into the active set without duplicates;
// removing a filter re-issues the last search with the reduced set; an empty
// query restores the unfiltered full list.
type ProductsPage struct {
	api   *api.Client
	toast *Toaster
	guard *Guard

	list       Result[[]catalog.Product]
	categories Result[[]string]

	mu            sync.Mutex
	query         string
	activeFilters []string
}

// NewProductsPage builds the catalog page.
func NewProductsPage(client *api.Client, toast *Toaster, guard *Guard) *ProductsPage {
	return &ProductsPage{api: client, toast: toast, guard: guard}
}

func (p *ProductsPage) Route() string { return "/products" }
func (p *ProductsPage) Title() string { return "Products" }

// Enter loads the full catalog and the category list.
func (p *ProductsPage) Enter(ctx context.Context) {
	p.refresh(ctx, "")

	p.categories.SetLoading()
	go func() {
		cats, err := p.api.ListCategories(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			p.categories.SetErr(errMessage(err))
			return
		}
		p.categories.SetOK(cats)
	}()
}

// refresh fetches the product list, optionally narrowed to one category.
func (p *ProductsPage) refresh(ctx context.Context, category string) {
	p.list.SetLoading()
	go func() {
		products, err := p.api.ListProducts(ctx, category)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			msg := errMessage(err)
			p.list.SetErr(msg)
			p.toast.Error(msg)
			return
		}
		p.list.SetOK(products)
	}()
}

// Search runs a text query with the active filters. An empty query restores
// the unfiltered full product list and drops the filters.
func (p *ProductsPage) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		p.mu.Lock()
		p.query = ""
		p.activeFilters = nil
		p.mu.Unlock()
		p.refresh(ctx, "")
		return nil
	}

	return p.guard.Do("products.search", func() error {
		p.mu.Lock()
		p.query = query
		filters := slices.Clone(p.activeFilters)
		p.mu.Unlock()

		p.list.SetLoading()
		resp, err := p.api.SearchProducts(ctx, query, filters)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			msg := errMessage(err)
			p.list.SetErr(msg)
			p.toast.Error(msg)
			return nil
		}

		products := make([]catalog.Product, len(resp.Products))
		for i, r := range resp.Products {
			products[i] = r.Product
		}
		p.list.SetOK(products)
		p.mergeFilters(resp.SuggestedFilters)
		return nil
	})
}

// mergeFilters adds backend-suggested tags to the active set, deduplicating
// against tags already present.
func (p *ProductsPage) mergeFilters(suggested []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, tag := range suggested {
		if tag != "" && !slices.Contains(p.activeFilters, tag) {
			p.activeFilters = append(p.activeFilters, tag)
		}
	}
}

// RemoveFilter drops one active filter tag and re-issues the last search with
// the reduced set.
func (p *ProductsPage) RemoveFilter(ctx context.Context, tag string) error {
	p.mu.Lock()
	p.activeFilters = slices.DeleteFunc(slices.Clone(p.activeFilters), func(t string) bool {
		return t == tag
	})
	query := p.query
	p.mu.Unlock()

	if query == "" {
		return nil
	}
	return p.Search(ctx, query)
}

// ActiveFilters returns a copy of the current filter tags.
func (p *ProductsPage) ActiveFilters() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.activeFilters)
}

// AddToCart puts one unit of the product in the cart.
func (p *ProductsPage) AddToCart(ctx context.Context, productID string) error {
	return p.guard.Do("cart.add:"+productID, func() error {
		if err := p.api.AddToCart(ctx, productID, 1); err != nil {
			p.toast.Error(errMessage(err))
			return nil
		}
		p.toast.Success("Added to cart")
		return nil
	})
}

func (p *ProductsPage) Exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "list":
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		p.refresh(ctx, category)
		return nil
	case "search":
		return p.Search(ctx, strings.Join(args[1:], " "))
	case "unfilter":
		if len(args) < 2 {
			return errUnknownCommand
		}
		return p.RemoveFilter(ctx, args[1])
	case "add":
		if len(args) < 2 {
			return errUnknownCommand
		}
		return p.AddToCart(ctx, args[1])
	case "refresh":
		p.refresh(ctx, "")
		return nil
	default:
		return errUnknownCommand
	}
}

func (p *ProductsPage) Render(w io.Writer) {
	state, products, errMsg := p.list.Get()

	if _, cats, _ := p.categories.Get(); len(cats) > 0 {
		fmt.Fprintf(w, "categories: %s\n", strings.Join(cats, ", "))
	}
	if filters := p.ActiveFilters(); len(filters) > 0 {
		fmt.Fprintf(w, "filters: %s\n", color.YellowString(strings.Join(filters, ", ")))
	}

	switch state {
	case StateLoading:
		fmt.Fprintln(w, "loading products...")
	case StateErr:
		fmt.Fprintln(w, color.RedString("last refresh failed: %s", errMsg))
		fallthrough
	default:
		if len(products) == 0 {
			fmt.Fprintln(w, "no products")
			return
		}
		for _, prod := range products {
			fmt.Fprintf(w, "%-8s %-40s %10s  %s\n",
				prod.ID, prod.Name, "$"+prod.Price.StringFixed(2), prod.Category)
		}
	}
}
