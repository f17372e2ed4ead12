package api

import (
	"context"
	"net/url"

	"github.com/xenking/storefront-cli/internal/domain/catalog"
)

// ListProducts returns the catalog, optionally filtered by category. The
// products endpoint replies with a bare JSON array, no envelope.
func (c *Client) ListProducts(ctx context.Context, category string) ([]catalog.Product, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": []string{category}}
	}

	var products []catalog.Product
	if err := c.get(ctx, "/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns all distinct product categories.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
