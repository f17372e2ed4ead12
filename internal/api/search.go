package api

import (
	"context"
	"io"

	"github.com/xenking/storefront-cli/internal/domain/catalog"
)

// SearchResponse is the reply of both search endpoints: matched products in
// backend-ranked order plus optional suggested filter tags.
type SearchResponse struct {
	Success          bool                   `json:"success"`
	Products         []catalog.SearchResult `json:"products"`
	Message          string                 `json:"message,omitempty"`
	SuggestedFilters []string               `json:"suggestedFilters,omitempty"`
}

// SearchImage uploads one image as multipart form data and returns visually
// similar products with their similarity scores, in the order the backend
// ranked them.
func (c *Client) SearchImage(ctx context.Context, filename string, image io.Reader) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.postMultipart(ctx, "/search", "image", filename, image, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// searchProductsRequest is the body of the text search call.
type searchProductsRequest struct {
	Query   string   `json:"query"`
	Filters []string `json:"filters"`
}

// SearchProducts runs a text query with the currently active filter tags.
func (c *Client) SearchProducts(ctx context.Context, query string, filters []string) (*SearchResponse, error) {
	if filters == nil {
		filters = []string{}
	}

	var resp SearchResponse
	if err := c.post(ctx, "/search/products", searchProductsRequest{Query: query, Filters: filters}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
