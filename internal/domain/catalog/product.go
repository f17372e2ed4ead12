package catalog

import (
	"github.com/shopspring/decimal"
)

// Product represents a storefront catalog item as returned by the backend.
// The client never mutates a product; it only displays it and references it
// by ID in follow-up requests.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Features    []string        `json:"features,omitempty"`
}

// SearchResult is a product enriched with a similarity score. The score is
// only present on search-result variants and is rendered in the order the
// backend returned it.
type SearchResult struct {
	Product
	Similarity float64 `json:"similarity,omitempty"`
}

// Recommendation is a product suggestion produced server-side from the cart
// contents. The client displays it verbatim.
type Recommendation struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	MatchScore      int             `json:"matchScore"`
	Reason          string          `json:"reason"`
	StyleAttributes []string        `json:"styleAttributes,omitempty"`
}
