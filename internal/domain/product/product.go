package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item available for purchase. Products are
// immutable after creation: there are no update or delete operations.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Sizes []Size
}

// Size is a named size variant with its available quantity.
type Size struct {
	Name     string
	Quantity int
}

// Filter restricts catalog queries. Name matches as a case-insensitive
// substring; Size matches products containing a size with that exact name.
// Empty fields are not applied.
type Filter struct {
	Name string
	Size string
}

// Repository defines the store operations for the product collection.
type Repository interface {
	// Create persists a product and returns its generated identifier.
	Create(ctx context.Context, p Product) (string, error)
	// Find returns a page of products matching the filter, ordered by
	// ascending identifier.
	Find(ctx context.Context, f Filter, limit, offset int) ([]Product, error)
	// Count returns the total number of products matching the filter.
	Count(ctx context.Context, f Filter) (int, error)
	// GetByIDs returns the products whose identifier is in ids. Malformed
	// identifiers are silently dropped; missing ones are simply absent from
	// the result. Result order is unspecified.
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
}
