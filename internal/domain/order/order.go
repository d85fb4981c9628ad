package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownProductName is substituted when an order item references a product
// that no longer resolves against the catalog. Orders always list
// successfully even after catalog data changes underneath them.
const UnknownProductName = "Unknown Product"

// Order represents a placed order. Total is derived once at creation time
// from catalog prices and never recomputed on read.
type Order struct {
	ID        string
	UserID    string
	Items     []Item
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Item is a single line of an order as submitted by the client.
type Item struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// ProductRef is the display subset of a product attached to an order item
// during enrichment.
type ProductRef struct {
	ID   string
	Name string
}

// EnrichedItem is an order item joined with its current catalog details.
type EnrichedItem struct {
	Product ProductRef
	Qty     int
}

// UserOrder is the enriched read model returned when listing a user's orders.
type UserOrder struct {
	ID    string
	Items []EnrichedItem
	Total decimal.Decimal
}

// Repository defines the store operations for the order collection.
type Repository interface {
	// Create persists an order and returns its generated identifier.
	Create(ctx context.Context, o Order) (string, error)
	// FindByUser returns a page of the user's orders ordered by ascending
	// identifier, which for time-ordered identifiers equals insertion order.
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	// CountByUser returns the total number of orders for the user.
	CountByUser(ctx context.Context, userID string) (int, error)
}
