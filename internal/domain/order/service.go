package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront-api/internal/apperror"
	"github.com/xenking/storefront-api/internal/domain/product"
	"github.com/xenking/storefront-api/pkg/pagination"
)

// ListResult is one page of a user's enriched orders plus its page info.
type ListResult struct {
	Orders []UserOrder
	Page   pagination.Page
}

// Service encapsulates order placement and listing business logic.
type Service struct {
	products product.Repository
	orders   Repository
}

// NewService creates an order Service with the required dependencies.
func NewService(products product.Repository, orders Repository) *Service {
	return &Service{products: products, orders: orders}
}

// CreateOrder validates the items against the catalog, computes the total
// from current catalog prices, persists the order, and returns the generated
// identifier.
//
// Validation and pricing share a single batch catalog lookup. There is no
// transaction spanning the lookup and the insert: a product deleted in
// between leaves the order referencing a missing product. That window is an
// accepted property of the design, narrowed by the single lookup but not
// eliminated.
func (s *Service) CreateOrder(ctx context.Context, userID string, items []Item) (string, error) {
	if len(items) == 0 {
		return "", apperror.Validation("Order must contain at least one item")
	}

	ids := make([]string, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Qty <= 0 {
			return "", apperror.Validation("Item quantity must be greater than zero")
		}
		if _, dup := seen[item.ProductID]; dup {
			return "", apperror.Validation("Duplicate products in order are not allowed")
		}
		seen[item.ProductID] = struct{}{}
		ids[i] = item.ProductID
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return "", errors.Wrap(err, "get products")
	}

	priceByID := make(map[string]decimal.Decimal, len(fetched))
	for _, p := range fetched {
		priceByID[p.ID] = p.Price
	}

	// Existence check runs before any pricing so the defaulting branch below
	// stays unreachable.
	for _, id := range ids {
		if _, ok := priceByID[id]; !ok {
			return "", apperror.NotFound("Product with ID %s not found", id)
		}
	}

	total := decimal.Zero
	for _, item := range items {
		// Missing products price at zero. The existence check above
		// guarantees this default is never taken.
		price := decimal.Zero
		if p, ok := priceByID[item.ProductID]; ok {
			price = p
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	id, err := s.orders.Create(ctx, Order{
		UserID:    userID,
		Items:     items,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", errors.Wrap(err, "create order")
	}
	return id, nil
}

// ListUserOrders returns one page of the user's orders with each item
// enriched with current product details. Page info is computed against the
// user's total order count. The page and count queries run concurrently.
//
// Enrichment is a single batch lookup over the union of product identifiers
// referenced by the page, never a per-item query. Items whose product no
// longer resolves get the UnknownProductName sentinel instead of failing the
// whole listing.
func (s *Service) ListUserOrders(ctx context.Context, userID string, limit, offset int) (*ListResult, error) {
	if err := pagination.Validate(limit, offset); err != nil {
		return nil, err
	}

	var (
		page  []Order
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = s.orders.FindByUser(gctx, userID, limit, offset)
		return errors.Wrap(err, "find orders")
	})
	g.Go(func() (err error) {
		total, err = s.orders.CountByUser(gctx, userID)
		return errors.Wrap(err, "count orders")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, page)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Orders: enriched,
		Page:   pagination.New(offset, limit, total, len(enriched)),
	}, nil
}

func (s *Service) enrich(ctx context.Context, orders []Order) ([]UserOrder, error) {
	idSet := make(map[string]struct{})
	for _, o := range orders {
		for _, item := range o.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	refByID := make(map[string]ProductRef, len(ids))
	if len(ids) > 0 {
		products, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			return nil, errors.Wrap(err, "get products for enrichment")
		}
		for _, p := range products {
			refByID[p.ID] = ProductRef{ID: p.ID, Name: p.Name}
		}
	}

	result := make([]UserOrder, len(orders))
	for i, o := range orders {
		items := make([]EnrichedItem, len(o.Items))
		for j, item := range o.Items {
			ref, ok := refByID[item.ProductID]
			if !ok {
				ref = ProductRef{ID: item.ProductID, Name: UnknownProductName}
			}
			items[j] = EnrichedItem{Product: ref, Qty: item.Qty}
		}
		result[i] = UserOrder{ID: o.ID, Items: items, Total: o.Total}
	}
	return result, nil
}
