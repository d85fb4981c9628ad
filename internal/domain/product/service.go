package product

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront-api/internal/apperror"
	"github.com/xenking/storefront-api/pkg/pagination"
)

// MaxNameLength is the longest accepted product name, in characters.
const MaxNameLength = 200

// ListResult is one page of the catalog plus its page info. Sizes are
// intentionally omitted from list responses.
type ListResult struct {
	Products []Product
	Page     pagination.Page
}

// Service encapsulates catalog business logic.
type Service struct {
	products Repository
}

// NewService creates a catalog Service backed by the given repository.
func NewService(products Repository) *Service {
	return &Service{products: products}
}

// CreateProduct validates the product invariants and persists it, returning
// the generated identifier.
func (s *Service) CreateProduct(ctx context.Context, p Product) (string, error) {
	if err := validateProduct(p); err != nil {
		return "", err
	}

	id, err := s.products.Create(ctx, p)
	if err != nil {
		return "", errors.Wrap(err, "create product")
	}
	return id, nil
}

// ListProducts returns one page of products matching the filter. Page info is
// computed against the count of products matching the same filter, not the
// unfiltered catalog size. The count and page queries run concurrently.
func (s *Service) ListProducts(ctx context.Context, f Filter, limit, offset int) (*ListResult, error) {
	if err := pagination.Validate(limit, offset); err != nil {
		return nil, err
	}

	var (
		page  []Product
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = s.products.Find(gctx, f, limit, offset)
		return errors.Wrap(err, "find products")
	})
	g.Go(func() (err error) {
		total, err = s.products.Count(gctx, f)
		return errors.Wrap(err, "count products")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListResult{
		Products: page,
		Page:     pagination.New(offset, limit, total, len(page)),
	}, nil
}

// GetProductsByIDs resolves a batch of product identifiers. Malformed and
// unknown identifiers are dropped without error; callers that need strict
// existence checks compare the result set against their input.
func (s *Service) GetProductsByIDs(ctx context.Context, ids []string) ([]Product, error) {
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products by ids")
	}
	return products, nil
}

func validateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.Validation("Product name cannot be empty")
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return apperror.Validation("Product name must be at most %d characters", MaxNameLength)
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return apperror.Validation("Product price must be greater than zero")
	}

	seen := make(map[string]struct{}, len(p.Sizes))
	for _, sz := range p.Sizes {
		if strings.TrimSpace(sz.Name) == "" {
			return apperror.Validation("Size name cannot be empty")
		}
		if sz.Quantity < 0 {
			return apperror.Validation("Size quantity must be non-negative")
		}
		if _, dup := seen[sz.Name]; dup {
			return apperror.Validation("Duplicate sizes are not allowed")
		}
		seen[sz.Name] = struct{}{}
	}
	return nil
}
