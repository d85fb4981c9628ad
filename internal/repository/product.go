package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-api/internal/apperror"
	"github.com/xenking/storefront-api/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// sizeDoc is the JSONB document layout for one size entry.
type sizeDoc struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Create persists a product under a freshly minted UUIDv7 identifier and
// returns it.
func (r *ProductRepository) Create(ctx context.Context, p product.Product) (string, error) {
	docs := make([]sizeDoc, len(p.Sizes))
	for i, s := range p.Sizes {
		docs[i] = sizeDoc{Size: s.Name, Quantity: s.Quantity}
	}
	sizesJSON, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("marshaling sizes: %w", err)
	}

	id := uuid.Must(uuid.NewV7()).String()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO products (id, name, price, sizes) VALUES ($1, $2, $3, $4)`,
		id, p.Name, p.Price, sizesJSON,
	)
	if err != nil {
		return "", apperror.Database("Failed to create product", err)
	}
	return id, nil
}

// Find returns one page of products matching the filter, ordered by
// ascending identifier.
func (r *ProductRepository) Find(ctx context.Context, f product.Filter, limit, offset int) ([]product.Product, error) {
	where, args := productFilterSQL(f)
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, name, price, sizes FROM products%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Database("Failed to retrieve products", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, apperror.Database("Failed to retrieve products", err)
	}
	return products, nil
}

// Count returns the number of products matching the filter.
func (r *ProductRepository) Count(ctx context.Context, f product.Filter) (int, error) {
	where, args := productFilterSQL(f)

	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, apperror.Database("Failed to count products", err)
	}
	return count, nil
}

// GetByIDs returns the products matching any of the given identifiers in one
// round trip. Identifiers that are not valid UUIDs are dropped before the
// query; identifiers without a matching row are simply absent from the
// result.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if uuid.Validate(id) == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, sizes FROM products WHERE id = ANY($1)`, valid)
	if err != nil {
		return nil, apperror.Database("Failed to retrieve products", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, apperror.Database("Failed to retrieve products", err)
	}
	return products, nil
}

// productFilterSQL builds the WHERE clause and positional arguments for a
// catalog filter. Name matches case-insensitively as a substring; Size uses
// JSONB containment against the sizes array, which the GIN index covers.
func productFilterSQL(f product.Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Name != "" {
		args = append(args, "%"+escapeLike(f.Name)+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Size != "" {
		match, _ := json.Marshal([]map[string]string{{"size": f.Size}})
		args = append(args, string(match))
		clauses = append(clauses, fmt.Sprintf("sizes @> $%d::jsonb", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so the name filter matches the
// literal substring. Backslash is the default ILIKE escape character.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var (
		p         product.Product
		price     decimal.Decimal
		sizesJSON []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &sizesJSON); err != nil {
		return p, err
	}
	p.Price = price

	var docs []sizeDoc
	if err := json.Unmarshal(sizesJSON, &docs); err != nil {
		return p, fmt.Errorf("unmarshaling sizes: %w", err)
	}
	p.Sizes = make([]product.Size, len(docs))
	for i, d := range docs {
		p.Sizes[i] = product.Size{Name: d.Size, Quantity: d.Quantity}
	}
	return p, nil
}
