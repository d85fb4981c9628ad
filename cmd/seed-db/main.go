// Command seed-db resets the product catalog to the sample data set. It
// truncates both collections, reapplies the schema, and inserts the products
// from a JSON file (optionally gzip-compressed).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-api/internal/domain/product"
	"github.com/xenking/storefront-api/internal/repository"
)

type productJSON struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Sizes []struct {
		Size     string `json:"size"`
		Quantity int    `json:"quantity"`
	} `json:"sizes"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file (.gz supported)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	products, err := readProducts(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products")
	}

	slog.Info("clearing existing data")

	if _, err := pool.Exec(ctx, `TRUNCATE products, orders`); err != nil {
		return errors.Wrap(err, "truncate collections")
	}

	slog.Info("inserting products", slog.Int("count", len(products)))

	repo := repository.NewProductRepository(pool)
	for _, p := range products {
		sizes := make([]product.Size, len(p.Sizes))
		for i, s := range p.Sizes {
			sizes[i] = product.Size{Name: s.Size, Quantity: s.Quantity}
		}

		id, err := repo.Create(ctx, product.Product{
			Name:  p.Name,
			Price: p.Price,
			Sizes: sizes,
		})
		if err != nil {
			return errors.Wrapf(err, "insert product %q", p.Name)
		}

		slog.Info("inserted product", slog.String("id", id), slog.String("name", p.Name))
	}

	return nil
}

// readProducts parses the products file. Files ending in .gz are
// decompressed on the fly.
func readProducts(path string) ([]productJSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		reader = gz
	}

	var products []productJSON
	if err := json.NewDecoder(reader).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "parse products JSON")
	}
	return products, nil
}
