// Command seed-catalog populates the catalog in the configured storage
// backend, either from a JSON items file or from the built-in default set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/storage/file"
	"github.com/dailypantry/pantry-assistant/internal/storage/postgres"
)

type itemJSON struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Units    string          `json:"units"`
	Tags     []string        `json:"tags"`
}

func main() {
	var (
		backend     string
		itemsFile   string
		catalogPath string
		databaseURL string
	)

	flag.StringVar(&backend, "storage", "file", "storage backend: file or postgres")
	flag.StringVar(&itemsFile, "items-file", "", "path to items JSON file (default: built-in items)")
	flag.StringVar(&catalogPath, "catalog-path", "data/catalog.json", "catalog file path (file backend)")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, backend, itemsFile, catalogPath, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, backend, itemsFile, catalogPath, databaseURL string) error {
	items, err := loadItems(itemsFile)
	if err != nil {
		return err
	}

	slog.Info("seeding catalog", slog.String("storage", backend), slog.Int("items", len(items)))

	switch backend {
	case "file":
		if err := file.WriteCatalog(catalogPath, items); err != nil {
			return errors.Wrap(err, "write catalog file")
		}
		slog.Info("wrote catalog file", slog.String("path", catalogPath))
		return nil

	case "postgres":
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
		if databaseURL == "" {
			return errors.New("database URL is required: set --database-url or DATABASE_URL")
		}

		slog.Info("connecting to database")
		pool, err := postgres.NewPool(ctx, databaseURL)
		if err != nil {
			return errors.Wrap(err, "connect to database")
		}
		defer pool.Close()

		slog.Info("running migrations")
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		store := postgres.NewCatalogStore(pool)
		if err := store.Seed(ctx, items); err != nil {
			return errors.Wrap(err, "seed catalog")
		}

		total, err := store.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "count catalog items")
		}
		slog.Info("catalog seeded", slog.Int64("total_items", total))
		return nil

	default:
		return errors.Errorf("unknown storage backend %q", backend)
	}
}

// loadItems reads items from the given JSON file, falling back to the
// built-in default set when no file is specified.
func loadItems(path string) ([]catalog.Item, error) {
	if path == "" {
		return catalog.DefaultItems(), nil
	}

	slog.Info("reading items file", slog.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read items file")
	}

	var entries []itemJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "parse items JSON")
	}

	items := make([]catalog.Item, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, errors.Errorf("item %d has no name", i)
		}
		if e.Price.IsNegative() {
			return nil, errors.Errorf("item %q has negative price %s", e.Name, e.Price)
		}
		items[i] = catalog.Item{
			Name:     e.Name,
			Category: e.Category,
			Price:    e.Price,
			Units:    e.Units,
			Tags:     e.Tags,
		}
	}
	return items, nil
}
