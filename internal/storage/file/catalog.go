// Package file implements the catalog and order stores over plain files:
// one JSON document for the catalog, one JSON file per finalized order.
package file

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
)

// catalogItemJSON is the on-disk catalog entry shape.
type catalogItemJSON struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Units    string          `json:"units"`
	Tags     []string        `json:"tags"`
}

// CatalogStore is a catalog.Store loaded once from a JSON file. After load
// it is immutable and safe for concurrent reads.
type CatalogStore struct {
	static *catalog.Static
	path   string
}

var _ catalog.Store = (*CatalogStore)(nil)

// OpenCatalog loads the catalog file at path. When the file does not exist
// it seeds the fixed default set and persists it before first use; this is
// a one-time bootstrap, not a repeated side effect.
func OpenCatalog(path string) (*CatalogStore, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat catalog %q", path)
		}
		if err := writeCatalog(path, catalog.DefaultItems()); err != nil {
			return nil, errors.Wrap(err, "seed catalog")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %q", path)
	}

	var entries []catalogItemJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "parse catalog %q", path)
	}

	items := make([]catalog.Item, len(entries))
	for i, e := range entries {
		if e.Price.IsNegative() {
			return nil, errors.Errorf("catalog item %q has negative price %s", e.Name, e.Price)
		}
		items[i] = catalog.Item{
			Name:     e.Name,
			Category: e.Category,
			Price:    e.Price,
			Units:    e.Units,
			Tags:     e.Tags,
		}
	}

	return &CatalogStore{static: catalog.NewStatic(items), path: path}, nil
}

// List returns all items in file order.
func (s *CatalogStore) List(ctx context.Context) ([]catalog.Item, error) {
	return s.static.List(ctx)
}

// Lookup resolves a query per the catalog.Store contract. File order decides
// fuzzy ties, so resolution is deterministic.
func (s *CatalogStore) Lookup(ctx context.Context, query string) (*catalog.Item, error) {
	return s.static.Lookup(ctx, query)
}

// WriteCatalog atomically persists items to path via temp-file-then-rename,
// replacing any existing catalog file. Used by the seeding tool.
func WriteCatalog(path string, items []catalog.Item) error {
	return writeCatalog(path, items)
}

// writeCatalog atomically persists items to path via temp-file-then-rename.
func writeCatalog(path string, items []catalog.Item) error {
	entries := make([]catalogItemJSON, len(items))
	for i, it := range items {
		entries[i] = catalogItemJSON{
			Name:     it.Name,
			Category: it.Category,
			Price:    it.Price,
			Units:    it.Units,
			Tags:     it.Tags,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal catalog")
	}
	return atomicWrite(path, data)
}
