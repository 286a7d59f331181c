package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
)

const (
	listItemsSQL = `SELECT name, category, price, units, tags
		FROM catalog_items ORDER BY id`

	exactItemSQL = `SELECT name, category, price, units, tags
		FROM catalog_items WHERE lower(name) = lower($1)`

	// Fuzzy fallback: query as substring of the name or of any tag.
	// Insertion id order keeps first-match-wins deterministic.
	fuzzyItemSQL = `SELECT name, category, price, units, tags
		FROM catalog_items
		WHERE name ILIKE '%' || $1 || '%'
		   OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE '%' || $1 || '%')
		ORDER BY id LIMIT 1`

	upsertItemSQL = `INSERT INTO catalog_items (name, category, price, units, tags)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING`

	countItemsSQL = `SELECT count(*) FROM catalog_items`
)

// CatalogStore implements catalog.Store backed by PostgreSQL.
type CatalogStore struct {
	pool *pgxpool.Pool
}

var _ catalog.Store = (*CatalogStore)(nil)

// NewCatalogStore returns a CatalogStore that uses the given pool.
func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

// List returns all items ordered by insertion id.
func (s *CatalogStore) List(ctx context.Context) ([]catalog.Item, error) {
	rows, err := s.pool.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list catalog items")
	}
	return pgx.CollectRows(rows, scanItem)
}

// Lookup resolves a query: exact case-insensitive name match first, then the
// fuzzy fallback. A miss returns *catalog.NotFoundError.
func (s *CatalogStore) Lookup(ctx context.Context, query string) (*catalog.Item, error) {
	key := catalog.Normalize(query)
	if key == "" {
		return nil, &catalog.NotFoundError{Query: query}
	}

	item, err := s.queryOne(ctx, exactItemSQL, key)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(err, "lookup %q", query)
	}

	item, err = s.queryOne(ctx, fuzzyItemSQL, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &catalog.NotFoundError{Query: query}
		}
		return nil, errors.Wrapf(err, "fuzzy lookup %q", query)
	}
	return item, nil
}

// Seed inserts items that are not already present. Used by the one-time
// bootstrap and the seed command.
func (s *CatalogStore) Seed(ctx context.Context, items []catalog.Item) error {
	for _, it := range items {
		if _, err := s.pool.Exec(ctx, upsertItemSQL,
			it.Name, it.Category, it.Price, it.Units, it.Tags,
		); err != nil {
			return errors.Wrapf(err, "seed item %q", it.Name)
		}
	}
	return nil
}

// Count returns the number of catalog items.
func (s *CatalogStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, countItemsSQL).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count catalog items")
	}
	return n, nil
}

func (s *CatalogStore) queryOne(ctx context.Context, sql, arg string) (*catalog.Item, error) {
	rows, err := s.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanItem(row pgx.CollectableRow) (catalog.Item, error) {
	var (
		it    catalog.Item
		price decimal.Decimal
	)
	err := row.Scan(&it.Name, &it.Category, &price, &it.Units, &it.Tags)
	it.Price = price
	return it, err
}
