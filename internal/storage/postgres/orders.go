package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailypantry/pantry-assistant/internal/order"
)

const insertOrderSQL = `INSERT INTO orders (id, created_at, customer_name, customer_address, items, total)
	VALUES ($1, $2, $3, $4, $5, $6)`

// orderItemJSON mirrors the JSONB line item shape.
type orderItemJSON struct {
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
	Notes     string `json:"notes"`
}

// OrderStore implements order.Store backed by PostgreSQL. Each record is a
// single-statement insert, so a failed write leaves no partial row.
type OrderStore struct {
	pool *pgxpool.Pool
}

var _ order.Store = (*OrderStore)(nil)

// NewOrderStore returns an OrderStore that uses the given pool.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Save inserts the record and returns its id. Line items are serialized to
// JSON for the JSONB column.
func (s *OrderStore) Save(ctx context.Context, rec *order.Record) (string, error) {
	items := make([]orderItemJSON, len(rec.Items))
	for i, it := range rec.Items {
		items[i] = orderItemJSON{
			ItemName:  it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			LineTotal: it.LineTotal.StringFixed(2),
			Notes:     it.Notes,
		}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", errors.Wrapf(err, "marshal items for order %s", rec.ID)
	}

	if _, err := s.pool.Exec(ctx, insertOrderSQL,
		rec.ID, rec.Timestamp, rec.Customer.Name, rec.Customer.Address, itemsJSON, rec.Total,
	); err != nil {
		return "", errors.Wrapf(err, "insert order %s", rec.ID)
	}
	return rec.ID, nil
}
