package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dailypantry/pantry-assistant/internal/order"
)

// orderJSON is the on-disk finalized order shape.
type orderJSON struct {
	OrderID      string          `json:"order_id"`
	Timestamp    time.Time       `json:"timestamp"`
	CustomerInfo customerJSON    `json:"customer_info"`
	Items        []orderItemJSON `json:"items"`
	OrderTotal   decimal.Decimal `json:"order_total"`
}

type customerJSON struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type orderItemJSON struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Notes     string          `json:"notes"`
}

// OrderStore persists each finalized order as its own JSON file under a
// directory. Files are written via temp-file-then-rename, so a crashed
// write never leaves a torn record behind.
type OrderStore struct {
	dir string
}

var _ order.Store = (*OrderStore)(nil)

// NewOrderStore creates the orders directory if needed.
func NewOrderStore(dir string) (*OrderStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create orders dir %q", dir)
	}
	return &OrderStore{dir: dir}, nil
}

// Dir returns the orders directory.
func (s *OrderStore) Dir() string {
	return s.dir
}

// Save writes the record to order_<id>.json and returns the file path.
// Record ids carry a random suffix, so concurrent saves from different
// sessions target distinct paths.
func (s *OrderStore) Save(_ context.Context, rec *order.Record) (string, error) {
	doc := orderJSON{
		OrderID:   rec.ID,
		Timestamp: rec.Timestamp,
		CustomerInfo: customerJSON{
			Name:    rec.Customer.Name,
			Address: rec.Customer.Address,
		},
		Items:      make([]orderItemJSON, len(rec.Items)),
		OrderTotal: rec.Total,
	}
	for i, it := range rec.Items {
		doc.Items[i] = orderItemJSON{
			ItemName:  it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
			Notes:     it.Notes,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "marshal order %s", rec.ID)
	}

	path := filepath.Join(s.dir, "order_"+rec.ID+".json")
	if err := atomicWrite(path, data); err != nil {
		return "", errors.Wrapf(err, "write order %s", rec.ID)
	}
	return path, nil
}

// atomicWrite lands data at path via a temp file in the same directory and
// a rename, so readers never observe a partial write.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
