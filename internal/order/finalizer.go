package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Source is the schema-specific side of a finalize: it validates its own
// completeness and yields the customer info and line items to snapshot.
// The cart checkout and the slot-filling order each implement Source, so a
// single Finalizer covers both.
type Source interface {
	// Validate returns *EmptyCartError or *MissingFieldsError when the
	// order is not ready to finalize, nil otherwise.
	Validate() error
	Customer() CustomerInfo
	Lines() []LineItem
}

// Finalizer validates a Source, snapshots it into an immutable Record with
// computed totals and a fresh id, and persists it.
type Finalizer struct {
	store Store
	now   func() time.Time
}

// NewFinalizer creates a Finalizer writing to the given store.
func NewFinalizer(store Store) *Finalizer {
	return &Finalizer{store: store, now: time.Now}
}

// Finalize runs the full finalize path. Validation failures return the
// Source's error unchanged and perform no write. A persistence failure is
// wrapped and returned; the caller keeps its in-memory state so the user
// can retry.
func (f *Finalizer) Finalize(ctx context.Context, src Source) (*Record, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	now := f.now()
	lines := src.Lines()

	items := make([]LineItem, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		items[i] = l
		total = total.Add(l.LineTotal)
	}

	rec := &Record{
		ID:        NewID(now),
		Timestamp: now,
		Customer:  src.Customer(),
		Items:     items,
		Total:     total.Round(2),
	}

	if _, err := f.store.Save(ctx, rec); err != nil {
		return nil, errors.Wrapf(err, "persist order %s", rec.ID)
	}
	return rec, nil
}
