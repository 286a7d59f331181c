// Package order defines the finalized order record, the persistence
// contract, and the generic validator/finalizer shared by the free-form
// cart checkout and the slot-filling order flows.
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerInfo identifies the customer on a finalized order.
type CustomerInfo struct {
	Name    string
	Address string
}

// LineItem is one snapshotted order line. LineTotal is computed at finalize
// time and never recalculated afterwards.
type LineItem struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Notes     string
}

// Record is a finalized order. It is write-once: created at finalize,
// persisted, and never mutated.
type Record struct {
	ID        string
	Timestamp time.Time
	Customer  CustomerInfo
	Items     []LineItem
	Total     decimal.Decimal
}

// Store persists finalized orders. Each record targets a distinct storage
// location derived from its id; writes across sessions need no shared lock.
type Store interface {
	// Save durably writes the record and returns a storage identifier
	// (file path, row id). Either the full record lands or an error is
	// returned; no torn writes.
	Save(ctx context.Context, rec *Record) (string, error)
}

// NewID returns an order identifier for the given time: a second-resolution
// timestamp plus a random fragment, so two finalizes within the same second
// still get distinct ids.
func NewID(t time.Time) string {
	return t.Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// EmptyCartError reports a finalize attempt on an empty cart.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

// MissingFieldsError reports a finalize attempt before all required slots
// are set. Fields are listed in the schema's fixed order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
