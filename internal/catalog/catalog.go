// Package catalog defines the product catalog: immutable items indexed by
// normalized name with exact and fuzzy lookup.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Item represents a product available for ordering. Items are immutable
// after the catalog is loaded.
type Item struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Units    string
	Tags     []string
}

// NotFoundError indicates a lookup query matched no catalog item, neither
// exactly nor fuzzily. It carries the unresolved query for the caller's
// diagnostics.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q not found in catalog", e.Query)
}

// Store provides read access to the catalog. Implementations are read-only
// after load and safe for concurrent use by multiple sessions.
type Store interface {
	// List returns all items in catalog iteration order.
	List(ctx context.Context) ([]Item, error)
	// Lookup resolves a query to an item: exact normalized-name match first,
	// then fuzzy (query substring of a name or of any tag). A miss returns
	// *NotFoundError.
	Lookup(ctx context.Context, query string) (*Item, error)
}

// Normalize lowercases and trims an item name for use as a catalog key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Match performs the lookup policy over an ordered item slice: exact
// normalized match first, then the first item (in slice order) whose
// normalized name contains the query, then the first item with a tag
// containing the query. Returns nil when nothing matches.
//
// Slice order decides fuzzy ties, so stores backed by an insertion-ordered
// slice resolve deterministically.
func Match(items []Item, query string) *Item {
	key := Normalize(query)
	if key == "" {
		return nil
	}

	for i := range items {
		if Normalize(items[i].Name) == key {
			return &items[i]
		}
	}

	for i := range items {
		if strings.Contains(Normalize(items[i].Name), key) {
			return &items[i]
		}
		for _, tag := range items[i].Tags {
			if strings.Contains(strings.ToLower(tag), key) {
				return &items[i]
			}
		}
	}

	return nil
}
