package catalog

import "context"

// Static is an in-memory Store over a fixed, insertion-ordered item slice.
// It backs the file store after load and seed, and serves as the test
// double everywhere a Store is needed without I/O.
type Static struct {
	items []Item
}

var _ Store = (*Static)(nil)

// NewStatic creates a Static store. The items slice is not copied; callers
// must not mutate it afterwards.
func NewStatic(items []Item) *Static {
	return &Static{items: items}
}

// List returns all items in insertion order.
func (s *Static) List(_ context.Context) ([]Item, error) {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Lookup resolves a query per the Store contract. Fuzzy ties resolve to the
// first match in insertion order.
func (s *Static) Lookup(_ context.Context, query string) (*Item, error) {
	if m := Match(s.items, query); m != nil {
		item := *m
		return &item, nil
	}
	return nil, &NotFoundError{Query: query}
}
