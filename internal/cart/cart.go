// Package cart holds per-session cart state: insertion-ordered line items
// merged by normalized name, with decimal totals and summary rendering.
package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
)

// EmptySummary is the sentinel returned by Summary for a cart with no lines.
const EmptySummary = "Your cart is currently empty."

// Line is a single cart entry. Quantity accumulates across adds; the unit
// price is snapshotted when the line is created, and notes are set only at
// line creation.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Notes     string
}

// LineTotal returns quantity times unit price.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an insertion-ordered collection of lines. At most one line exists
// per normalized item name. A Cart is owned by exactly one session and is
// not safe for concurrent use.
type Cart struct {
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges quantity into an existing line for the item (matching by
// normalized name) or appends a new line with the given price snapshot and
// notes. It returns the resulting line and whether an existing line was
// merged into.
func (c *Cart) Add(name string, quantity int, price decimal.Decimal, notes string) (Line, bool) {
	key := catalog.Normalize(name)
	for i := range c.lines {
		if catalog.Normalize(c.lines[i].Name) == key {
			c.lines[i].Quantity += quantity
			return c.lines[i], true
		}
	}

	line := Line{Name: name, Quantity: quantity, UnitPrice: price, Notes: notes}
	c.lines = append(c.lines, line)
	return line, false
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total returns the sum of quantity times unit price over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Clear empties the cart. Only the finalize path calls this.
func (c *Cart) Clear() {
	c.lines = nil
}

// Summary renders the cart: one row per line in insertion order with
// quantity, unit price and line total, followed by the grand total.
func (c *Cart) Summary() string {
	if c.IsEmpty() {
		return EmptySummary
	}

	var b strings.Builder
	b.WriteString("Current Cart:")
	for _, l := range c.lines {
		fmt.Fprintf(&b, "\n- %d x %s ($%s each) -> $%s",
			l.Quantity, l.Name,
			l.UnitPrice.StringFixed(2), l.LineTotal().StringFixed(2),
		)
	}
	fmt.Fprintf(&b, "\nTOTAL: $%s", c.Total().StringFixed(2))
	return b.String()
}
