// Package slotorder implements the slot-filling order variant: a fixed set
// of named slots (drink, size, milk, extras, customer name), each nullable
// until set, finalized only when every slot has a value.
package slotorder

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// Slot names, in the fixed order used for missing-field diagnostics.
const (
	SlotDrink  = "drink"
	SlotSize   = "size"
	SlotMilk   = "milk"
	SlotExtras = "extras"
	SlotName   = "name"
)

// SlotNames lists every slot in diagnostic order.
var SlotNames = []string{SlotDrink, SlotSize, SlotMilk, SlotExtras, SlotName}

// ErrUnknownSlot is returned by Set for a slot name outside the schema.
var ErrUnknownSlot = errors.New("unknown slot")

// State holds one session's slot values. A nil slot means "not yet asked";
// for extras, an empty non-nil list means "asked, answered none" and counts
// as set. State is owned by a single session.
type State struct {
	drink  *string
	size   *string
	milk   *string
	extras *[]string
	name   *string
}

// New creates an empty slot order.
func New() *State {
	return &State{}
}

// Set assigns a slot value, overwriting any previous value. The extras slot
// parses its value as a comma-separated list; an empty value yields the
// empty list ("none, thanks"). Other slots reject empty values.
func (s *State) Set(slot, value string) error {
	value = strings.TrimSpace(value)

	if slot == SlotExtras {
		extras := splitExtras(value)
		s.extras = &extras
		return nil
	}

	if value == "" {
		return errors.Errorf("slot %q requires a value", slot)
	}

	switch slot {
	case SlotDrink:
		s.drink = &value
	case SlotSize:
		s.size = &value
	case SlotMilk:
		s.milk = &value
	case SlotName:
		s.name = &value
	default:
		return errors.Wrapf(ErrUnknownSlot, "%q", slot)
	}
	return nil
}

func splitExtras(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	extras := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			extras = append(extras, p)
		}
	}
	return extras
}

// IsComplete reports whether every slot is set. An empty extras list is set;
// a nil extras slot is not.
func (s *State) IsComplete() bool {
	return len(s.Missing()) == 0
}

// Missing returns the names of still-null slots in fixed order.
func (s *State) Missing() []string {
	var missing []string
	if s.drink == nil {
		missing = append(missing, SlotDrink)
	}
	if s.size == nil {
		missing = append(missing, SlotSize)
	}
	if s.milk == nil {
		missing = append(missing, SlotMilk)
	}
	if s.extras == nil {
		missing = append(missing, SlotExtras)
	}
	if s.name == nil {
		missing = append(missing, SlotName)
	}
	return missing
}

// CustomerName returns the name slot, or "" when unset.
func (s *State) CustomerName() string {
	if s.name == nil {
		return ""
	}
	return *s.name
}

// Drink returns the drink slot, or "" when unset.
func (s *State) Drink() string {
	if s.drink == nil {
		return ""
	}
	return *s.drink
}

// Describe renders the drink summary: "<Size> <Drink> with <Milk> milk",
// followed by ", extras: a, b" only when extras are present. Unset slots
// render as empty segments, so callers should check IsComplete first.
func (s *State) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s with %s milk",
		capitalize(deref(s.size)), capitalize(deref(s.drink)), capitalize(deref(s.milk)))
	if s.extras != nil && len(*s.extras) > 0 {
		fmt.Fprintf(&b, ", extras: %s", strings.Join(*s.extras, ", "))
	}
	return b.String()
}

// Status renders fill progress for the conversational layer.
func (s *State) Status() string {
	if s.IsComplete() {
		return fmt.Sprintf("Order ready to finalize: %s for %s.", s.Describe(), s.CustomerName())
	}
	return fmt.Sprintf("Still needed: %s.", strings.Join(s.Missing(), ", "))
}

// Reset returns every slot to null. Used after a successful finalize.
func (s *State) Reset() {
	*s = State{}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// capitalize upper-cases the first letter of each word, leaving the rest of
// the word as given ("oat" -> "Oat", "flat white" -> "Flat White").
func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
