// Package session exposes the tool-call surface of the assistant: a closed
// set of tagged request variants dispatched against per-session order state.
package session

import (
	"slices"

	"github.com/go-faster/errors"

	"github.com/dailypantry/pantry-assistant/internal/slotorder"
)

// ErrInvalidRequest marks requests rejected at the boundary before reaching
// the cart or validator: malformed fields, or a variant that does not apply
// to the session's mode.
var ErrInvalidRequest = errors.New("invalid request")

// Request is the closed set of tool-call variants. The conversational layer
// produces exactly one variant per tool invocation.
type Request interface {
	isRequest()
}

// AddItemRequest adds a catalog item or a whole recipe bundle to the cart.
// Quantity zero means "unspecified" and defaults to 1.
type AddItemRequest struct {
	Name     string
	Quantity int
	Notes    string
}

// ListCartRequest asks for the rendered cart summary.
type ListCartRequest struct{}

// SetSlotRequest assigns one named slot of a slot-filling order.
type SetSlotRequest struct {
	Slot  string
	Value string
}

// GetStatusRequest asks for the session's order progress.
type GetStatusRequest struct{}

// FinalizeRequest validates completeness, persists the order, and resets
// the session state. Customer fields apply to grocery sessions only; the
// coffee variant takes the customer name from its name slot.
type FinalizeRequest struct {
	CustomerName    string
	CustomerAddress string
}

func (AddItemRequest) isRequest()   {}
func (ListCartRequest) isRequest()  {}
func (SetSlotRequest) isRequest()   {}
func (GetStatusRequest) isRequest() {}
func (FinalizeRequest) isRequest()  {}

// validate rejects malformed requests before they reach the domain layer.
func validate(mode Mode, req Request) error {
	switch r := req.(type) {
	case AddItemRequest:
		if mode != ModeGrocery {
			return errors.Wrap(ErrInvalidRequest, "add_item applies to grocery sessions only")
		}
		if r.Name == "" {
			return errors.Wrap(ErrInvalidRequest, "item name required")
		}
		if r.Quantity < 0 {
			return errors.Wrap(ErrInvalidRequest, "quantity must be at least 1")
		}
	case ListCartRequest:
		if mode != ModeGrocery {
			return errors.Wrap(ErrInvalidRequest, "list_cart applies to grocery sessions only")
		}
	case SetSlotRequest:
		if mode != ModeCoffee {
			return errors.Wrap(ErrInvalidRequest, "set_slot applies to coffee sessions only")
		}
		if !slices.Contains(slotorder.SlotNames, r.Slot) {
			return errors.Wrapf(ErrInvalidRequest, "unknown slot %q", r.Slot)
		}
	case GetStatusRequest:
	case FinalizeRequest:
		if mode == ModeGrocery && (r.CustomerName == "" || r.CustomerAddress == "") {
			return errors.Wrap(ErrInvalidRequest, "customer name and address required")
		}
	default:
		return errors.Wrap(ErrInvalidRequest, "unsupported request variant")
	}
	return nil
}
