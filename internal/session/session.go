package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dailypantry/pantry-assistant/internal/cart"
	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/checkout"
	"github.com/dailypantry/pantry-assistant/internal/order"
	"github.com/dailypantry/pantry-assistant/internal/slotorder"
)

// Mode selects which order variant a session runs.
type Mode string

const (
	// ModeGrocery is the free-form cart variant.
	ModeGrocery Mode = "grocery"
	// ModeCoffee is the slot-filling variant.
	ModeCoffee Mode = "coffee"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGrocery, ModeCoffee:
		return Mode(s), nil
	default:
		return "", errors.Wrapf(ErrInvalidRequest, "unknown session mode %q", s)
	}
}

// Deps are the process-wide services shared by all sessions. All of them
// are safe for concurrent use.
type Deps struct {
	Cart      *cart.Service
	Checkout  *checkout.Service
	SlotOrder *slotorder.Service
}

// Session owns one conversation's order state exclusively. Requests are
// handled one at a time; the mutex serializes callers that arrive
// concurrently over the transport.
type Session struct {
	mode Mode
	deps Deps

	mu    sync.Mutex
	cart  *cart.Cart
	slots *slotorder.State
}

// New creates a session for the given mode.
func New(mode Mode, deps Deps) *Session {
	return &Session{
		mode:  mode,
		deps:  deps,
		cart:  cart.New(),
		slots: slotorder.New(),
	}
}

// Mode returns the session's order variant.
func (s *Session) Mode() Mode {
	return s.mode
}

// Handle validates and executes one tool call, returning the textual result
// for the conversational layer. Recoverable domain outcomes (item not
// found, empty cart, missing slots, persistence failure) come back as text,
// never as an error; the only errors returned are boundary rejections
// (wrapping ErrInvalidRequest).
func (s *Session) Handle(ctx context.Context, req Request) (string, error) {
	if err := validate(s.mode, req); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r := req.(type) {
	case AddItemRequest:
		return s.addItem(ctx, r)
	case ListCartRequest:
		return s.cart.Summary(), nil
	case SetSlotRequest:
		if err := s.slots.Set(r.Slot, r.Value); err != nil {
			return "", errors.Wrap(ErrInvalidRequest, err.Error())
		}
		return fmt.Sprintf("Set %s to %q.", r.Slot, r.Value), nil
	case GetStatusRequest:
		return s.status(), nil
	case FinalizeRequest:
		return s.finalize(ctx, r)
	default:
		return "", errors.Wrap(ErrInvalidRequest, "unsupported request variant")
	}
}

func (s *Session) addItem(ctx context.Context, r AddItemRequest) (string, error) {
	qty := r.Quantity
	if qty == 0 {
		qty = 1
	}

	msg, err := s.deps.Cart.AddItem(ctx, s.cart, r.Name, qty, r.Notes)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			return fmt.Sprintf("I could not find %q in the catalog. Please try a different item or check the spelling.", nf.Query), nil
		}
		return s.apologize(ctx, "add item", err), nil
	}
	return msg, nil
}

func (s *Session) status() string {
	if s.mode == ModeCoffee {
		return s.slots.Status()
	}
	if s.cart.IsEmpty() {
		return cart.EmptySummary
	}
	return fmt.Sprintf("Order in progress: %d line(s), total $%s.",
		s.cart.Len(), s.cart.Total().StringFixed(2))
}

func (s *Session) finalize(ctx context.Context, r FinalizeRequest) (string, error) {
	var (
		msg string
		err error
	)
	if s.mode == ModeCoffee {
		msg, err = s.deps.SlotOrder.Finalize(ctx, s.slots)
	} else {
		msg, err = s.deps.Checkout.PlaceOrder(ctx, s.cart, r.CustomerName, r.CustomerAddress)
	}
	if err == nil {
		return msg, nil
	}

	var ec *order.EmptyCartError
	if errors.As(err, &ec) {
		return "The cart is empty. Please add items before placing an order.", nil
	}
	var mf *order.MissingFieldsError
	if errors.As(err, &mf) {
		return fmt.Sprintf("I still need a few details before placing the order: %s.",
			strings.Join(mf.Fields, ", ")), nil
	}
	return s.apologize(ctx, "finalize", err), nil
}

// apologize logs an unexpected failure and returns the generic apology. The
// in-memory state is left untouched so the user can retry.
func (s *Session) apologize(ctx context.Context, op string, err error) string {
	zctx.From(ctx).Error("Tool call failed",
		zap.String("op", op),
		zap.String("mode", string(s.mode)),
		zap.Error(err),
	)
	return "Sorry, I ran into a problem handling that. Your order so far is intact, please try again."
}
