package slotorder

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/order"
)

// Service finalizes slot orders through the shared order finalizer.
type Service struct {
	finalizer *order.Finalizer
	catalog   catalog.Store
}

// NewService creates a slot-order Service. The catalog is consulted for a
// unit price of the drink at finalize time; drinks without a catalog entry
// are persisted at a zero price.
func NewService(finalizer *order.Finalizer, store catalog.Store) *Service {
	return &Service{finalizer: finalizer, catalog: store}
}

// source adapts a State plus a resolved unit price to order.Source.
type source struct {
	state *State
	price decimal.Decimal
}

func (s *source) Validate() error {
	if missing := s.state.Missing(); len(missing) > 0 {
		return &order.MissingFieldsError{Fields: missing}
	}
	return nil
}

func (s *source) Customer() order.CustomerInfo {
	return order.CustomerInfo{Name: s.state.CustomerName()}
}

func (s *source) Lines() []order.LineItem {
	return []order.LineItem{{
		Name:      s.state.Describe(),
		Quantity:  1,
		UnitPrice: s.price,
	}}
}

// Finalize validates completeness, persists the order, resets the state,
// and returns a confirmation carrying the rendered drink summary and the
// customer name. When slots are missing it returns *order.MissingFieldsError
// and writes nothing; persistence failures leave the state intact for retry.
func (s *Service) Finalize(ctx context.Context, st *State) (string, error) {
	price := decimal.Zero
	if st.IsComplete() {
		if item, err := s.catalog.Lookup(ctx, st.Drink()); err == nil {
			price = item.Price
		}
	}

	rec, err := s.finalizer.Finalize(ctx, &source{state: st, price: price})
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Your order (ID: %s) has been placed: %s for %s. Thank you!",
		rec.ID, st.Describe(), st.CustomerName())
	st.Reset()
	return msg, nil
}
