package checkout

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailypantry/pantry-assistant/internal/cart"
	"github.com/dailypantry/pantry-assistant/internal/order"
)

type mockStore struct {
	saved []*order.Record
	err   error
}

func (m *mockStore) Save(_ context.Context, rec *order.Record) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, rec)
	return rec.ID, nil
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	store := &mockStore{}
	svc := NewService(order.NewFinalizer(store))

	_, err := svc.PlaceOrder(context.Background(), cart.New(), "Jane", "12 Oak St")

	var ec *order.EmptyCartError
	require.True(t, errors.As(err, &ec))
	assert.Empty(t, store.saved)
}

func TestPlaceOrder_PersistsAndClearsCart(t *testing.T) {
	store := &mockStore{}
	svc := NewService(order.NewFinalizer(store))

	c := cart.New()
	c.Add("Milk (gallon)", 2, decimal.RequireFromString("3.00"), "")
	c.Add("Bacon (pack)", 1, decimal.RequireFromString("8.00"), "thick cut")

	msg, err := svc.PlaceOrder(context.Background(), c, "Jane", "12 Oak St")
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	rec := store.saved[0]
	assert.True(t, decimal.RequireFromString("14.00").Equal(rec.Total))
	assert.Equal(t, "Jane", rec.Customer.Name)
	assert.Equal(t, "12 Oak St", rec.Customer.Address)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, "thick cut", rec.Items[1].Notes)

	assert.Contains(t, msg, rec.ID)
	assert.Contains(t, msg, "$14.00")
	assert.True(t, c.IsEmpty())
}

func TestPlaceOrder_PersistenceFailureKeepsCart(t *testing.T) {
	svc := NewService(order.NewFinalizer(&mockStore{err: errors.New("disk full")}))

	c := cart.New()
	c.Add("Milk (gallon)", 1, decimal.RequireFromString("3.00"), "")

	_, err := svc.PlaceOrder(context.Background(), c, "Jane", "12 Oak St")
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
}
