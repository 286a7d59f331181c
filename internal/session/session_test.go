package session

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailypantry/pantry-assistant/internal/cart"
	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/checkout"
	"github.com/dailypantry/pantry-assistant/internal/order"
	"github.com/dailypantry/pantry-assistant/internal/recipe"
	"github.com/dailypantry/pantry-assistant/internal/slotorder"
)

type memOrderStore struct {
	saved []*order.Record
	err   error
}

func (m *memOrderStore) Save(_ context.Context, rec *order.Record) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, rec)
	return rec.ID, nil
}

func newDeps(store order.Store) Deps {
	items := append(catalog.DefaultItems(), catalog.Item{
		Name: "Latte", Category: "Drinks", Price: decimal.RequireFromString("4.25"), Units: "cup",
	})
	cat := catalog.NewStatic(items)
	finalizer := order.NewFinalizer(store)
	return Deps{
		Cart:      cart.NewService(cat, recipe.NewResolver(recipe.DefaultDefinitions(), cat)),
		Checkout:  checkout.NewService(finalizer),
		SlotOrder: slotorder.NewService(finalizer, cat),
	}
}

func TestGrocery_AddMergesFuzzyMatches(t *testing.T) {
	store := &memOrderStore{}
	s := New(ModeGrocery, newDeps(store))
	ctx := context.Background()

	msg, err := s.Handle(ctx, AddItemRequest{Name: "Milk", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Added 2 x Milk (gallon) to the cart.", msg)

	msg, err = s.Handle(ctx, AddItemRequest{Name: "milk", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "Increased quantity of Milk (gallon) to 3.", msg)

	msg, err = s.Handle(ctx, ListCartRequest{})
	require.NoError(t, err)
	assert.Contains(t, msg, "- 3 x Milk (gallon) ($3.00 each) -> $9.00")
	assert.Contains(t, msg, "TOTAL: $9.00")
}

func TestGrocery_BundleAddsTwoLines(t *testing.T) {
	s := New(ModeGrocery, newDeps(&memOrderStore{}))
	ctx := context.Background()

	_, err := s.Handle(ctx, AddItemRequest{Name: "ingredients for pasta for two", Quantity: 1})
	require.NoError(t, err)

	msg, err := s.Handle(ctx, ListCartRequest{})
	require.NoError(t, err)
	assert.Contains(t, msg, "- 1 x Spaghetti Pasta ($1.50 each) -> $1.50")
	assert.Contains(t, msg, "- 1 x Tomato Sauce ($2.20 each) -> $2.20")
}

func TestGrocery_NotFoundIsTextNotError(t *testing.T) {
	s := New(ModeGrocery, newDeps(&memOrderStore{}))

	msg, err := s.Handle(context.Background(), AddItemRequest{Name: "caviar"})
	require.NoError(t, err)
	assert.Contains(t, msg, `"caviar"`)
	assert.Contains(t, msg, "could not find")
}

func TestGrocery_FinalizeFlow(t *testing.T) {
	store := &memOrderStore{}
	s := New(ModeGrocery, newDeps(store))
	ctx := context.Background()

	// Empty cart surfaces as text.
	msg, err := s.Handle(ctx, FinalizeRequest{CustomerName: "Jane", CustomerAddress: "12 Oak St"})
	require.NoError(t, err)
	assert.Contains(t, msg, "cart is empty")
	assert.Empty(t, store.saved)

	_, err = s.Handle(ctx, AddItemRequest{Name: "Bacon (pack)", Quantity: 2})
	require.NoError(t, err)

	msg, err = s.Handle(ctx, FinalizeRequest{CustomerName: "Jane", CustomerAddress: "12 Oak St"})
	require.NoError(t, err)
	assert.Contains(t, msg, "$16.00")
	require.Len(t, store.saved, 1)

	// Cart resets after a successful finalize.
	msg, err = s.Handle(ctx, ListCartRequest{})
	require.NoError(t, err)
	assert.Equal(t, cart.EmptySummary, msg)
}

func TestGrocery_FinalizeRequiresCustomerFields(t *testing.T) {
	s := New(ModeGrocery, newDeps(&memOrderStore{}))

	_, err := s.Handle(context.Background(), FinalizeRequest{CustomerName: "Jane"})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestGrocery_PersistenceFailureKeepsCartAndApologizes(t *testing.T) {
	s := New(ModeGrocery, newDeps(&memOrderStore{err: errors.New("disk full")}))
	ctx := context.Background()

	_, err := s.Handle(ctx, AddItemRequest{Name: "Milk", Quantity: 1})
	require.NoError(t, err)

	msg, err := s.Handle(ctx, FinalizeRequest{CustomerName: "Jane", CustomerAddress: "12 Oak St"})
	require.NoError(t, err)
	assert.Contains(t, msg, "Sorry")

	msg, err = s.Handle(ctx, ListCartRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, cart.EmptySummary, msg)
}

func TestCoffee_SlotFlow(t *testing.T) {
	store := &memOrderStore{}
	s := New(ModeCoffee, newDeps(store))
	ctx := context.Background()

	// Finalize before any slot is set enumerates all slots in fixed order.
	msg, err := s.Handle(ctx, FinalizeRequest{})
	require.NoError(t, err)
	assert.Contains(t, msg, "drink, size, milk, extras, name")
	assert.Empty(t, store.saved)

	for _, sr := range []SetSlotRequest{
		{Slot: "drink", Value: "latte"},
		{Slot: "size", Value: "medium"},
		{Slot: "milk", Value: "oat"},
		{Slot: "extras", Value: ""},
		{Slot: "name", Value: "Jane"},
	} {
		_, err = s.Handle(ctx, sr)
		require.NoError(t, err)
	}

	msg, err = s.Handle(ctx, GetStatusRequest{})
	require.NoError(t, err)
	assert.Contains(t, msg, "ready to finalize")

	msg, err = s.Handle(ctx, FinalizeRequest{})
	require.NoError(t, err)
	assert.Contains(t, msg, "Medium Latte with Oat milk")
	assert.Contains(t, msg, "Jane")
	require.Len(t, store.saved, 1)

	// Session resets; a second finalize starts from scratch.
	msg, err = s.Handle(ctx, FinalizeRequest{})
	require.NoError(t, err)
	assert.Contains(t, msg, "drink, size, milk, extras, name")
}

func TestBoundaryValidation(t *testing.T) {
	g := New(ModeGrocery, newDeps(&memOrderStore{}))
	c := New(ModeCoffee, newDeps(&memOrderStore{}))
	ctx := context.Background()

	cases := []struct {
		name string
		s    *Session
		req  Request
	}{
		{"empty item name", g, AddItemRequest{}},
		{"negative quantity", g, AddItemRequest{Name: "Milk", Quantity: -1}},
		{"add item in coffee mode", c, AddItemRequest{Name: "Milk", Quantity: 1}},
		{"list cart in coffee mode", c, ListCartRequest{}},
		{"set slot in grocery mode", g, SetSlotRequest{Slot: "drink", Value: "latte"}},
		{"unknown slot", c, SetSlotRequest{Slot: "temperature", Value: "hot"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.s.Handle(ctx, tc.req)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
		})
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	m := NewManager(newDeps(&memOrderStore{}))

	s1, err := m.GetOrCreate("s-1", ModeGrocery)
	require.NoError(t, err)
	s2, err := m.GetOrCreate("s-1", ModeGrocery)
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, m.Len())

	_, err = m.GetOrCreate("s-1", ModeCoffee)
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	m.Drop("s-1")
	assert.Equal(t, 0, m.Len())
}
