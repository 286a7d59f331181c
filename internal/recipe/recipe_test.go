package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
)

func newResolver() *Resolver {
	return NewResolver(DefaultDefinitions(), catalog.NewStatic(catalog.DefaultItems()))
}

func TestIsBundle(t *testing.T) {
	r := newResolver()

	key, ok := r.IsBundle("ingredients for pasta for two")
	require.True(t, ok)
	assert.Equal(t, "pasta for two", key)

	key, ok = r.IsBundle("  Basic Breakfast ")
	require.True(t, ok)
	assert.Equal(t, "basic breakfast", key)

	_, ok = r.IsBundle("caviar platter")
	assert.False(t, ok)
}

func TestResolve_ScalesByMultiplier(t *testing.T) {
	r := newResolver()

	got, key, ok := r.Resolve(context.Background(), "ingredients for basic breakfast", 3)
	require.True(t, ok)
	assert.Equal(t, "basic breakfast", key)
	require.Len(t, got, 3)
	for _, ing := range got {
		assert.Equal(t, 3, ing.Quantity)
	}
	assert.Equal(t, "Eggs (dozen)", got[0].Item.Name)
	assert.Equal(t, "Milk (gallon)", got[1].Item.Name)
	assert.Equal(t, "Bacon (pack)", got[2].Item.Name)
}

func TestResolve_MultiplierFloorsAtOne(t *testing.T) {
	r := newResolver()

	got, _, ok := r.Resolve(context.Background(), "pasta for two", 0)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Quantity)
}

func TestResolve_SkipsMissingIngredients(t *testing.T) {
	defs := Definitions{
		"mystery platter": {
			{Name: "Spaghetti Pasta", Quantity: 2},
			{Name: "Unicorn Steak", Quantity: 1},
		},
	}
	r := NewResolver(defs, catalog.NewStatic(catalog.DefaultItems()))

	got, _, ok := r.Resolve(context.Background(), "mystery platter", 1)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Spaghetti Pasta", got[0].Item.Name)
	assert.Equal(t, 2, got[0].Quantity)
}

func TestResolve_NotABundle(t *testing.T) {
	r := newResolver()

	_, _, ok := r.Resolve(context.Background(), "milk", 1)
	assert.False(t, ok)
}
