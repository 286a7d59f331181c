package slotorder

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_UnknownSlot(t *testing.T) {
	st := New()
	err := st.Set("temperature", "hot")
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestSet_EmptyValueRejectedExceptExtras(t *testing.T) {
	st := New()
	require.Error(t, st.Set(SlotDrink, "  "))
	require.NoError(t, st.Set(SlotExtras, ""))
}

func TestIsComplete_ExtrasNullVsEmpty(t *testing.T) {
	st := New()
	require.NoError(t, st.Set(SlotDrink, "latte"))
	require.NoError(t, st.Set(SlotSize, "medium"))
	require.NoError(t, st.Set(SlotMilk, "oat"))
	require.NoError(t, st.Set(SlotName, "Jane"))

	// All other slots set, extras still null.
	assert.False(t, st.IsComplete())
	assert.Equal(t, []string{SlotExtras}, st.Missing())

	// Asked, answered none: empty list counts as set.
	require.NoError(t, st.Set(SlotExtras, ""))
	assert.True(t, st.IsComplete())
}

func TestMissing_FixedOrder(t *testing.T) {
	st := New()
	require.NoError(t, st.Set(SlotMilk, "oat"))

	assert.Equal(t, []string{SlotDrink, SlotSize, SlotExtras, SlotName}, st.Missing())
}

func TestSet_OverwriteIsIdempotent(t *testing.T) {
	st := New()
	require.NoError(t, st.Set(SlotSize, "small"))
	require.NoError(t, st.Set(SlotSize, "large"))

	require.NoError(t, st.Set(SlotDrink, "mocha"))
	require.NoError(t, st.Set(SlotMilk, "whole"))
	require.NoError(t, st.Set(SlotExtras, ""))
	require.NoError(t, st.Set(SlotName, "Ana"))

	assert.Equal(t, "Large Mocha with Whole milk", st.Describe())
}

func TestDescribe_WithExtras(t *testing.T) {
	st := New()
	require.NoError(t, st.Set(SlotDrink, "latte"))
	require.NoError(t, st.Set(SlotSize, "medium"))
	require.NoError(t, st.Set(SlotMilk, "oat"))
	require.NoError(t, st.Set(SlotExtras, "caramel, whipped cream"))

	assert.Equal(t, "Medium Latte with Oat milk, extras: caramel, whipped cream", st.Describe())
}

func TestStatus(t *testing.T) {
	st := New()
	assert.Equal(t, "Still needed: drink, size, milk, extras, name.", st.Status())

	require.NoError(t, st.Set(SlotDrink, "latte"))
	require.NoError(t, st.Set(SlotSize, "medium"))
	require.NoError(t, st.Set(SlotMilk, "oat"))
	require.NoError(t, st.Set(SlotExtras, ""))
	require.NoError(t, st.Set(SlotName, "Jane"))

	assert.Equal(t, "Order ready to finalize: Medium Latte with Oat milk for Jane.", st.Status())
}

func TestReset(t *testing.T) {
	st := New()
	require.NoError(t, st.Set(SlotDrink, "latte"))
	st.Reset()
	assert.Equal(t, SlotNames, st.Missing())
}
