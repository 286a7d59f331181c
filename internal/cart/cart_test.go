package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesByNormalizedName(t *testing.T) {
	c := New()

	c.Add("Milk (gallon)", 2, decimal.RequireFromString("3.00"), "")
	line, merged := c.Add("milk (GALLON)", 1, decimal.RequireFromString("9.99"), "late note")

	assert.True(t, merged)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, line.Quantity)
	// Price snapshot and notes stay from line creation.
	assert.True(t, decimal.RequireFromString("3.00").Equal(line.UnitPrice))
	assert.Equal(t, "", line.Notes)
}

func TestCart_TotalAndClear(t *testing.T) {
	c := New()
	c.Add("Milk (gallon)", 3, decimal.RequireFromString("3.00"), "")
	c.Add("Eggs (dozen)", 1, decimal.RequireFromString("5.25"), "")

	assert.True(t, decimal.RequireFromString("14.25").Equal(c.Total()))

	c.Clear()
	assert.True(t, decimal.Zero.Equal(c.Total()))
	assert.Equal(t, EmptySummary, c.Summary())
}

func TestCart_SummaryFormat(t *testing.T) {
	c := New()
	c.Add("Milk (gallon)", 2, decimal.RequireFromString("3.00"), "")
	c.Add("Peanut Butter", 1, decimal.RequireFromString("6.80"), "crunchy")

	want := "Current Cart:\n" +
		"- 2 x Milk (gallon) ($3.00 each) -> $6.00\n" +
		"- 1 x Peanut Butter ($6.80 each) -> $6.80\n" +
		"TOTAL: $12.80"
	assert.Equal(t, want, c.Summary())
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	c := New()
	c.Add("B Item", 1, decimal.NewFromInt(1), "")
	c.Add("A Item", 1, decimal.NewFromInt(1), "")
	c.Add("B Item", 1, decimal.NewFromInt(1), "")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "B Item", lines[0].Name)
	assert.Equal(t, "A Item", lines[1].Name)
	assert.Equal(t, 2, lines[0].Quantity)
}
