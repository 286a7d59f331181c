package catalog

import "github.com/shopspring/decimal"

// DefaultItems returns the fixed seed set used to bootstrap an empty catalog
// backing store. The slice order is the catalog iteration order.
func DefaultItems() []Item {
	return []Item{
		{Name: "Whole Wheat Bread", Category: "Groceries", Price: decimal.RequireFromString("4.50"), Units: "loaf", Tags: []string{"vegan"}},
		{Name: "Eggs (dozen)", Category: "Groceries", Price: decimal.RequireFromString("5.25"), Units: "dozen", Tags: []string{"protein"}},
		{Name: "Milk (gallon)", Category: "Groceries", Price: decimal.RequireFromString("3.00"), Units: "gallon", Tags: []string{"dairy"}},
		{Name: "Peanut Butter", Category: "Groceries", Price: decimal.RequireFromString("6.80"), Units: "jar", Tags: []string{"protein"}},
		{Name: "Spaghetti Pasta", Category: "Groceries", Price: decimal.RequireFromString("1.50"), Units: "pack", Tags: []string{"carb"}},
		{Name: "Tomato Sauce", Category: "Groceries", Price: decimal.RequireFromString("2.20"), Units: "jar", Tags: []string{"sauce"}},
		{Name: "Cheese Pizza (large)", Category: "Prepared Food", Price: decimal.RequireFromString("15.00"), Units: "pizza", Tags: []string{"ready-to-eat"}},
		{Name: "Bag of Chips (large)", Category: "Snacks", Price: decimal.RequireFromString("4.00"), Units: "bag", Tags: []string{"salt"}},
		{Name: "Bacon (pack)", Category: "Groceries", Price: decimal.RequireFromString("8.00"), Units: "pack", Tags: []string{"meat"}},
		{Name: "Cereal (box)", Category: "Groceries", Price: decimal.RequireFromString("5.50"), Units: "box", Tags: []string{"breakfast"}},
	}
}
