// Package recipe maps bundle names ("pasta for two") to catalog items with
// base quantities, scaled by a caller-supplied multiplier.
package recipe

import (
	"context"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
)

// bundlePrefix is stripped from queries before matching a bundle name, so
// "ingredients for pasta for two" resolves the "pasta for two" bundle.
const bundlePrefix = "ingredients for "

// BaseIngredient is one entry of a bundle definition: an item name and the
// quantity added per multiplier unit.
type BaseIngredient struct {
	Name     string
	Quantity int
}

// Definitions maps a normalized bundle name to its ordered ingredient list.
type Definitions map[string][]BaseIngredient

// DefaultDefinitions returns the statically defined bundles.
func DefaultDefinitions() Definitions {
	return Definitions{
		"peanut butter sandwich": {
			{Name: "Whole Wheat Bread", Quantity: 1},
			{Name: "Peanut Butter", Quantity: 1},
		},
		"pasta for two": {
			{Name: "Spaghetti Pasta", Quantity: 1},
			{Name: "Tomato Sauce", Quantity: 1},
		},
		"basic breakfast": {
			{Name: "Eggs (dozen)", Quantity: 1},
			{Name: "Milk (gallon)", Quantity: 1},
			{Name: "Bacon (pack)", Quantity: 1},
		},
	}
}

// Ingredient is a resolved bundle entry: the catalog item plus the scaled
// quantity to add.
type Ingredient struct {
	Item     catalog.Item
	Quantity int
}

// Resolver expands bundle names into catalog items.
type Resolver struct {
	defs    Definitions
	catalog catalog.Store
}

// NewResolver creates a Resolver over the given definitions and catalog.
func NewResolver(defs Definitions, store catalog.Store) *Resolver {
	return &Resolver{defs: defs, catalog: store}
}

// IsBundle reports whether the query names a known bundle after prefix
// stripping and normalization.
func (r *Resolver) IsBundle(query string) (string, bool) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(query)), bundlePrefix)
	key = strings.TrimSpace(key)
	_, ok := r.defs[key]
	return key, ok
}

// Resolve expands the bundle into catalog items with each base quantity
// multiplied by multiplier (values below 1 are treated as 1). Ingredients
// missing from the catalog are logged and skipped; the resolution still
// succeeds with the remaining items. The second return value is false when
// the query is not a bundle.
func (r *Resolver) Resolve(ctx context.Context, query string, multiplier int) ([]Ingredient, string, bool) {
	key, ok := r.IsBundle(query)
	if !ok {
		return nil, "", false
	}
	if multiplier < 1 {
		multiplier = 1
	}

	base := r.defs[key]
	resolved := make([]Ingredient, 0, len(base))
	for _, ing := range base {
		item, err := r.catalog.Lookup(ctx, ing.Name)
		if err != nil {
			zctx.From(ctx).Warn("Bundle ingredient missing from catalog",
				zap.String("bundle", key),
				zap.String("ingredient", ing.Name),
				zap.Error(err),
			)
			continue
		}
		resolved = append(resolved, Ingredient{
			Item:     *item,
			Quantity: ing.Quantity * multiplier,
		})
	}

	return resolved, key, true
}
