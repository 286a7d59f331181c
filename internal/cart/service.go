package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/recipe"
)

// Service resolves add-item requests against the recipe definitions and the
// catalog, and merges the results into a cart.
type Service struct {
	catalog catalog.Store
	recipes *recipe.Resolver
}

// NewService creates a cart Service with the required domain dependencies.
func NewService(store catalog.Store, recipes *recipe.Resolver) *Service {
	return &Service{catalog: store, recipes: recipes}
}

// AddItem adds a single item or a whole bundle to the cart.
//
// Bundle names resolve first: every resolved ingredient merges into the cart
// with its scaled quantity. Otherwise the name resolves through the catalog
// (exact, then fuzzy); a miss returns *catalog.NotFoundError and leaves the
// cart unchanged. The returned string is the confirmation text for the
// conversational layer.
func (s *Service) AddItem(ctx context.Context, c *Cart, name string, quantity int, notes string) (string, error) {
	if quantity < 1 {
		quantity = 1
	}

	if ingredients, bundle, ok := s.recipes.Resolve(ctx, name, quantity); ok {
		added := make([]string, 0, len(ingredients))
		for _, ing := range ingredients {
			line, _ := c.Add(ing.Item.Name, ing.Quantity, ing.Item.Price, notes)
			added = append(added, fmt.Sprintf("%d x %s", ing.Quantity, line.Name))
		}
		return fmt.Sprintf("Added ingredients for %q to the cart: %s.",
			bundle, strings.Join(added, ", ")), nil
	}

	item, err := s.catalog.Lookup(ctx, name)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			return "", err
		}
		return "", errors.Wrapf(err, "lookup %q", name)
	}

	line, merged := c.Add(item.Name, quantity, item.Price, notes)
	if merged {
		return fmt.Sprintf("Increased quantity of %s to %d.", line.Name, line.Quantity), nil
	}
	return fmt.Sprintf("Added %d x %s to the cart.", quantity, item.Name), nil
}
