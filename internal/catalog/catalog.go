// Package catalog holds the ingredient and unit reference data used by recipes and the
// shopping list.
package catalog

import "errors"

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// Ingredient is a purchasable item.
type Ingredient struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Unit is a measuring unit such as grams or cups.
type Unit struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Label returns the abbreviation when present, otherwise the name.
func (u Unit) Label() string {
	if u.Abbreviation != "" {
		return u.Abbreviation
	}
	return u.Name
}

// IngredientIndex builds an id lookup for ingredients.
func IngredientIndex(ingredients []Ingredient) map[int64]Ingredient {
	m := make(map[int64]Ingredient, len(ingredients))
	for _, ing := range ingredients {
		m[ing.ID] = ing
	}
	return m
}

// UnitIndex builds an id lookup for units.
func UnitIndex(units []Unit) map[int64]Unit {
	m := make(map[int64]Unit, len(units))
	for _, u := range units {
		m[u.ID] = u
	}
	return m
}
