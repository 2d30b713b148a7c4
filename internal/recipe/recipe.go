// Package recipe stores recipes and their ordered ingredient lines.
package recipe

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a recipe does not exist.
	ErrNotFound = errors.New("recipe not found")
	// ErrInvalid is returned when a recipe fails validation.
	ErrInvalid = errors.New("invalid recipe")
)

// Recipe is a dish with a base serving count and its ingredient lines.
type Recipe struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Servings     int              `json:"servings"`
	PrepTime     string           `json:"prep_time,omitempty"`
	Instructions string           `json:"instructions,omitempty"`
	SourceURL    string           `json:"source_url,omitempty"`
	Ingredients  []IngredientLine `json:"ingredients"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// IngredientLine is one ingredient of a recipe. A nil Quantity means "to taste"; a nil UnitID
// means the quantity is a plain count.
type IngredientLine struct {
	IngredientID int64    `json:"ingredient_id"`
	Quantity     *float64 `json:"quantity"`
	UnitID       *int64   `json:"unit_id"`
}

// Validate checks the fields a caller controls.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if r.Servings < 0 {
		return fmt.Errorf("%w: servings must not be negative", ErrInvalid)
	}
	for i, line := range r.Ingredients {
		if line.IngredientID <= 0 {
			return fmt.Errorf("%w: ingredient %d has no ingredient id", ErrInvalid, i+1)
		}
		if line.Quantity != nil && (*line.Quantity < 0 || math.IsNaN(*line.Quantity) || math.IsInf(*line.Quantity, 0)) {
			return fmt.Errorf("%w: ingredient %d has an invalid quantity", ErrInvalid, i+1)
		}
		if line.UnitID != nil && *line.UnitID <= 0 {
			return fmt.Errorf("%w: ingredient %d has an invalid unit id", ErrInvalid, i+1)
		}
	}
	return nil
}

// Index builds an id lookup for recipes.
func Index(recipes []Recipe) map[int64]Recipe {
	m := make(map[int64]Recipe, len(recipes))
	for _, r := range recipes {
		m[r.ID] = r
	}
	return m
}

// Float returns a pointer to v, for building ingredient lines.
func Float(v float64) *float64 { return &v }

// ID returns a pointer to v, for building ingredient lines.
func ID(v int64) *int64 { return &v }
