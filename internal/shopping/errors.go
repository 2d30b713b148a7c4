package shopping

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned for a malformed shopping list item key.
var ErrInvalidKey = errors.New("invalid item key")

// Reference kinds reported by MissingReferenceError.
const (
	RefRecipe     = "recipe"
	RefIngredient = "ingredient"
	RefUnit       = "unit"
)

// MissingReferenceError reports a planned meal or recipe line pointing at data that was not
// supplied. A missing recipe skips the meal; a missing ingredient or unit is kept with a
// fallback name.
type MissingReferenceError struct {
	Kind          string
	ID            int64
	PlannedMealID int64
	RecipeID      int64
}

func (e *MissingReferenceError) Error() string {
	if e.Kind == RefRecipe {
		return fmt.Sprintf("planned meal %d references unknown recipe %d", e.PlannedMealID, e.ID)
	}
	return fmt.Sprintf("recipe %d references unknown %s %d", e.RecipeID, e.Kind, e.ID)
}

// InvalidQuantityError reports a diner count or line quantity that could not be used. The
// affected contribution is clamped to zero.
type InvalidQuantityError struct {
	Field         string // "diners" or "quantity"
	Value         float64
	PlannedMealID int64
	RecipeID      int64
	IngredientID  int64
}

func (e *InvalidQuantityError) Error() string {
	if e.Field == "diners" {
		return fmt.Sprintf("planned meal %d has invalid diner count %v", e.PlannedMealID, e.Value)
	}
	return fmt.Sprintf("recipe %d has invalid quantity %v for ingredient %d", e.RecipeID, e.Value, e.IngredientID)
}
