// Package shopping derives a week's shopping list from planned meals and recipe ingredients.
package shopping

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"meal-planner/internal/catalog"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
)

// NoUnit marks an entry whose ingredient lines declare no unit. Catalog IDs start at 1.
const NoUnit int64 = 0

// DefaultServings is the scaling base used for recipes that declare no serving count.
const DefaultServings = 2

// Options tunes Aggregate.
type Options struct {
	// DefaultServings replaces a recipe's serving count when it is not positive.
	DefaultServings int
}

// Contribution records one planned meal's share of an entry.
type Contribution struct {
	PlannedMealID int64        `json:"planned_meal_id"`
	RecipeID      int64        `json:"recipe_id"`
	RecipeName    string       `json:"recipe_name"`
	Diners        int          `json:"diners"`
	Day           planner.Day  `json:"day"`
	Slot          planner.Slot `json:"slot"`
	Quantity      float64      `json:"quantity"`
	HasQuantity   bool         `json:"has_quantity"`
}

// Entry is one line of the shopping list: an ingredient in a given unit.
type Entry struct {
	Key            string           `json:"key"`
	IngredientID   int64            `json:"ingredient_id"`
	IngredientName string           `json:"ingredient_name"`
	UnitID         int64            `json:"unit_id"`
	Unit           *catalog.Unit    `json:"unit,omitempty"`
	Total          float64          `json:"total"`
	HasQuantity    bool             `json:"has_quantity"`
	Category       catalog.Category `json:"category"`
	Checked        bool             `json:"checked"`
	Contributions  []Contribution   `json:"contributions"`
}

// DisplayQuantity renders the total for people. Entries without any numeric contribution
// render empty.
func (e Entry) DisplayQuantity() string {
	if !e.HasQuantity {
		return ""
	}
	return FormatQuantity(e.Total)
}

// UnitLabel returns the unit abbreviation, else its name, else the empty string.
func (e Entry) UnitLabel() string {
	if e.Unit == nil {
		return ""
	}
	return e.Unit.Label()
}

// CategoryGroup holds the entries of one category sorted by ingredient name.
type CategoryGroup struct {
	Category catalog.Category `json:"category"`
	Label    string           `json:"label"`
	Entries  []Entry          `json:"entries"`
}

// Result is the output of Aggregate.
type Result struct {
	Groups  []CategoryGroup
	Skipped int     // planned meals skipped because their recipe was missing
	Issues  []error // *MissingReferenceError and *InvalidQuantityError values
}

// ItemKey returns the stable key of an (ingredient, unit) pair, "12:3" or "12:none".
func ItemKey(ingredientID, unitID int64) string {
	if unitID == NoUnit {
		return fmt.Sprintf("%d:none", ingredientID)
	}
	return fmt.Sprintf("%d:%d", ingredientID, unitID)
}

// ParseItemKey is the inverse of ItemKey.
func ParseItemKey(key string) (ingredientID, unitID int64, err error) {
	ing, unit, ok := strings.Cut(key, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	ingredientID, err = strconv.ParseInt(ing, 10, 64)
	if err != nil || ingredientID <= 0 {
		return 0, 0, fmt.Errorf("%w: bad ingredient in %q", ErrInvalidKey, key)
	}
	if unit == "none" {
		return ingredientID, NoUnit, nil
	}
	unitID, err = strconv.ParseInt(unit, 10, 64)
	if err != nil || unitID <= 0 {
		return 0, 0, fmt.Errorf("%w: bad unit in %q", ErrInvalidKey, key)
	}
	return ingredientID, unitID, nil
}

// Aggregate builds the shopping list for meals. Each line quantity is scaled by
// diners / servings and summed per (ingredient, unit). Inputs are not modified.
func Aggregate(
	meals []planner.PlannedMeal,
	recipes map[int64]recipe.Recipe,
	ingredients map[int64]catalog.Ingredient,
	units map[int64]catalog.Unit,
	opts Options,
) Result {
	defaultServings := opts.DefaultServings
	if defaultServings <= 0 {
		defaultServings = DefaultServings
	}

	var res Result
	entries := make(map[string]*Entry)
	reported := make(map[string]bool)

	report := func(kind string, id, mealID, recipeID int64) {
		k := fmt.Sprintf("%s:%d", kind, id)
		if kind == RefRecipe {
			k = fmt.Sprintf("%s:%d:%d", kind, id, mealID)
		}
		if reported[k] {
			return
		}
		reported[k] = true
		res.Issues = append(res.Issues, &MissingReferenceError{Kind: kind, ID: id, PlannedMealID: mealID, RecipeID: recipeID})
	}

	for _, meal := range meals {
		rec, ok := recipes[meal.RecipeID]
		if !ok {
			res.Skipped++
			report(RefRecipe, meal.RecipeID, meal.ID, meal.RecipeID)
			continue
		}

		servings := rec.Servings
		if servings <= 0 {
			servings = defaultServings
		}

		factor := float64(meal.Diners) / float64(servings)
		if meal.Diners <= 0 {
			factor = 0
			res.Issues = append(res.Issues, &InvalidQuantityError{
				Field:         "diners",
				Value:         float64(meal.Diners),
				PlannedMealID: meal.ID,
				RecipeID:      rec.ID,
			})
		}

		for _, line := range rec.Ingredients {
			unitID := NoUnit
			if line.UnitID != nil {
				unitID = *line.UnitID
			}

			key := ItemKey(line.IngredientID, unitID)
			entry, ok := entries[key]
			if !ok {
				entry = newEntry(key, line.IngredientID, unitID, ingredients, units)
				if _, known := ingredients[line.IngredientID]; !known {
					report(RefIngredient, line.IngredientID, meal.ID, rec.ID)
				}
				if _, known := units[unitID]; !known && unitID != NoUnit {
					report(RefUnit, unitID, meal.ID, rec.ID)
				}
				entries[key] = entry
			}

			c := Contribution{
				PlannedMealID: meal.ID,
				RecipeID:      rec.ID,
				RecipeName:    rec.Name,
				Diners:        meal.Diners,
				Day:           meal.Day,
				Slot:          meal.Slot,
			}

			if line.Quantity != nil {
				q := *line.Quantity
				if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
					res.Issues = append(res.Issues, &InvalidQuantityError{
						Field:         "quantity",
						Value:         q,
						PlannedMealID: meal.ID,
						RecipeID:      rec.ID,
						IngredientID:  line.IngredientID,
					})
					q = 0
				}
				c.Quantity = q * factor
				c.HasQuantity = true
				entry.Total += c.Quantity
				entry.HasQuantity = true
			}

			entry.Contributions = append(entry.Contributions, c)
		}
	}

	res.Groups = group(entries)
	return res
}

func newEntry(key string, ingredientID, unitID int64, ingredients map[int64]catalog.Ingredient, units map[int64]catalog.Unit) *Entry {
	e := &Entry{
		Key:            key,
		IngredientID:   ingredientID,
		IngredientName: fmt.Sprintf("ingredient %d", ingredientID),
		UnitID:         unitID,
		Category:       catalog.CategoryOther,
	}
	if ing, ok := ingredients[ingredientID]; ok {
		e.IngredientName = ing.Name
		e.Category = catalog.ParseCategory(string(ing.Category))
	}
	if unitID != NoUnit {
		if u, ok := units[unitID]; ok {
			e.Unit = &u
		} else {
			e.Unit = &catalog.Unit{ID: unitID}
		}
	}
	return e
}

func group(entries map[string]*Entry) []CategoryGroup {
	byCategory := make(map[catalog.Category][]Entry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], *e)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, c := range catalog.Categories {
		list, ok := byCategory[c]
		if !ok {
			continue
		}
		sortEntries(list)
		groups = append(groups, CategoryGroup{Category: c, Label: c.Label(), Entries: list})
	}
	return groups
}

func sortEntries(list []Entry) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.IngredientName != b.IngredientName {
			return a.IngredientName < b.IngredientName
		}
		if a.UnitID != b.UnitID {
			return a.UnitID < b.UnitID
		}
		return a.IngredientID < b.IngredientID
	})
}

// Keys returns the item keys of every entry in groups, in display order.
func Keys(groups []CategoryGroup) []string {
	var keys []string
	for _, g := range groups {
		for _, e := range g.Entries {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Find returns the entry with the given key.
func Find(groups []CategoryGroup, key string) (Entry, bool) {
	for _, g := range groups {
		for _, e := range g.Entries {
			if e.Key == key {
				return e, true
			}
		}
	}
	return Entry{}, false
}
