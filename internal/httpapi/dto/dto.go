// Package dto holds the JSON bodies exchanged between the HTTP API and its clients.
package dto

import (
	"meal-planner/internal/catalog"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Credentials is the body of register and login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	CSRFToken     string `json:"csrf_token,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// CSRFResponse carries the CSRF token of the current session.
type CSRFResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// IngredientRequest creates an ingredient.
type IngredientRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UnitRequest creates a unit.
type UnitRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// RecipeList wraps a list of recipes.
type RecipeList struct {
	Results []recipe.Recipe `json:"results"`
}

// IngredientList wraps a list of ingredients.
type IngredientList struct {
	Results []catalog.Ingredient `json:"results"`
}

// UnitList wraps a list of units.
type UnitList struct {
	Results []catalog.Unit `json:"results"`
}

// PlanRequest adds a recipe to a day and slot of a week.
type PlanRequest struct {
	Week     string       `json:"week"`
	Day      *planner.Day `json:"day"`
	Slot     planner.Slot `json:"slot"`
	RecipeID int64        `json:"recipe_id"`
	Diners   *int         `json:"diners,omitempty"`
}

// DinersRequest changes the diner count of a planned meal.
type DinersRequest struct {
	Diners int `json:"diners"`
}

// PlanMeal is a planned meal with its recipe name resolved.
type PlanMeal struct {
	planner.PlannedMeal
	RecipeName string `json:"recipe_name"`
}

// PlanResponse lists the meals of one week.
type PlanResponse struct {
	WeekStart string     `json:"week_start"`
	Meals     []PlanMeal `json:"meals"`
}

// ShoppingUnit is the unit of a shopping list item.
type ShoppingUnit struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// ShoppingDetail is one contribution to a shopping list item.
type ShoppingDetail struct {
	PlannedMealID int64        `json:"planned_meal_id"`
	RecipeID      int64        `json:"recipe_id"`
	RecipeName    string       `json:"recipe_name"`
	Diners        int          `json:"diners"`
	Day           planner.Day  `json:"day"`
	Slot          planner.Slot `json:"slot"`
	Quantity      string       `json:"quantity"`
}

// ShoppingItem is one aggregated line of the shopping list.
type ShoppingItem struct {
	Key          string           `json:"key"`
	IngredientID int64            `json:"ingredient_id"`
	Name         string           `json:"name"`
	Total        float64          `json:"total"`
	Quantity     string           `json:"quantity"`
	Unit         *ShoppingUnit    `json:"unit"`
	UnitLabel    string           `json:"unit_label"`
	Checked      bool             `json:"checked"`
	Details      []ShoppingDetail `json:"details"`
}

// ShoppingCategory groups the items of one category.
type ShoppingCategory struct {
	Key   string         `json:"category_key"`
	Label string         `json:"category_label"`
	Items []ShoppingItem `json:"items"`
}

// ShoppingListResponse is the shopping list of one week.
type ShoppingListResponse struct {
	WeekStart  string             `json:"week_start"`
	RequestID  uint64             `json:"request_id"`
	Query      string             `json:"query,omitempty"`
	Skipped    int                `json:"skipped"`
	Issues     []string           `json:"issues,omitempty"`
	Categories []ShoppingCategory `json:"categories"`
}

// CheckedRequest updates the checked state of a shopping list. With Key set it targets one
// item (Checked nil toggles it); otherwise it sets every item of Category.
type CheckedRequest struct {
	Week     string `json:"week"`
	Key      string `json:"key,omitempty"`
	Category string `json:"category,omitempty"`
	Checked  *bool  `json:"checked,omitempty"`
}

// NewShoppingList converts built shopping list groups into the response body.
func NewShoppingList(list *shopping.List, groups []shopping.CategoryGroup, query string) ShoppingListResponse {
	resp := ShoppingListResponse{
		WeekStart:  planner.WeekKey(list.WeekStart),
		RequestID:  list.RequestID,
		Query:      query,
		Skipped:    list.Skipped,
		Categories: make([]ShoppingCategory, 0, len(groups)),
	}
	for _, issue := range list.Issues {
		resp.Issues = append(resp.Issues, issue.Error())
	}

	for _, g := range groups {
		cat := ShoppingCategory{Key: string(g.Category), Label: g.Label, Items: make([]ShoppingItem, 0, len(g.Entries))}
		for _, e := range g.Entries {
			item := ShoppingItem{
				Key:          e.Key,
				IngredientID: e.IngredientID,
				Name:         e.IngredientName,
				Total:        e.Total,
				Quantity:     e.DisplayQuantity(),
				UnitLabel:    e.UnitLabel(),
				Checked:      e.Checked,
				Details:      make([]ShoppingDetail, 0, len(e.Contributions)),
			}
			if e.Unit != nil {
				item.Unit = &ShoppingUnit{ID: e.Unit.ID, Name: e.Unit.Name, Abbreviation: e.Unit.Abbreviation}
			}
			for _, c := range e.Contributions {
				d := ShoppingDetail{
					PlannedMealID: c.PlannedMealID,
					RecipeID:      c.RecipeID,
					RecipeName:    c.RecipeName,
					Diners:        c.Diners,
					Day:           c.Day,
					Slot:          c.Slot,
				}
				if c.HasQuantity {
					d.Quantity = shopping.FormatQuantity(c.Quantity)
				}
				item.Details = append(item.Details, d)
			}
			cat.Items = append(cat.Items, item)
		}
		resp.Categories = append(resp.Categories, cat)
	}
	return resp
}
