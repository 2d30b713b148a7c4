package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"meal-planner/internal/catalog"
	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/recipe"
)

// Recipes lists every recipe.
func (s *Session) Recipes(ctx context.Context) ([]recipe.Recipe, error) {
	var out dto.RecipeList
	if _, err := s.send(ctx, http.MethodGet, "/api/recipes", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Recipe fetches one recipe.
func (s *Session) Recipe(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var out recipe.Recipe
	if _, err := s.send(ctx, http.MethodGet, "/api/recipes/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRecipe stores a new recipe and returns it with its ID.
func (s *Session) CreateRecipe(ctx context.Context, rec recipe.Recipe) (*recipe.Recipe, error) {
	var out recipe.Recipe
	if _, err := s.send(ctx, http.MethodPost, "/api/recipes", nil, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecipe replaces a recipe.
func (s *Session) UpdateRecipe(ctx context.Context, rec recipe.Recipe) (*recipe.Recipe, error) {
	var out recipe.Recipe
	if _, err := s.send(ctx, http.MethodPut, "/api/recipes/"+strconv.FormatInt(rec.ID, 10), nil, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecipe removes a recipe.
func (s *Session) DeleteRecipe(ctx context.Context, id int64) error {
	_, err := s.send(ctx, http.MethodDelete, "/api/recipes/"+strconv.FormatInt(id, 10), nil, nil, nil)
	return err
}

// Units returns the unit catalog, served from the reference cache when fresh.
func (s *Session) Units(ctx context.Context) ([]catalog.Unit, error) {
	if cached, found := s.cache.Get(cacheKeyUnits); found {
		if units, ok := cached.([]catalog.Unit); ok {
			return units, nil
		}
	}

	var out dto.UnitList
	if _, err := s.send(ctx, http.MethodGet, "/api/units", nil, nil, &out); err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyUnits, out.Results)
	return out.Results, nil
}

// Ingredients returns the ingredient catalog, served from the reference cache when fresh.
func (s *Session) Ingredients(ctx context.Context) ([]catalog.Ingredient, error) {
	if cached, found := s.cache.Get(cacheKeyIngredients); found {
		if ingredients, ok := cached.([]catalog.Ingredient); ok {
			return ingredients, nil
		}
	}

	var out dto.IngredientList
	if _, err := s.send(ctx, http.MethodGet, "/api/ingredients", nil, nil, &out); err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyIngredients, out.Results)
	return out.Results, nil
}

// SearchIngredients asks the server for ingredients whose name contains search. Results
// are not cached.
func (s *Session) SearchIngredients(ctx context.Context, search string) ([]catalog.Ingredient, error) {
	var out dto.IngredientList
	if _, err := s.send(ctx, http.MethodGet, "/api/ingredients", url.Values{"search": {search}}, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// CreateIngredient adds an ingredient and drops the cached ingredient list.
func (s *Session) CreateIngredient(ctx context.Context, name string, category catalog.Category) (*catalog.Ingredient, error) {
	var out catalog.Ingredient
	if _, err := s.send(ctx, http.MethodPost, "/api/ingredients", nil, dto.IngredientRequest{Name: name, Category: string(category)}, &out); err != nil {
		return nil, err
	}
	s.Invalidate(cacheKeyIngredients)
	return &out, nil
}

// CreateUnit adds a unit and drops the cached unit list.
func (s *Session) CreateUnit(ctx context.Context, name, abbreviation string) (*catalog.Unit, error) {
	var out catalog.Unit
	if _, err := s.send(ctx, http.MethodPost, "/api/units", nil, dto.UnitRequest{Name: name, Abbreviation: abbreviation}, &out); err != nil {
		return nil, err
	}
	s.Invalidate(cacheKeyUnits)
	return &out, nil
}

// Invalidate drops the named reference resources ("units", "ingredients") from the cache,
// or everything when called without arguments.
func (s *Session) Invalidate(resources ...string) {
	if len(resources) == 0 {
		s.cache.Flush()
		return
	}
	for _, r := range resources {
		s.cache.Delete(r)
	}
}

// Plan returns the planned meals of the week containing week (YYYY-MM-DD, empty for the
// current week).
func (s *Session) Plan(ctx context.Context, week string) (*dto.PlanResponse, error) {
	var out dto.PlanResponse
	if _, err := s.send(ctx, http.MethodGet, "/api/plan", weekQuery(week, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMeal plans a recipe.
func (s *Session) AddMeal(ctx context.Context, req dto.PlanRequest) (*dto.PlanMeal, error) {
	var out dto.PlanMeal
	if _, err := s.send(ctx, http.MethodPost, "/api/plan", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDiners changes the diner count of a planned meal.
func (s *Session) UpdateDiners(ctx context.Context, id int64, diners int) error {
	_, err := s.send(ctx, http.MethodPatch, "/api/plan/"+strconv.FormatInt(id, 10), nil, dto.DinersRequest{Diners: diners}, nil)
	return err
}

// RemoveMeal deletes a planned meal.
func (s *Session) RemoveMeal(ctx context.Context, id int64) error {
	_, err := s.send(ctx, http.MethodDelete, "/api/plan/"+strconv.FormatInt(id, 10), nil, nil, nil)
	return err
}

// SetChecked updates checked flags and returns the resulting list.
func (s *Session) SetChecked(ctx context.Context, req dto.CheckedRequest) (*dto.ShoppingListResponse, error) {
	var out dto.ShoppingListResponse
	if _, err := s.send(ctx, http.MethodPut, "/api/shopping-list/checked", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func weekQuery(week, q string) url.Values {
	v := url.Values{}
	if week != "" {
		v.Set("week", week)
	}
	if q != "" {
		v.Set("q", q)
	}
	return v
}
