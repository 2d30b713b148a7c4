package recipe

import (
	"context"
	"errors"
	"testing"

	"meal-planner/internal/catalog"
	"meal-planner/internal/database"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		recipe  Recipe
		wantErr bool
	}{
		{"Valid", Recipe{Name: "Pasta", Servings: 2, Ingredients: []IngredientLine{{IngredientID: 1, Quantity: Float(200)}}}, false},
		{"ToTaste", Recipe{Name: "Salad", Ingredients: []IngredientLine{{IngredientID: 1}}}, false},
		{"MissingName", Recipe{Name: "  "}, true},
		{"NegativeServings", Recipe{Name: "Soup", Servings: -1}, true},
		{"MissingIngredient", Recipe{Name: "Soup", Ingredients: []IngredientLine{{}}}, true},
		{"NegativeQuantity", Recipe{Name: "Soup", Ingredients: []IngredientLine{{IngredientID: 1, Quantity: Float(-3)}}}, true},
		{"BadUnit", Recipe{Name: "Soup", Ingredients: []IngredientLine{{IngredientID: 1, UnitID: ID(0)}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRepository(t *testing.T) {
	db := database.NewTestDB(t)
	ctx := context.Background()
	cat := catalog.NewRepository(db.SQL)
	repo := NewRepository(db.SQL)

	pasta, err := cat.CreateIngredient(ctx, "pasta", catalog.CategoryGrains)
	if err != nil {
		t.Fatal(err)
	}
	salt, err := cat.CreateIngredient(ctx, "salt", catalog.CategorySpices)
	if err != nil {
		t.Fatal(err)
	}
	gram, err := cat.CreateUnit(ctx, "gram", "g")
	if err != nil {
		t.Fatal(err)
	}

	created, err := repo.Create(ctx, Recipe{
		Name:     " Pasta al pomodoro ",
		Servings: 2,
		Ingredients: []IngredientLine{
			{IngredientID: pasta.ID, Quantity: Float(200), UnitID: ID(gram.ID)},
			{IngredientID: salt.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("Get", func(t *testing.T) {
		got, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected recipe, got nil")
		}
		if got.Name != "Pasta al pomodoro" {
			t.Errorf("Expected trimmed name, got %q", got.Name)
		}
		if len(got.Ingredients) != 2 {
			t.Fatalf("Expected 2 ingredient lines, got %d", len(got.Ingredients))
		}
		first := got.Ingredients[0]
		if first.IngredientID != pasta.ID || first.Quantity == nil || *first.Quantity != 200 || first.UnitID == nil || *first.UnitID != gram.ID {
			t.Errorf("Unexpected first line: %+v", first)
		}
		second := got.Ingredients[1]
		if second.Quantity != nil || second.UnitID != nil {
			t.Errorf("Expected null quantity and unit, got %+v", second)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		got, err := repo.Get(ctx, 9999)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil recipe, got %+v", got)
		}
	})

	t.Run("Update", func(t *testing.T) {
		upd := *created
		upd.Servings = 4
		upd.Ingredients = []IngredientLine{{IngredientID: salt.ID, Quantity: Float(1)}}
		if err := repo.Update(ctx, upd); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		got, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Servings != 4 || len(got.Ingredients) != 1 || got.Ingredients[0].IngredientID != salt.ID {
			t.Errorf("Unexpected recipe after update: %+v", got)
		}

		missing := upd
		missing.ID = 9999
		if err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetByIDsAndList", func(t *testing.T) {
		other, err := repo.Create(ctx, Recipe{Name: "Ensalada", Servings: 1, Ingredients: []IngredientLine{{IngredientID: salt.ID}}})
		if err != nil {
			t.Fatal(err)
		}

		got, err := repo.GetByIDs(ctx, []int64{created.ID, other.ID, 4242})
		if err != nil {
			t.Fatalf("GetByIDs failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 recipes, got %d", len(got))
		}
		for _, r := range got {
			if len(r.Ingredients) != 1 {
				t.Errorf("Expected recipe %d to carry its lines, got %+v", r.ID, r.Ingredients)
			}
		}

		all, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) != 2 || all[0].Name != "Ensalada" {
			t.Errorf("Expected recipes ordered by name, got %+v", all)
		}

		count, err := repo.Count(ctx)
		if err != nil || count != 2 {
			t.Errorf("Expected count 2, got %d (err %v)", count, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
		got, err := repo.Get(ctx, created.ID)
		if err != nil || got != nil {
			t.Errorf("Expected recipe gone, got %+v (err %v)", got, err)
		}
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		if _, err := repo.Create(ctx, Recipe{}); !errors.Is(err, ErrInvalid) {
			t.Errorf("Expected ErrInvalid, got %v", err)
		}
	})
}
