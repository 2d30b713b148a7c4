package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"meal-planner/internal/database"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"produce", CategoryProduce},
		{" Dairy ", CategoryDairy},
		{"", CategoryOther},
		{"spaceship", CategoryOther},
		{"other", CategoryOther},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if CategoryOther.Order() != len(Categories)-1 {
		t.Errorf("Expected other to sort last, got order %d", CategoryOther.Order())
	}
	if Category("nope").Label() != "Other" {
		t.Errorf("Expected unknown category label to fall back to Other")
	}
}

func TestUnitLabel(t *testing.T) {
	if got := (Unit{Name: "gram", Abbreviation: "g"}).Label(); got != "g" {
		t.Errorf("Expected abbreviation, got %q", got)
	}
	if got := (Unit{Name: "cup"}).Label(); got != "cup" {
		t.Errorf("Expected name fallback, got %q", got)
	}
	if got := (Unit{}).Label(); got != "" {
		t.Errorf("Expected empty label, got %q", got)
	}
}

func TestRepository(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewRepository(db.SQL)
	ctx := context.Background()

	t.Run("CreateAndFindIngredient", func(t *testing.T) {
		created, err := repo.CreateIngredient(ctx, "Pasta", CategoryGrains)
		if err != nil {
			t.Fatalf("CreateIngredient failed: %v", err)
		}
		if created.ID == 0 {
			t.Fatal("Expected an ID to be assigned")
		}

		found, err := repo.FindIngredient(ctx, "pasta")
		if err != nil {
			t.Fatalf("FindIngredient failed: %v", err)
		}
		if found.ID != created.ID || found.Category != CategoryGrains {
			t.Errorf("Unexpected ingredient: %+v", found)
		}
	})

	t.Run("InvalidCategoryFallsBackToOther", func(t *testing.T) {
		created, err := repo.CreateIngredient(ctx, "mystery powder", Category("alchemy"))
		if err != nil {
			t.Fatalf("CreateIngredient failed: %v", err)
		}
		if created.Category != CategoryOther {
			t.Errorf("Expected other, got %q", created.Category)
		}
	})

	t.Run("FindMissing", func(t *testing.T) {
		_, err := repo.FindIngredient(ctx, "unobtainium")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		_, err = repo.FindUnit(ctx, "furlong")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Search", func(t *testing.T) {
		if _, err := repo.CreateIngredient(ctx, "pastry flour", CategoryGrains); err != nil {
			t.Fatal(err)
		}
		got, err := repo.ListIngredients(ctx, "past")
		if err != nil {
			t.Fatalf("ListIngredients failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 matches, got %d: %+v", len(got), got)
		}
		if got[0].Name != "Pasta" || got[1].Name != "pastry flour" {
			t.Errorf("Unexpected order: %+v", got)
		}
	})

	t.Run("UnitsByNameOrAbbreviation", func(t *testing.T) {
		created, err := repo.CreateUnit(ctx, "gram", "g")
		if err != nil {
			t.Fatalf("CreateUnit failed: %v", err)
		}
		byAbbr, err := repo.FindUnit(ctx, "G")
		if err != nil {
			t.Fatalf("FindUnit failed: %v", err)
		}
		if byAbbr.ID != created.ID {
			t.Errorf("Expected unit %d, got %d", created.ID, byAbbr.ID)
		}
	})
}

func TestSeed(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewRepository(db.SQL)
	ctx := context.Background()

	seed, err := ParseSeed(nil)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	if len(seed.Units) == 0 || len(seed.Ingredients) == 0 {
		t.Fatal("Expected embedded seed to carry units and ingredients")
	}

	first, err := repo.Seed(ctx, seed)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if first.Units != len(seed.Units) || first.Ingredients != len(seed.Ingredients) {
		t.Errorf("Unexpected seed result: %+v", first)
	}

	second, err := repo.Seed(ctx, seed)
	if err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
	if second.Units != 0 || second.Ingredients != 0 {
		t.Errorf("Expected second seed to be a no-op, got %+v", second)
	}

	pasta, err := repo.FindIngredient(ctx, "pasta")
	if err != nil {
		t.Fatal(err)
	}
	if pasta.Category != CategoryGrains {
		t.Errorf("Expected pasta in grains, got %q", pasta.Category)
	}
}

type countingSource struct {
	ingredientCalls int
	unitCalls       int
	ingredients     []Ingredient
}

func (s *countingSource) ListIngredients(ctx context.Context, search string) ([]Ingredient, error) {
	s.ingredientCalls++
	return s.ingredients, nil
}

func (s *countingSource) ListUnits(ctx context.Context) ([]Unit, error) {
	s.unitCalls++
	return []Unit{{ID: 1, Name: "gram", Abbreviation: "g"}}, nil
}

func TestCache(t *testing.T) {
	src := &countingSource{ingredients: []Ingredient{{ID: 1, Name: "pasta", Category: CategoryGrains}}}
	c := NewCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Ingredients(ctx); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Units(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if src.ingredientCalls != 1 || src.unitCalls != 1 {
		t.Fatalf("Expected one load per resource, got ingredients=%d units=%d", src.ingredientCalls, src.unitCalls)
	}

	src.ingredients = append(src.ingredients, Ingredient{ID: 2, Name: "lettuce", Category: CategoryProduce})
	c.InvalidateIngredients()

	got, err := c.Ingredients(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Expected reload after invalidation, got %d ingredients", len(got))
	}
	if _, err := c.Units(ctx); err != nil {
		t.Fatal(err)
	}
	if src.unitCalls != 1 {
		t.Errorf("Expected units to stay cached, got %d loads", src.unitCalls)
	}

	c.Invalidate()
	if _, err := c.Units(ctx); err != nil {
		t.Fatal(err)
	}
	if src.unitCalls != 2 {
		t.Errorf("Expected full invalidation to drop units, got %d loads", src.unitCalls)
	}
}

// blockingSource holds ListIngredients open until release is closed.
type blockingSource struct {
	countingSource
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSource) ListIngredients(ctx context.Context, search string) ([]Ingredient, error) {
	snapshot := append([]Ingredient(nil), s.ingredients...)
	close(s.entered)
	<-s.release
	return snapshot, nil
}

func TestCacheDropsFillStartedBeforeInvalidation(t *testing.T) {
	src := &blockingSource{
		countingSource: countingSource{ingredients: []Ingredient{{ID: 1, Name: "pasta", Category: CategoryGrains}}},
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	c := NewCache(src, time.Minute)
	ctx := context.Background()

	done := make(chan []Ingredient)
	go func() {
		got, _ := c.Ingredients(ctx)
		done <- got
	}()

	<-src.entered
	src.ingredients = append(src.ingredients, Ingredient{ID: 2, Name: "lettuce", Category: CategoryProduce})
	c.InvalidateIngredients()
	close(src.release)

	if got := <-done; len(got) != 1 {
		t.Fatalf("Expected the in-flight reader to get its own snapshot, got %d ingredients", len(got))
	}

	// The next read must go back to the source instead of serving the old snapshot.
	src.entered = make(chan struct{})
	got, err := c.Ingredients(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 ingredients after invalidation, got %d: %+v", len(got), got)
	}
}
