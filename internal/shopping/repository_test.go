package shopping

import (
	"context"
	"testing"
	"time"

	"meal-planner/internal/catalog"
	"meal-planner/internal/database"
)

func TestCheckedRepository(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewCheckedRepository(db.SQL)
	ctx := context.Background()

	res, err := db.SQL.Exec("INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)", "alice", "x", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	userID, _ := res.LastInsertId()
	week := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	t.Run("Toggle", func(t *testing.T) {
		on, err := repo.Toggle(ctx, userID, week, "1:1", catalog.CategoryGrains)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if !on {
			t.Error("Expected first toggle to check the item")
		}
		off, err := repo.Toggle(ctx, userID, week, "1:1", catalog.CategoryGrains)
		if err != nil {
			t.Fatal(err)
		}
		if off {
			t.Error("Expected second toggle to uncheck the item")
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		if _, err := repo.Toggle(ctx, userID, week, "pasta", catalog.CategoryGrains); err == nil {
			t.Error("Expected an invalid key to be rejected")
		}
	})

	t.Run("SetAll", func(t *testing.T) {
		group := CategoryGroup{
			Category: catalog.CategoryProduce,
			Entries:  []Entry{{Key: "2:none"}, {Key: "2:1"}},
		}
		if err := repo.SetAll(ctx, userID, week, group, true); err != nil {
			t.Fatalf("SetAll failed: %v", err)
		}

		checked, err := repo.Checked(ctx, userID, week)
		if err != nil {
			t.Fatal(err)
		}
		if !checked["2:none"] || !checked["2:1"] || checked["1:1"] {
			t.Errorf("Unexpected checked state: %v", checked)
		}

		// Another day of the same week shares the state.
		other, err := repo.Checked(ctx, userID, week.AddDate(0, 0, 3))
		if err != nil {
			t.Fatal(err)
		}
		if len(other) != len(checked) {
			t.Errorf("Expected the same week, got %v", other)
		}
	})

	t.Run("ClearWeek", func(t *testing.T) {
		if err := repo.Set(ctx, userID, week.AddDate(0, 0, 7), "3:none", catalog.CategorySpices, true); err != nil {
			t.Fatal(err)
		}
		if err := repo.ClearWeek(ctx, userID, week); err != nil {
			t.Fatalf("ClearWeek failed: %v", err)
		}
		checked, _ := repo.Checked(ctx, userID, week)
		if len(checked) != 0 {
			t.Errorf("Expected week cleared, got %v", checked)
		}
		next, _ := repo.Checked(ctx, userID, week.AddDate(0, 0, 7))
		if !next["3:none"] {
			t.Errorf("Expected next week untouched, got %v", next)
		}
	})
}
