package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"meal-planner/internal/database"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{"Monday", Monday, false},
		{"sunday", Sunday, false},
		{" WED ", Wednesday, false},
		{"someday", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSlot(t *testing.T) {
	if s, err := ParseSlot("Dinner"); err != nil || s != Dinner {
		t.Errorf("Expected dinner, got %q (err %v)", s, err)
	}
	if _, err := ParseSlot("elevenses"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
	if Breakfast.Order() >= Dinner.Order() {
		t.Errorf("Expected breakfast before dinner")
	}
}

func TestWeekStart(t *testing.T) {
	// 2024-05-15 is a Wednesday.
	wed := time.Date(2024, 5, 15, 18, 30, 0, 0, time.UTC)
	want := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	if got := WeekStart(wed); !got.Equal(want) {
		t.Errorf("WeekStart = %v, want %v", got, want)
	}
	sun := time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC)
	if got := WeekStart(sun); !got.Equal(want) {
		t.Errorf("Expected Sunday to belong to the preceding Monday, got %v", got)
	}
	if got := GetNextMonday(wed); !got.Equal(want.AddDate(0, 0, 7)) {
		t.Errorf("GetNextMonday = %v", got)
	}

	parsed, err := ParseWeek("2024-05-16", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(want) {
		t.Errorf("ParseWeek = %v, want %v", parsed, want)
	}
	if _, err := ParseWeek("15/05/2024", time.Now()); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for bad week, got %v", err)
	}
	if got, _ := ParseWeek("", wed); !got.Equal(want) {
		t.Errorf("Expected empty week to mean current week, got %v", got)
	}
}

func createUser(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()
	res, err := db.SQL.Exec("INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)", name, "x", time.Now())
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestPlanRepository(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewPlanRepository(db.SQL)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	week := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	dinner, err := repo.Add(ctx, PlannedMeal{UserID: alice, WeekStart: week, Day: Tuesday, Slot: Dinner, RecipeID: 7})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if dinner.Diners != DefaultDiners {
		t.Errorf("Expected default diners %d, got %d", DefaultDiners, dinner.Diners)
	}
	if !dinner.WeekStart.Equal(WeekStart(week)) {
		t.Errorf("Expected week to be normalized to Monday, got %v", dinner.WeekStart)
	}

	lunch, err := repo.Add(ctx, PlannedMeal{UserID: alice, WeekStart: week, Day: Tuesday, Slot: Lunch, RecipeID: 8, Diners: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Add(ctx, PlannedMeal{UserID: alice, WeekStart: week, Day: Monday, Slot: Dinner, RecipeID: 9}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Add(ctx, PlannedMeal{UserID: bob, WeekStart: week, Day: Monday, Slot: Dinner, RecipeID: 9}); err != nil {
		t.Fatal(err)
	}

	t.Run("ListWeekOrdered", func(t *testing.T) {
		meals, err := repo.ListWeek(ctx, alice, week)
		if err != nil {
			t.Fatalf("ListWeek failed: %v", err)
		}
		if len(meals) != 3 {
			t.Fatalf("Expected 3 meals, got %d", len(meals))
		}
		if meals[0].Day != Monday || meals[1].ID != lunch.ID || meals[2].ID != dinner.ID {
			t.Errorf("Unexpected order: %+v", meals)
		}
	})

	t.Run("ExistsForWeek", func(t *testing.T) {
		ok, err := repo.ExistsForWeek(ctx, alice, week)
		if err != nil || !ok {
			t.Errorf("Expected plan to exist, got %v (err %v)", ok, err)
		}
		ok, err = repo.ExistsForWeek(ctx, alice, GetNextMonday(week))
		if err != nil || ok {
			t.Errorf("Expected no plan next week, got %v (err %v)", ok, err)
		}
	})

	t.Run("UpdateDiners", func(t *testing.T) {
		if err := repo.UpdateDiners(ctx, alice, dinner.ID, 5); err != nil {
			t.Fatalf("UpdateDiners failed: %v", err)
		}
		got, err := repo.Get(ctx, alice, dinner.ID)
		if err != nil || got == nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Diners != 5 {
			t.Errorf("Expected 5 diners, got %d", got.Diners)
		}
		if err := repo.UpdateDiners(ctx, bob, dinner.ID, 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected another user's meal to be invisible, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, alice, lunch.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := repo.Delete(ctx, alice, lunch.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddInvalid", func(t *testing.T) {
		_, err := repo.Add(ctx, PlannedMeal{UserID: alice, WeekStart: week, Day: Day(9), Slot: Dinner, RecipeID: 1})
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("Expected ErrInvalid, got %v", err)
		}
	})
}

func TestDayJSON(t *testing.T) {
	b, err := json.Marshal(PlannedMeal{Day: Thursday, Slot: Dinner})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"day":"Thursday"`) {
		t.Errorf("Expected the day encoded by name, got %s", b)
	}

	var m PlannedMeal
	if err := json.Unmarshal([]byte(`{"day":"sat","slot":"lunch"}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Day != Saturday {
		t.Errorf("Expected Saturday, got %v", m.Day)
	}
	if err := json.Unmarshal([]byte(`{"day":"blursday"}`), &m); err == nil {
		t.Error("Expected an unknown day to fail")
	}
}
