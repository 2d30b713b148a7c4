package planner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"meal-planner/internal/planner/plan_db"
)

// PlanRepository is a database-backed repository for planned meals.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// Add stores a planned meal. A zero Diners count is replaced by DefaultDiners.
func (r *PlanRepository) Add(ctx context.Context, meal PlannedMeal) (*PlannedMeal, error) {
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	if meal.Diners == 0 {
		meal.Diners = DefaultDiners
	}
	meal.WeekStart = WeekStart(meal.WeekStart)
	meal.CreatedAt = time.Now().UTC()

	id, err := r.queries.InsertPlannedMeal(ctx, plan_db.InsertPlannedMealParams{
		UserID:    meal.UserID,
		WeekStart: WeekKey(meal.WeekStart),
		Day:       int64(meal.Day),
		Slot:      string(meal.Slot),
		RecipeID:  meal.RecipeID,
		Diners:    int64(meal.Diners),
		CreatedAt: meal.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert planned meal: %w", err)
	}
	meal.ID = id
	return &meal, nil
}

// Get retrieves one of the user's planned meals. It returns nil when it does not exist.
func (r *PlanRepository) Get(ctx context.Context, userID, id int64) (*PlannedMeal, error) {
	row, err := r.queries.GetPlannedMeal(ctx, plan_db.GetPlannedMealParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get planned meal: %w", err)
	}
	meal, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// UpdateDiners changes the diner count of one of the user's planned meals.
func (r *PlanRepository) UpdateDiners(ctx context.Context, userID, id int64, diners int) error {
	n, err := r.queries.UpdatePlannedMealDiners(ctx, plan_db.UpdatePlannedMealDinersParams{
		Diners: int64(diners),
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to update diners for planned meal %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one of the user's planned meals.
func (r *PlanRepository) Delete(ctx context.Context, userID, id int64) error {
	n, err := r.queries.DeletePlannedMeal(ctx, plan_db.DeletePlannedMealParams{ID: id, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to delete planned meal %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWeek returns the user's planned meals for the week containing weekStart, ordered by day,
// slot and insertion.
func (r *PlanRepository) ListWeek(ctx context.Context, userID int64, weekStart time.Time) ([]PlannedMeal, error) {
	rows, err := r.queries.ListPlannedMealsForWeek(ctx, plan_db.ListPlannedMealsForWeekParams{
		UserID:    userID,
		WeekStart: WeekKey(weekStart),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list planned meals for user %d: %w", userID, err)
	}

	meals := make([]PlannedMeal, 0, len(rows))
	for _, row := range rows {
		meal, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	SortMeals(meals)
	return meals, nil
}

// ExistsForWeek reports whether the user has planned anything for the week.
func (r *PlanRepository) ExistsForWeek(ctx context.Context, userID int64, weekStart time.Time) (bool, error) {
	count, err := r.queries.CountPlannedMealsForWeek(ctx, plan_db.CountPlannedMealsForWeekParams{
		UserID:    userID,
		WeekStart: WeekKey(weekStart),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check plan for week: %w", err)
	}
	return count > 0, nil
}

// SortMeals orders meals by day, slot and ID in place.
func SortMeals(meals []PlannedMeal) {
	sort.SliceStable(meals, func(i, j int) bool {
		a, b := meals[i], meals[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Slot.Order() != b.Slot.Order() {
			return a.Slot.Order() < b.Slot.Order()
		}
		return a.ID < b.ID
	})
}

func fromRow(row plan_db.PlannedMeal) (PlannedMeal, error) {
	week, err := time.Parse(WeekLayout, row.WeekStart)
	if err != nil {
		return PlannedMeal{}, fmt.Errorf("failed to parse week start %q: %w", row.WeekStart, err)
	}
	return PlannedMeal{
		ID:        row.ID,
		UserID:    row.UserID,
		WeekStart: week,
		Day:       Day(row.Day),
		Slot:      Slot(row.Slot),
		RecipeID:  row.RecipeID,
		Diners:    int(row.Diners),
		CreatedAt: row.CreatedAt,
	}, nil
}
