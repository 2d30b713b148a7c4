package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/catalog"
	"meal-planner/internal/planner"
	shoppingdb "meal-planner/internal/shopping/db"
)

// CheckedRepository persists which shopping list items a user has ticked off, per week.
type CheckedRepository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewCheckedRepository creates a new checked-state repository.
func NewCheckedRepository(d *sql.DB) *CheckedRepository {
	return &CheckedRepository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// Checked returns the checked flag of every stored item key of the user's week.
func (r *CheckedRepository) Checked(ctx context.Context, userID int64, weekStart time.Time) (map[string]bool, error) {
	rows, err := r.queries.ListCheckedItems(ctx, shoppingdb.ListCheckedItemsParams{
		UserID:    userID,
		WeekStart: planner.WeekKey(weekStart),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list checked items: %w", err)
	}

	checked := make(map[string]bool, len(rows))
	for _, row := range rows {
		checked[row.ItemKey] = row.Checked
	}
	return checked, nil
}

// Set stores the checked flag of one item.
func (r *CheckedRepository) Set(ctx context.Context, userID int64, weekStart time.Time, key string, category catalog.Category, checked bool) error {
	if _, _, err := ParseItemKey(key); err != nil {
		return err
	}
	err := r.queries.UpsertCheckedItem(ctx, shoppingdb.UpsertCheckedItemParams{
		UserID:    userID,
		WeekStart: planner.WeekKey(weekStart),
		ItemKey:   key,
		Category:  string(category),
		Checked:   checked,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to store checked item: %w", err)
	}
	return nil
}

// Toggle flips the checked flag of one item and returns the new value.
func (r *CheckedRepository) Toggle(ctx context.Context, userID int64, weekStart time.Time, key string, category catalog.Category) (bool, error) {
	if _, _, err := ParseItemKey(key); err != nil {
		return false, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	week := planner.WeekKey(weekStart)

	current := false
	row, err := qtx.GetCheckedItem(ctx, shoppingdb.GetCheckedItemParams{UserID: userID, WeekStart: week, ItemKey: key})
	switch {
	case err == nil:
		current = row.Checked
	case errors.Is(err, sql.ErrNoRows):
	default:
		return false, fmt.Errorf("failed to get checked item: %w", err)
	}

	err = qtx.UpsertCheckedItem(ctx, shoppingdb.UpsertCheckedItemParams{
		UserID:    userID,
		WeekStart: week,
		ItemKey:   key,
		Category:  string(category),
		Checked:   !current,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to store checked item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit checked item: %w", err)
	}
	return !current, nil
}

// SetAll marks every entry of a category group as checked or unchecked.
func (r *CheckedRepository) SetAll(ctx context.Context, userID int64, weekStart time.Time, group CategoryGroup, checked bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	week := planner.WeekKey(weekStart)
	now := time.Now().UTC()

	for _, e := range group.Entries {
		err := qtx.UpsertCheckedItem(ctx, shoppingdb.UpsertCheckedItemParams{
			UserID:    userID,
			WeekStart: week,
			ItemKey:   e.Key,
			Category:  string(group.Category),
			Checked:   checked,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to store checked item %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checked items: %w", err)
	}
	return nil
}

// ClearWeek forgets every checked flag of the user's week.
func (r *CheckedRepository) ClearWeek(ctx context.Context, userID int64, weekStart time.Time) error {
	err := r.queries.DeleteCheckedItemsForWeek(ctx, shoppingdb.DeleteCheckedItemsForWeekParams{
		UserID:    userID,
		WeekStart: planner.WeekKey(weekStart),
	})
	if err != nil {
		return fmt.Errorf("failed to clear checked items: %w", err)
	}
	return nil
}
