package client

import (
	"context"
	"net/http"

	"meal-planner/internal/catalog"
	"meal-planner/internal/httpapi/dto"

	"golang.org/x/sync/errgroup"
)

// ShoppingList fetches the shopping list of a week, optionally filtered by q.
func (s *Session) ShoppingList(ctx context.Context, week, q string) (*dto.ShoppingListResponse, error) {
	var out dto.ShoppingListResponse
	if _, err := s.send(ctx, http.MethodGet, "/api/shopping-list", weekQuery(week, q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshShoppingList is ShoppingList for callers that refresh repeatedly, such as on every
// keystroke of a filter. When a newer refresh starts before this one returns, the older
// result is dropped and ErrSuperseded is returned.
func (s *Session) RefreshShoppingList(ctx context.Context, week, q string) (*dto.ShoppingListResponse, error) {
	id := s.tracker.Next()
	list, err := s.ShoppingList(ctx, week, q)
	if !s.tracker.IsLatest(id) {
		s.logger.Debug("dropping superseded shopping list", "request", id, "latest", s.tracker.Latest())
		return nil, ErrSuperseded
	}
	return list, err
}

// Snapshot is everything a weekly planning screen shows.
type Snapshot struct {
	Plan        *dto.PlanResponse
	List        *dto.ShoppingListResponse
	Units       []catalog.Unit
	Ingredients []catalog.Ingredient
}

// Snapshot loads the plan, the shopping list and the reference data of a week in parallel.
func (s *Session) Snapshot(ctx context.Context, week string) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Plan, err = s.Plan(gctx, week)
		return err
	})
	g.Go(func() error {
		var err error
		snap.List, err = s.ShoppingList(gctx, week, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.Units, err = s.Units(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Ingredients, err = s.Ingredients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
