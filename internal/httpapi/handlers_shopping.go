package httpapi

import (
	"context"
	"net/http"
	"time"

	"meal-planner/internal/catalog"
	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"

	"github.com/labstack/echo/v4"
)

// buildList builds the user's list for week with the stored checked flags applied.
func (s *Server) buildList(ctx context.Context, userID int64, week time.Time) (*shopping.List, error) {
	list, err := s.deps.Builder.Build(ctx, userID, week)
	if err != nil {
		return nil, err
	}
	checked, err := s.deps.Checked.Checked(ctx, userID, week)
	if err != nil {
		return nil, err
	}
	list.Groups = shopping.MarkChecked(list.Groups, checked)
	return list, nil
}

func (s *Server) getShoppingList(c echo.Context) error {
	week, err := planner.ParseWeek(c.QueryParam("week"), s.now())
	if err != nil {
		return err
	}

	list, err := s.buildList(c.Request().Context(), sessionFrom(c).UserID, week)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	return c.JSON(http.StatusOK, dto.NewShoppingList(list, shopping.Filter(list.Groups, query), query))
}

// updateChecked toggles or sets one item when Key is given, or sets every item of a category.
// It answers with the rebuilt list.
func (s *Server) updateChecked(c echo.Context) error {
	var req dto.CheckedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	week, err := planner.ParseWeek(req.Week, s.now())
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := sessionFrom(c).UserID
	list, err := s.deps.Builder.Build(ctx, userID, week)
	if err != nil {
		return err
	}

	switch {
	case req.Key != "":
		if _, _, err := shopping.ParseItemKey(req.Key); err != nil {
			return err
		}
		entry, ok := shopping.Find(list.Groups, req.Key)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "item is not on the shopping list")
		}
		if req.Checked == nil {
			_, err = s.deps.Checked.Toggle(ctx, userID, week, entry.Key, entry.Category)
		} else {
			err = s.deps.Checked.Set(ctx, userID, week, entry.Key, entry.Category, *req.Checked)
		}
		if err != nil {
			return err
		}
	case req.Category != "":
		if req.Checked == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "checked is required for a category")
		}
		cat := catalog.ParseCategory(req.Category)
		var group *shopping.CategoryGroup
		for i := range list.Groups {
			if list.Groups[i].Category == cat {
				group = &list.Groups[i]
				break
			}
		}
		if group == nil {
			return echo.NewHTTPError(http.StatusNotFound, "category is not on the shopping list")
		}
		if err := s.deps.Checked.SetAll(ctx, userID, week, *group, *req.Checked); err != nil {
			return err
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "key or category is required")
	}

	checked, err := s.deps.Checked.Checked(ctx, userID, week)
	if err != nil {
		return err
	}
	list.Groups = shopping.MarkChecked(list.Groups, checked)
	return c.JSON(http.StatusOK, dto.NewShoppingList(list, list.Groups, ""))
}
