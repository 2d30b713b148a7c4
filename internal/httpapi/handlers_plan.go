package httpapi

import (
	"net/http"

	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/planner"

	"github.com/labstack/echo/v4"
)

func (s *Server) getPlan(c echo.Context) error {
	week, err := planner.ParseWeek(c.QueryParam("week"), s.now())
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	meals, err := s.deps.Plans.ListWeek(ctx, sessionFrom(c).UserID, week)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(meals))
	for _, m := range meals {
		ids = append(ids, m.RecipeID)
	}
	recipes, err := s.deps.Recipes.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(recipes))
	for _, r := range recipes {
		names[r.ID] = r.Name
	}

	resp := dto.PlanResponse{WeekStart: planner.WeekKey(week), Meals: make([]dto.PlanMeal, 0, len(meals))}
	for _, m := range meals {
		resp.Meals = append(resp.Meals, dto.PlanMeal{PlannedMeal: m, RecipeName: names[m.RecipeID]})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) addPlannedMeal(c echo.Context) error {
	var req dto.PlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Day == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "day is required")
	}
	week, err := planner.ParseWeek(req.Week, s.now())
	if err != nil {
		return err
	}
	diners := s.cfg.DefaultDiners
	if diners <= 0 {
		diners = planner.DefaultDiners
	}
	if req.Diners != nil {
		diners = *req.Diners
	}
	if diners < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "diners must be at least 1")
	}

	ctx := c.Request().Context()
	rec, err := s.deps.Recipes.Get(ctx, req.RecipeID)
	if err != nil {
		return err
	}
	if rec == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "recipe does not exist")
	}

	meal, err := s.deps.Plans.Add(ctx, planner.PlannedMeal{
		UserID:    sessionFrom(c).UserID,
		WeekStart: week,
		Day:       *req.Day,
		Slot:      req.Slot,
		RecipeID:  req.RecipeID,
		Diners:    diners,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.PlanMeal{PlannedMeal: *meal, RecipeName: rec.Name})
}

func (s *Server) updateDiners(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req dto.DinersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Diners < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "diners must be at least 1")
	}

	ctx := c.Request().Context()
	userID := sessionFrom(c).UserID
	if err := s.deps.Plans.UpdateDiners(ctx, userID, id, req.Diners); err != nil {
		return err
	}
	meal, err := s.deps.Plans.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if meal == nil {
		return planner.ErrNotFound
	}
	return c.JSON(http.StatusOK, meal)
}

func (s *Server) deletePlannedMeal(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.deps.Plans.Delete(c.Request().Context(), sessionFrom(c).UserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
