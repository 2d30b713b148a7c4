package httpapi

import (
	"errors"
	"net/http"

	"meal-planner/internal/catalog"
	"meal-planner/internal/httpapi/dto"

	"github.com/labstack/echo/v4"
)

func (s *Server) listIngredients(c echo.Context) error {
	ctx := c.Request().Context()
	search := c.QueryParam("search")

	var (
		ingredients []catalog.Ingredient
		err         error
	)
	if search == "" {
		ingredients, err = s.deps.Cache.Ingredients(ctx)
	} else {
		ingredients, err = s.deps.Catalog.ListIngredients(ctx, search)
	}
	if err != nil {
		return err
	}
	if ingredients == nil {
		ingredients = []catalog.Ingredient{}
	}
	return c.JSON(http.StatusOK, dto.IngredientList{Results: ingredients})
}

func (s *Server) createIngredient(c echo.Context) error {
	var req dto.IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	if _, err := s.deps.Catalog.FindIngredient(ctx, req.Name); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "ingredient already exists")
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	ing, err := s.deps.Catalog.CreateIngredient(ctx, req.Name, catalog.ParseCategory(req.Category))
	if err != nil {
		return err
	}
	s.deps.Cache.InvalidateIngredients()
	return c.JSON(http.StatusCreated, ing)
}

func (s *Server) listUnits(c echo.Context) error {
	units, err := s.deps.Cache.Units(c.Request().Context())
	if err != nil {
		return err
	}
	if units == nil {
		units = []catalog.Unit{}
	}
	return c.JSON(http.StatusOK, dto.UnitList{Results: units})
}

func (s *Server) createUnit(c echo.Context) error {
	var req dto.UnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	if _, err := s.deps.Catalog.FindUnit(ctx, req.Name); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "unit already exists")
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	unit, err := s.deps.Catalog.CreateUnit(ctx, req.Name, req.Abbreviation)
	if err != nil {
		return err
	}
	s.deps.Cache.InvalidateUnits()
	return c.JSON(http.StatusCreated, unit)
}
