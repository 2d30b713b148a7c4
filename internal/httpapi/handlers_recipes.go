package httpapi

import (
	"net/http"
	"strconv"

	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/recipe"

	"github.com/labstack/echo/v4"
)

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func (s *Server) listRecipes(c echo.Context) error {
	recipes, err := s.deps.Recipes.List(c.Request().Context())
	if err != nil {
		return err
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	return c.JSON(http.StatusOK, dto.RecipeList{Results: recipes})
}

func (s *Server) getRecipe(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	rec, err := s.deps.Recipes.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if rec == nil {
		return recipe.ErrNotFound
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) createRecipe(c echo.Context) error {
	var rec recipe.Recipe
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rec.ID = 0

	created, err := s.deps.Recipes.Create(c.Request().Context(), rec)
	if err != nil {
		return err
	}
	s.logger.Info("recipe created", "id", created.ID, "name", created.Name, "user", sessionFrom(c).Username)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateRecipe(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var rec recipe.Recipe
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rec.ID = id

	ctx := c.Request().Context()
	if err := s.deps.Recipes.Update(ctx, rec); err != nil {
		return err
	}
	updated, err := s.deps.Recipes.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteRecipe(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.deps.Recipes.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
