package httpapi

import (
	"errors"
	"net/http"

	"meal-planner/internal/auth"
	"meal-planner/internal/catalog"
	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"github.com/labstack/echo/v4"
)

var errInvalidID = errors.New("invalid id")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, recipe.ErrNotFound),
		errors.Is(err, planner.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, recipe.ErrInvalid),
		errors.Is(err, planner.ErrInvalid),
		errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, shopping.ErrInvalidKey),
		errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(he.Code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		msg = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, dto.ErrorResponse{Error: msg})
	}
	if err != nil {
		s.logger.Error("failed to write error response", "err", err)
	}
}
