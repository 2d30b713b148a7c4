package httpapi

import (
	"errors"
	"net/http"
	"time"

	"meal-planner/internal/auth"
	"meal-planner/internal/httpapi/dto"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	var req dto.Credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := s.deps.Auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// login answers with the complete session state: the cookie, and the CSRF token both in the
// body and in the X-CSRFToken header.
func (s *Server) login(c echo.Context) error {
	var req dto.Credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sess, err := s.deps.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	s.setCookie(c, sess)
	c.Response().Header().Set(CSRFHeader, sess.CSRFToken)
	s.logger.Info("user logged in", "user", sess.Username)

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		UserID:        sess.UserID,
		Username:      sess.Username,
		CSRFToken:     sess.CSRFToken,
		ExpiresAt:     sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// logout revokes the caller's session. A live session must come with its CSRF token; a
// missing or expired one only clears the cookie.
func (s *Server) logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		sess, err := s.deps.Auth.Check(c.Request().Context(), cookie.Value)
		switch {
		case errors.Is(err, auth.ErrUnauthorized):
		case err != nil:
			return err
		case !csrfMatches(c, sess):
			return echo.NewHTTPError(http.StatusForbidden, "CSRF token missing or invalid")
		default:
			if err := s.deps.Auth.Logout(c.Request().Context(), cookie.Value); err != nil {
				return err
			}
		}
	}
	s.clearCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// session reports whether the caller is logged in. It never fails for anonymous callers.
func (s *Server) session(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
	}

	sess, err := s.deps.Auth.Check(c.Request().Context(), cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
	}

	c.Response().Header().Set(CSRFHeader, sess.CSRFToken)
	return c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		UserID:        sess.UserID,
		Username:      sess.Username,
		CSRFToken:     sess.CSRFToken,
		ExpiresAt:     sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) csrf(c echo.Context) error {
	sess := sessionFrom(c)
	c.Response().Header().Set(CSRFHeader, sess.CSRFToken)
	return c.JSON(http.StatusOK, dto.CSRFResponse{CSRFToken: sess.CSRFToken})
}
