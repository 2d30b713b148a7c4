package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"meal-planner/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionKey = "session"

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			keyvals := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"ip", v.RemoteIP,
				"latency", v.Latency,
			}
			if v.Error != nil {
				keyvals = append(keyvals, "err", v.Error)
				s.logger.Warn("request", keyvals...)
				return nil
			}
			s.logger.Debug("request", keyvals...)
			return nil
		},
	})
}

// requireSession rejects requests without a valid session cookie and stores the session in
// the context.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		sess, err := s.deps.Auth.Check(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				s.clearCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			return err
		}

		c.Set(sessionKey, sess)
		return next(c)
	}
}

// requireCSRF checks the CSRF header of mutating requests against the session token.
func (s *Server) requireCSRF(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch c.Request().Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return next(c)
		}

		if !csrfMatches(c, sessionFrom(c)) {
			return echo.NewHTTPError(http.StatusForbidden, "CSRF token missing or invalid")
		}
		return next(c)
	}
}

func csrfMatches(c echo.Context, sess *auth.Session) bool {
	token := c.Request().Header.Get(CSRFHeader)
	return sess != nil && token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRFToken)) == 1
}

func sessionFrom(c echo.Context) *auth.Session {
	sess, _ := c.Get(sessionKey).(*auth.Session)
	return sess
}

func (s *Server) setCookie(c echo.Context, sess *auth.Session) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
