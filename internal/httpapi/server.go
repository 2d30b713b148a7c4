// Package httpapi exposes recipes, the weekly plan and the shopping list as a JSON API.
package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"meal-planner/internal/auth"
	"meal-planner/internal/catalog"
	"meal-planner/internal/config"
	"meal-planner/internal/logging"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// SessionCookie is the name of the session cookie.
	SessionCookie = "mp_session"
	// CSRFHeader carries the CSRF token on mutating requests and on login responses.
	CSRFHeader = "X-CSRFToken"
)

// AuthService is the part of auth.Service the API needs.
type AuthService interface {
	auth.Provider
	Register(ctx context.Context, username, password string) (*auth.User, error)
}

// Deps are the collaborators of the API server.
type Deps struct {
	DB       *sql.DB
	Auth     AuthService
	Recipes  *recipe.Repository
	Catalog  *catalog.Repository
	Cache    *catalog.Cache
	Plans    *planner.PlanRepository
	Builder  *shopping.Builder
	Checked  *shopping.CheckedRepository
	Registry *prometheus.Registry
}

// Server is the HTTP API server.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	deps    Deps
	logger  *log.Logger
	metrics *httpMetrics
	now     func() time.Time
}

// NewServer wires the routes. Deps.Registry receives the HTTP metrics and is served on
// /metrics.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	m, err := newHTTPMetrics(deps.Registry)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		cfg:     cfg,
		deps:    deps,
		logger:  logging.New("httpapi"),
		metrics: m,
		now:     time.Now,
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())
	e.Use(s.metrics.middleware)

	s.routes(e)
	return s, nil
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors to registry.
func RegisterRuntimeCollectors(registry *prometheus.Registry) error {
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	return registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

func (s *Server) routes(e *echo.Echo) {
	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.deps.Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})))

	api := e.Group("/api")
	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.POST("/logout", s.logout)
	api.GET("/auth/session", s.session)

	authed := api.Group("", s.requireSession, s.requireCSRF)
	authed.GET("/auth/csrf", s.csrf)

	authed.GET("/recipes", s.listRecipes)
	authed.POST("/recipes", s.createRecipe)
	authed.GET("/recipes/:id", s.getRecipe)
	authed.PUT("/recipes/:id", s.updateRecipe)
	authed.DELETE("/recipes/:id", s.deleteRecipe)

	authed.GET("/ingredients", s.listIngredients)
	authed.POST("/ingredients", s.createIngredient)
	authed.GET("/units", s.listUnits)
	authed.POST("/units", s.createUnit)

	authed.GET("/plan", s.getPlan)
	authed.POST("/plan", s.addPlannedMeal)
	authed.PATCH("/plan/:id", s.updateDiners)
	authed.DELETE("/plan/:id", s.deletePlannedMeal)

	authed.GET("/shopping-list", s.getShoppingList)
	authed.PUT("/shopping-list/checked", s.updateChecked)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("API server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	if s.deps.DB != nil {
		if err := s.deps.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
