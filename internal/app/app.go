// Package app wires the repositories, the shopping list builder and the recipe importer
// into one object shared by the CLI, the HTTP server and the Telegram bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"meal-planner/internal/auth"
	"meal-planner/internal/catalog"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/httpapi"
	"meal-planner/internal/llm"
	"meal-planner/internal/logging"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoImporter is returned by ImportRecipes when no LLM provider is configured.
var ErrNoImporter = errors.New("recipe import needs an LLM API key")

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	db  *database.DB

	Auth     *auth.Service
	Recipes  *recipe.Repository
	Catalog  *catalog.Repository
	Cache    *catalog.Cache
	Plans    *planner.PlanRepository
	Checked  *shopping.CheckedRepository
	Builder  *shopping.Builder
	Metrics  *metrics.Store
	Registry *prometheus.Registry
	// Clipper is nil when textGen was nil.
	Clipper *clipper.Clipper

	logger *log.Logger
}

// New creates an App over an open database. textGen may be nil, which disables recipe import.
func New(cfg *config.Config, db *database.DB, textGen llm.TextGenerator) (*App, error) {
	registry := prometheus.NewRegistry()
	shoppingMetrics, err := shopping.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register shopping metrics: %w", err)
	}

	a := &App{
		cfg:      cfg,
		db:       db,
		Auth:     auth.NewService(db.SQL, cfg.SessionSecret, cfg.SessionTTL),
		Recipes:  recipe.NewRepository(db.SQL),
		Catalog:  catalog.NewRepository(db.SQL),
		Plans:    planner.NewPlanRepository(db.SQL),
		Checked:  shopping.NewCheckedRepository(db.SQL),
		Metrics:  metrics.NewStore(db.SQL),
		Registry: registry,
		logger:   logging.New("app"),
	}
	a.Cache = catalog.NewCache(a.Catalog, cfg.CatalogCacheTTL)
	a.Builder = shopping.NewBuilder(a.Plans, a.Recipes, a.Cache, shopping.Options{DefaultServings: cfg.DefaultServings}, shoppingMetrics)

	if textGen != nil {
		a.Clipper = clipper.NewClipper(textGen, a.Recipes, a.Catalog, a.Cache, a.Metrics, cfg.ClipperRequestsPerMinute)
	}
	return a, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// HTTPDeps returns the collaborators of the HTTP API.
func (a *App) HTTPDeps() httpapi.Deps {
	return httpapi.Deps{
		DB:       a.db.SQL,
		Auth:     a.Auth,
		Recipes:  a.Recipes,
		Catalog:  a.Catalog,
		Cache:    a.Cache,
		Plans:    a.Plans,
		Builder:  a.Builder,
		Checked:  a.Checked,
		Registry: a.Registry,
	}
}

// NewServer builds the HTTP API server.
func (a *App) NewServer() (*httpapi.Server, error) {
	return httpapi.NewServer(a.cfg, a.HTTPDeps())
}

// ShoppingList builds the user's list for the week, applies the stored checked flags and
// filters it by query. The returned groups are the filtered ones; list.Groups stays complete.
func (a *App) ShoppingList(ctx context.Context, userID int64, week time.Time, query string) (*shopping.List, []shopping.CategoryGroup, error) {
	list, err := a.Builder.Build(ctx, userID, week)
	if err != nil {
		return nil, nil, err
	}
	checked, err := a.Checked.Checked(ctx, userID, list.WeekStart)
	if err != nil {
		return nil, nil, err
	}
	list.Groups = shopping.MarkChecked(list.Groups, checked)
	return list, shopping.Filter(list.Groups, query), nil
}

// SeedCatalog loads units and ingredients from a TOML file, or the built-in catalog when
// path is empty.
func (a *App) SeedCatalog(ctx context.Context, path string) (catalog.SeedResult, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return catalog.SeedResult{}, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	seed, err := catalog.ParseSeed(data)
	if err != nil {
		return catalog.SeedResult{}, err
	}
	res, err := a.Catalog.Seed(ctx, seed)
	if err != nil {
		return res, err
	}
	a.Cache.Invalidate()
	a.logger.Info("catalog seeded", "units", res.Units, "ingredients", res.Ingredients)
	return res, nil
}

// ImportRecipes clips each URL in turn. A failing URL is logged and skipped; the joined
// errors are returned alongside the recipes that were imported.
func (a *App) ImportRecipes(ctx context.Context, urls []string) ([]*clipper.Result, error) {
	if a.Clipper == nil {
		return nil, ErrNoImporter
	}

	var (
		results []*clipper.Result
		errs    []error
	)
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		a.logger.Info("importing recipe", "url", url)
		res, err := a.Clipper.ClipURL(ctx, url)
		if err != nil {
			a.logger.Error("failed to import recipe", "url", url, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// CreateUser registers a user.
func (a *App) CreateUser(ctx context.Context, username, password string) (*auth.User, error) {
	return a.Auth.Register(ctx, username, password)
}

// CleanupMetrics removes LLM usage records older than days.
func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	n, err := a.Metrics.Cleanup(ctx, days)
	if err != nil {
		return 0, err
	}
	a.logger.Info("metrics cleaned up", "older_than_days", days, "deleted", n)
	return n, nil
}
