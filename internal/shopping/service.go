package shopping

import (
	"context"
	"fmt"
	"sync"
	"time"

	"meal-planner/internal/catalog"
	"meal-planner/internal/logging"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// PlanSource lists a user's planned meals for a week.
type PlanSource interface {
	ListWeek(ctx context.Context, userID int64, weekStart time.Time) ([]planner.PlannedMeal, error)
}

// RecipeSource loads recipes by ID.
type RecipeSource interface {
	GetByIDs(ctx context.Context, ids []int64) ([]recipe.Recipe, error)
}

// CatalogSource provides ingredient and unit reference data.
type CatalogSource interface {
	Ingredients(ctx context.Context) ([]catalog.Ingredient, error)
	Units(ctx context.Context) ([]catalog.Unit, error)
}

// List is a built shopping list for one user and week.
type List struct {
	RequestID uint64          `json:"request_id"`
	UserID    int64           `json:"user_id"`
	WeekStart time.Time       `json:"week_start"`
	Groups    []CategoryGroup `json:"groups"`
	Skipped   int             `json:"skipped"`
	Issues    []error         `json:"-"`
	BuiltAt   time.Time       `json:"built_at"`
}

// Builder loads a user's week and aggregates it into a shopping list.
type Builder struct {
	plans    PlanSource
	recipes  RecipeSource
	catalog  CatalogSource
	opts     Options
	metrics  *Metrics
	logger   *log.Logger
	trackers sync.Map // user id -> *RequestTracker
}

// NewBuilder creates a Builder. metrics may be nil.
func NewBuilder(plans PlanSource, recipes RecipeSource, cat CatalogSource, opts Options, metrics *Metrics) *Builder {
	return &Builder{
		plans:   plans,
		recipes: recipes,
		catalog: cat,
		opts:    opts,
		metrics: metrics,
		logger:  logging.New("shopping"),
	}
}

func (b *Builder) tracker(userID int64) *RequestTracker {
	t, _ := b.trackers.LoadOrStore(userID, &RequestTracker{})
	return t.(*RequestTracker)
}

// Build loads and aggregates the user's week. Every call is tagged with a new request id;
// use IsLatest to drop a list that was overtaken by a newer build for the same user.
func (b *Builder) Build(ctx context.Context, userID int64, weekStart time.Time) (*List, error) {
	start := time.Now()
	reqID := b.tracker(userID).Next()
	weekStart = planner.WeekStart(weekStart)

	var (
		meals       []planner.PlannedMeal
		recipes     []recipe.Recipe
		ingredients []catalog.Ingredient
		units       []catalog.Unit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meals, err = b.plans.ListWeek(gctx, userID, weekStart)
		if err != nil {
			return err
		}
		recipes, err = b.recipes.GetByIDs(gctx, recipeIDs(meals))
		return err
	})
	g.Go(func() error {
		var err error
		ingredients, err = b.catalog.Ingredients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		units, err = b.catalog.Units(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		b.metrics.RecordBuild("error", time.Since(start), nil)
		return nil, fmt.Errorf("failed to load shopping list data: %w", err)
	}

	res := Aggregate(meals, recipe.Index(recipes), catalog.IngredientIndex(ingredients), catalog.UnitIndex(units), b.opts)

	status := "success"
	if !b.IsLatest(userID, reqID) {
		status = "superseded"
	}
	b.metrics.RecordBuild(status, time.Since(start), &res)

	if len(res.Issues) > 0 {
		b.logger.Warn("shopping list built with issues", "user", userID, "week", planner.WeekKey(weekStart), "skipped", res.Skipped, "issues", len(res.Issues))
		for _, issue := range res.Issues {
			b.logger.Debug("aggregation issue", "user", userID, "err", issue)
		}
	}

	return &List{
		RequestID: reqID,
		UserID:    userID,
		WeekStart: weekStart,
		Groups:    res.Groups,
		Skipped:   res.Skipped,
		Issues:    res.Issues,
		BuiltAt:   time.Now().UTC(),
	}, nil
}

// IsLatest reports whether requestID is the most recent build started for the user.
func (b *Builder) IsLatest(userID int64, requestID uint64) bool {
	return b.tracker(userID).IsLatest(requestID)
}

func recipeIDs(meals []planner.PlannedMeal) []int64 {
	seen := make(map[int64]bool, len(meals))
	ids := make([]int64, 0, len(meals))
	for _, m := range meals {
		if !seen[m.RecipeID] {
			seen[m.RecipeID] = true
			ids = append(ids, m.RecipeID)
		}
	}
	return ids
}
