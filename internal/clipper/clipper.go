// Package clipper imports recipes from web pages: it strips the page down with goquery, asks
// an LLM to structure it and resolves the ingredients against the catalog.
package clipper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"meal-planner/internal/catalog"
	"meal-planner/internal/llm"
	"meal-planner/internal/logging"
	"meal-planner/internal/recipe"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	agentName = "clipper"
	// maxPageText caps the page text sent to the model.
	maxPageText = 20000
)

// ErrNoRecipe is returned when the model finds no recipe on the page.
var ErrNoRecipe = errors.New("no recipe found on page")

// RecipeStore saves imported recipes.
type RecipeStore interface {
	Create(ctx context.Context, rec recipe.Recipe) (*recipe.Recipe, error)
}

// Catalog resolves ingredient and unit names, creating the ones it does not know.
type Catalog interface {
	FindIngredient(ctx context.Context, name string) (*catalog.Ingredient, error)
	CreateIngredient(ctx context.Context, name string, category catalog.Category) (*catalog.Ingredient, error)
	FindUnit(ctx context.Context, name string) (*catalog.Unit, error)
	CreateUnit(ctx context.Context, name, abbreviation string) (*catalog.Unit, error)
}

// CacheInvalidator is told when the catalog changed.
type CacheInvalidator interface {
	InvalidateIngredients()
	InvalidateUnits()
}

// UsageRecorder stores the token usage of each model call.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, agent string, usage llm.Usage, latency time.Duration) error
}

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	recipes    RecipeStore
	catalog    Catalog
	cache      CacheInvalidator
	usage      UsageRecorder
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClipper creates a new Clipper. Page fetches are limited to requestsPerMinute; zero or
// less disables the limit. cache and usage may be nil.
func NewClipper(textGen llm.TextGenerator, recipes RecipeStore, cat Catalog, cache CacheInvalidator, usage UsageRecorder, requestsPerMinute int) *Clipper {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &Clipper{
		textGen:    textGen,
		recipes:    recipes,
		catalog:    cat,
		cache:      cache,
		usage:      usage,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logging.New("clipper"),
	}
}

// Result describes an imported recipe.
type Result struct {
	Recipe             *recipe.Recipe
	CreatedIngredients []string
	CreatedUnits       []string
	Usage              llm.Usage
}

// ClipURL fetches the URL, extracts the recipe with the model, resolves its ingredients and
// saves it.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*Result, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	extracted, usage, err := c.extract(ctx, content)
	if err != nil {
		return nil, err
	}

	res := &Result{Usage: usage}
	rec, err := c.resolve(ctx, extracted, url, res)
	if err != nil {
		return nil, err
	}

	saved, err := c.recipes.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	res.Recipe = saved

	c.logger.Info("recipe imported", "url", url, "id", saved.ID, "name", saved.Name,
		"ingredients", len(saved.Ingredients), "new_ingredients", len(res.CreatedIngredients))
	return res, nil
}

func (c *Clipper) extract(ctx context.Context, content string) (*ExtractedRecipe, llm.Usage, error) {
	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, buildPrompt(content))
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("ai extraction failed: %w", err)
	}
	if c.usage != nil {
		if err := c.usage.RecordUsage(ctx, agentName, resp.Usage, time.Since(start)); err != nil {
			c.logger.Warn("failed to record usage", "err", err)
		}
	}

	extracted, err := parseExtracted(resp.Content)
	if err != nil {
		return nil, resp.Usage, err
	}
	return extracted, resp.Usage, nil
}

// resolve maps the extracted ingredient names onto catalog ids, creating what is missing.
func (c *Clipper) resolve(ctx context.Context, ex *ExtractedRecipe, sourceURL string, res *Result) (recipe.Recipe, error) {
	rec := recipe.Recipe{
		Name:         ex.Title,
		Servings:     int(ex.Servings),
		PrepTime:     ex.PrepTime,
		Instructions: formatSteps(ex.Steps),
		SourceURL:    sourceURL,
	}
	defer c.invalidate(res)

	for _, ing := range ex.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}

		found, err := c.catalog.FindIngredient(ctx, name)
		if errors.Is(err, catalog.ErrNotFound) {
			found, err = c.catalog.CreateIngredient(ctx, name, catalog.ParseCategory(ing.Category))
			if err == nil {
				res.CreatedIngredients = append(res.CreatedIngredients, found.Name)
			}
		}
		if err != nil {
			return recipe.Recipe{}, fmt.Errorf("failed to resolve ingredient %q: %w", name, err)
		}

		line := recipe.IngredientLine{IngredientID: found.ID}
		if ing.Quantity != nil && *ing.Quantity > 0 {
			line.Quantity = recipe.Float(*ing.Quantity)
		}

		if unitName := strings.TrimSpace(ing.Unit); unitName != "" {
			unit, err := c.catalog.FindUnit(ctx, unitName)
			if errors.Is(err, catalog.ErrNotFound) {
				unit, err = c.catalog.CreateUnit(ctx, unitName, "")
				if err == nil {
					res.CreatedUnits = append(res.CreatedUnits, unit.Name)
				}
			}
			if err != nil {
				return recipe.Recipe{}, fmt.Errorf("failed to resolve unit %q: %w", unitName, err)
			}
			line.UnitID = recipe.ID(unit.ID)
		}

		rec.Ingredients = append(rec.Ingredients, line)
	}

	return rec, nil
}

// invalidate drops the cached lists the resolve step added rows to. Rows created before a
// failed resolve stay in the catalog, so this runs on every return path.
func (c *Clipper) invalidate(res *Result) {
	if c.cache == nil {
		return
	}
	if len(res.CreatedIngredients) > 0 {
		c.cache.InvalidateIngredients()
	}
	if len(res.CreatedUnits) > 0 {
		c.cache.InvalidateUnits()
	}
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "meal-planner/1.0 (+recipe importer)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Structured recipe data survives the script purge below.
	var structured []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); strings.Contains(text, "Recipe") {
			structured = append(structured, text)
		}
	})

	// Remove noise to save LLM tokens
	doc.Find("script, style, noscript, nav, header, footer, aside, iframe, form, ads, .ads, #ads, .comments, #comments").Remove()

	var sb strings.Builder
	for _, s := range structured {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Join(strings.Fields(doc.Find("body").Text()), " "))

	return truncate(sb.String(), maxPageText), nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func formatSteps(steps []string) string {
	var sb strings.Builder
	n := 0
	for _, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		n++
		if n > 1 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", n, step)
	}
	return sb.String()
}
