package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	cacheKeyUnits       = "units"
	cacheKeyIngredients = "ingredients"
)

// Source is the subset of Repository the cache reads through.
type Source interface {
	ListIngredients(ctx context.Context, search string) ([]Ingredient, error)
	ListUnits(ctx context.Context) ([]Unit, error)
}

// Cache is a shared read-through cache for reference data keyed by resource type.
// Writers call Invalidate after every catalog mutation.
type Cache struct {
	source Source
	store  *cache.Cache

	// mu guards gens. Each invalidation bumps the key's generation; a fill read under an
	// older generation is discarded.
	mu   sync.Mutex
	gens map[string]uint64
}

// NewCache wraps source with a TTL cache.
func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{
		source: source,
		store:  cache.New(ttl, ttl*2),
		gens:   make(map[string]uint64),
	}
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// fill stores v unless key was invalidated after gen was read.
func (c *Cache) fill(key string, gen uint64, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return
	}
	c.store.Set(key, v, cache.DefaultExpiration)
}

// Ingredients returns the full ingredient list.
func (c *Cache) Ingredients(ctx context.Context) ([]Ingredient, error) {
	if v, ok := c.store.Get(cacheKeyIngredients); ok {
		return v.([]Ingredient), nil
	}

	gen := c.generation(cacheKeyIngredients)
	ingredients, err := c.source.ListIngredients(ctx, "")
	if err != nil {
		return nil, err
	}
	c.fill(cacheKeyIngredients, gen, ingredients)
	return ingredients, nil
}

// Units returns the full unit list.
func (c *Cache) Units(ctx context.Context) ([]Unit, error) {
	if v, ok := c.store.Get(cacheKeyUnits); ok {
		return v.([]Unit), nil
	}

	gen := c.generation(cacheKeyUnits)
	units, err := c.source.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(cacheKeyUnits, gen, units)
	return units, nil
}

// Invalidate drops the cached entries for the given resource types, or everything when none
// are given.
func (c *Cache) Invalidate(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(resources) == 0 {
		resources = []string{cacheKeyUnits, cacheKeyIngredients}
	}
	for _, r := range resources {
		c.gens[r]++
		c.store.Delete(r)
	}
}

// InvalidateIngredients drops the cached ingredient list.
func (c *Cache) InvalidateIngredients() { c.Invalidate(cacheKeyIngredients) }

// InvalidateUnits drops the cached unit list.
func (c *Cache) InvalidateUnits() { c.Invalidate(cacheKeyUnits) }
