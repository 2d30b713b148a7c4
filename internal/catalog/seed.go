package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed seed.toml
var defaultSeed []byte

// SeedData is the TOML layout of a catalog seed file.
type SeedData struct {
	Units       []SeedUnit       `toml:"units"`
	Ingredients []SeedIngredient `toml:"ingredients"`
}

type SeedUnit struct {
	Name         string `toml:"name"`
	Abbreviation string `toml:"abbreviation"`
}

type SeedIngredient struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// SeedResult counts the rows created by Seed.
type SeedResult struct {
	Units       int
	Ingredients int
}

// ParseSeed decodes a TOML seed document. An empty document yields the embedded default
// catalog.
func ParseSeed(data []byte) (*SeedData, error) {
	if len(data) == 0 {
		data = defaultSeed
	}
	var seed SeedData
	if _, err := toml.Decode(string(data), &seed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}
	return &seed, nil
}

// Seed inserts every unit and ingredient of seed that is not already present. Existing
// entries are left untouched, so seeding twice is harmless.
func (r *Repository) Seed(ctx context.Context, seed *SeedData) (SeedResult, error) {
	var res SeedResult

	for _, u := range seed.Units {
		if _, err := r.FindUnit(ctx, u.Name); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return res, err
		}
		if _, err := r.CreateUnit(ctx, u.Name, u.Abbreviation); err != nil {
			return res, err
		}
		res.Units++
	}

	for _, ing := range seed.Ingredients {
		if _, err := r.FindIngredient(ctx, ing.Name); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return res, err
		}
		if _, err := r.CreateIngredient(ctx, ing.Name, ParseCategory(ing.Category)); err != nil {
			return res, err
		}
		res.Ingredients++
	}

	return res, nil
}
