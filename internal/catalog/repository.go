package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"meal-planner/internal/catalog/catalogdb"
)

// Repository is a database-backed store for ingredients and units.
type Repository struct {
	queries *catalogdb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: catalogdb.New(d),
		db:      d,
	}
}

// ListIngredients returns every ingredient ordered by name. A non-empty search restricts the
// result to names containing it.
func (r *Repository) ListIngredients(ctx context.Context, search string) ([]Ingredient, error) {
	var rows []catalogdb.Ingredient
	var err error

	search = strings.TrimSpace(search)
	if search != "" {
		rows, err = r.queries.SearchIngredients(ctx, "%"+search+"%")
	} else {
		rows, err = r.queries.ListIngredients(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	ingredients := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, Ingredient{
			ID:       row.ID,
			Name:     row.Name,
			Category: ParseCategory(row.Category),
		})
	}
	return ingredients, nil
}

// FindIngredient looks up an ingredient by name, ignoring case.
func (r *Repository) FindIngredient(ctx context.Context, name string) (*Ingredient, error) {
	row, err := r.queries.GetIngredientByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient by name: %w", err)
	}
	return &Ingredient{ID: row.ID, Name: row.Name, Category: ParseCategory(row.Category)}, nil
}

// CreateIngredient inserts a new ingredient and returns it with its ID.
func (r *Repository) CreateIngredient(ctx context.Context, name string, category Category) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("ingredient name is required")
	}
	if !category.Valid() {
		category = CategoryOther
	}

	id, err := r.queries.InsertIngredient(ctx, catalogdb.InsertIngredientParams{
		Name:     name,
		Category: string(category),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert ingredient: %w", err)
	}
	return &Ingredient{ID: id, Name: name, Category: category}, nil
}

// ListUnits returns every unit ordered by name.
func (r *Repository) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := r.queries.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	units := make([]Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, Unit{ID: row.ID, Name: row.Name, Abbreviation: row.Abbreviation})
	}
	return units, nil
}

// FindUnit looks up a unit by name or abbreviation, ignoring case.
func (r *Repository) FindUnit(ctx context.Context, name string) (*Unit, error) {
	name = strings.TrimSpace(name)
	row, err := r.queries.GetUnitByName(ctx, catalogdb.GetUnitByNameParams{Name: name, Abbreviation: name})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get unit by name: %w", err)
	}
	return &Unit{ID: row.ID, Name: row.Name, Abbreviation: row.Abbreviation}, nil
}

// CreateUnit inserts a new unit and returns it with its ID.
func (r *Repository) CreateUnit(ctx context.Context, name, abbreviation string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("unit name is required")
	}

	id, err := r.queries.InsertUnit(ctx, catalogdb.InsertUnitParams{
		Name:         name,
		Abbreviation: strings.TrimSpace(abbreviation),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert unit: %w", err)
	}
	return &Unit{ID: id, Name: name, Abbreviation: strings.TrimSpace(abbreviation)}, nil
}
