package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/recipe/recipedb"
)

// Repository is a database-backed repository for recipes.
type Repository struct {
	queries *recipedb.Queries
	db      *sql.DB // Direct database access for transactions
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: recipedb.New(d),
		db:      d,
	}
}

// Create inserts a recipe with its ingredient lines and returns it with its ID set.
func (r *Repository) Create(ctx context.Context, rec Recipe) (*Recipe, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	qtx := r.queries.WithTx(tx)
	id, err := qtx.InsertRecipe(ctx, recipedb.InsertRecipeParams{
		Name:         strings.TrimSpace(rec.Name),
		Servings:     int64(rec.Servings),
		PrepTime:     rec.PrepTime,
		Instructions: rec.Instructions,
		SourceUrl:    rec.SourceURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := insertLines(ctx, qtx, id, rec.Ingredients); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe: %w", err)
	}

	rec.ID = id
	rec.Name = strings.TrimSpace(rec.Name)
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return &rec, nil
}

// Update replaces a recipe's fields and ingredient lines.
func (r *Repository) Update(ctx context.Context, rec Recipe) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	n, err := qtx.UpdateRecipe(ctx, recipedb.UpdateRecipeParams{
		Name:         strings.TrimSpace(rec.Name),
		Servings:     int64(rec.Servings),
		PrepTime:     rec.PrepTime,
		Instructions: rec.Instructions,
		SourceUrl:    rec.SourceURL,
		UpdatedAt:    time.Now().UTC(),
		ID:           rec.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := qtx.DeleteRecipeIngredients(ctx, rec.ID); err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}
	if err := insertLines(ctx, qtx, rec.ID, rec.Ingredients); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	return nil
}

// Get retrieves a recipe by its ID. It returns nil when the recipe does not exist.
func (r *Repository) Get(ctx context.Context, id int64) (*Recipe, error) {
	row, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	lines, err := r.queries.ListRecipeIngredients(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}

	rec := fromRow(row)
	rec.Ingredients = toLines(lines)
	return &rec, nil
}

// GetByIDs retrieves the recipes with the given IDs. Unknown IDs are silently absent from
// the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.queries.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by IDs: %w", err)
	}
	lines, err := r.queries.ListIngredientsForRecipes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}
	return assemble(rows, lines), nil
}

// List retrieves all recipes ordered by name.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.queries.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	lines, err := r.queries.ListAllRecipeIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}
	return assemble(rows, lines), nil
}

// Delete removes a recipe and its ingredient lines. Plan entries referencing it are kept.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteRecipe(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}

func insertLines(ctx context.Context, q *recipedb.Queries, recipeID int64, lines []IngredientLine) error {
	for i, line := range lines {
		params := recipedb.InsertRecipeIngredientParams{
			RecipeID:     recipeID,
			Position:     int64(i),
			IngredientID: line.IngredientID,
		}
		if line.Quantity != nil {
			params.Quantity = sql.NullFloat64{Float64: *line.Quantity, Valid: true}
		}
		if line.UnitID != nil {
			params.UnitID = sql.NullInt64{Int64: *line.UnitID, Valid: true}
		}
		if err := q.InsertRecipeIngredient(ctx, params); err != nil {
			return fmt.Errorf("failed to insert recipe ingredient %d: %w", i+1, err)
		}
	}
	return nil
}

func assemble(rows []recipedb.Recipe, lines []recipedb.RecipeIngredient) []Recipe {
	byRecipe := make(map[int64][]recipedb.RecipeIngredient)
	for _, l := range lines {
		byRecipe[l.RecipeID] = append(byRecipe[l.RecipeID], l)
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		rec := fromRow(row)
		rec.Ingredients = toLines(byRecipe[row.ID])
		recipes = append(recipes, rec)
	}
	return recipes
}

func fromRow(row recipedb.Recipe) Recipe {
	return Recipe{
		ID:           row.ID,
		Name:         row.Name,
		Servings:     int(row.Servings),
		PrepTime:     row.PrepTime,
		Instructions: row.Instructions,
		SourceURL:    row.SourceUrl,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toLines(rows []recipedb.RecipeIngredient) []IngredientLine {
	lines := make([]IngredientLine, 0, len(rows))
	for _, row := range rows {
		line := IngredientLine{IngredientID: row.IngredientID}
		if row.Quantity.Valid {
			line.Quantity = Float(row.Quantity.Float64)
		}
		if row.UnitID.Valid {
			line.UnitID = ID(row.UnitID.Int64)
		}
		lines = append(lines, line)
	}
	return lines
}
