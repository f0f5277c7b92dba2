package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/cookbook/internal/recipe"
)

// StoredRecipe is a recipe together with its persistence metadata.
type StoredRecipe struct {
	ID uuid.UUID `json:"id"`
	recipe.Recipe
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RecipeSummary is the listing projection of a recipe. It omits sections and
// ingredients so list queries stay a single round trip.
type RecipeSummary struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category,omitempty"`
	Description      string    `json:"description,omitempty"`
	TotalTimeMinutes *int      `json:"total_time_minutes,omitempty"`
	TotalTimeDisplay string    `json:"total_time_display,omitempty"`
	Servings         *int      `json:"servings,omitempty"`
	ServingsUnit     string    `json:"servings_unit"`
	IsFavorite       bool      `json:"is_favorite"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ListFilter narrows and orders ListRecipes results.
type ListFilter struct {
	// Category filters by exact category name when non-empty.
	Category string

	// FavoritesOnly keeps only favorited recipes.
	FavoritesOnly bool

	// Search matches recipe titles case-insensitively when non-empty.
	Search string

	// Sort is one of "title", "created", or "updated" (the default).
	Sort string
}

// CreateRecipe persists a recipe with its sections and ingredients in one
// transaction. A non-empty category name is resolved to an existing category
// or creates one.
func (s *Store) CreateRecipe(ctx context.Context, r recipe.Recipe) (*StoredRecipe, error) {
	var id uuid.UUID

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		id, err = insertRecipe(ctx, tx, r)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}

	return s.GetRecipe(ctx, id)
}

// GetRecipe loads a recipe by ID, reassembling its sections and ingredients.
// Returns ErrNotFound when no recipe has the given ID.
func (s *Store) GetRecipe(ctx context.Context, id uuid.UUID) (*StoredRecipe, error) {
	var (
		sr         StoredRecipe
		categoryID *uuid.UUID
		category   *string
	)

	err := s.pool.QueryRow(ctx, `
		SELECT r.id, r.title, r.category_id, c.name, r.description,
		       r.prep_time_minutes, r.cook_time_minutes, r.rest_time_minutes,
		       r.servings, r.servings_unit, r.has_sections, r.instructions,
		       r.notes, r.source, r.is_favorite, r.created_at, r.updated_at
		FROM recipes r
		LEFT JOIN categories c ON c.id = r.category_id
		WHERE r.id = $1`, id).Scan(
		&sr.ID, &sr.Title, &categoryID, &category, &sr.Description,
		&sr.PrepTimeMinutes, &sr.CookTimeMinutes, &sr.RestTimeMinutes,
		&sr.Servings, &sr.ServingsUnit, &sr.HasSections, &sr.Instructions,
		&sr.Notes, &sr.Source, &sr.IsFavorite, &sr.CreatedAt, &sr.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	if category != nil {
		sr.Category = *category
	}

	if err := s.loadChildren(ctx, &sr); err != nil {
		return nil, err
	}

	return &sr, nil
}

// ListRecipes returns recipe summaries matching the filter.
func (s *Store) ListRecipes(ctx context.Context, filter ListFilter) ([]RecipeSummary, error) {
	query := `
		SELECT r.id, r.title, c.name, r.description,
		       r.prep_time_minutes, r.cook_time_minutes, r.rest_time_minutes,
		       r.servings, r.servings_unit, r.is_favorite, r.updated_at
		FROM recipes r
		LEFT JOIN categories c ON c.id = r.category_id`

	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("c.name = $%d", len(args)))
	}
	if filter.FavoritesOnly {
		where = append(where, "r.is_favorite")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("r.title ILIKE $%d", len(args)))
	}

	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}

	switch filter.Sort {
	case "title":
		query += " ORDER BY lower(r.title) ASC"
	case "created":
		query += " ORDER BY r.created_at DESC"
	default:
		query += " ORDER BY r.updated_at DESC"
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]RecipeSummary, 0)
	for rows.Next() {
		var (
			sum              RecipeSummary
			category         *string
			prep, cook, rest *int
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &category, &sum.Description,
			&prep, &cook, &rest, &sum.Servings, &sum.ServingsUnit,
			&sum.IsFavorite, &sum.UpdatedAt); err != nil {
			return nil, err
		}
		if category != nil {
			sum.Category = *category
		}
		sum.TotalTimeMinutes = totalTime(prep, cook, rest)
		times := recipe.Recipe{PrepTimeMinutes: prep, CookTimeMinutes: cook, RestTimeMinutes: rest}
		sum.TotalTimeDisplay = times.FormattedTotalTime()
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// AllRecipes loads every recipe in full, ordered by title, for export.
func (s *Store) AllRecipes(ctx context.Context) ([]StoredRecipe, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM recipes ORDER BY lower(title) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recipes := make([]StoredRecipe, 0, len(ids))
	for _, id := range ids {
		sr, err := s.GetRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *sr)
	}

	return recipes, nil
}

// UpdateRecipe replaces a recipe's fields, sections, and ingredients in one
// transaction. Returns ErrNotFound when no recipe has the given ID.
func (s *Store) UpdateRecipe(ctx context.Context, id uuid.UUID, r recipe.Recipe) (*StoredRecipe, error) {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		categoryID, err := resolveCategory(ctx, tx, r.Category)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE recipes
			SET title = $2, category_id = $3, description = $4,
			    prep_time_minutes = $5, cook_time_minutes = $6, rest_time_minutes = $7,
			    servings = $8, servings_unit = $9, has_sections = $10,
			    instructions = $11, notes = $12, source = $13, updated_at = now()
			WHERE id = $1`,
			id, r.Title, categoryID, r.Description,
			r.PrepTimeMinutes, r.CookTimeMinutes, r.RestTimeMinutes,
			r.Servings, servingsUnit(r), r.HasSections,
			flatInstructions(r), r.Notes, r.Source)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		// Children are replaced wholesale. Deleting sections cascades to
		// their ingredients, so flat ingredients need their own delete.
		if _, err := tx.Exec(ctx, `DELETE FROM ingredients WHERE recipe_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_sections WHERE recipe_id = $1`, id); err != nil {
			return err
		}

		return insertChildren(ctx, tx, id, r)
	})
	if err != nil {
		return nil, mapError(err)
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe and, via cascade, its sections and
// ingredients. Returns ErrNotFound when no recipe has the given ID.
func (s *Store) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFavorite flips a recipe's favorite flag and returns the new value.
func (s *Store) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	var favorite bool
	err := s.pool.QueryRow(ctx, `
		UPDATE recipes
		SET is_favorite = NOT is_favorite, updated_at = now()
		WHERE id = $1
		RETURNING is_favorite`, id).Scan(&favorite)
	if err != nil {
		return false, mapError(err)
	}
	return favorite, nil
}

// insertRecipe writes a recipe row plus its children inside tx and returns
// the new recipe's ID.
func insertRecipe(ctx context.Context, tx pgx.Tx, r recipe.Recipe) (uuid.UUID, error) {
	categoryID, err := resolveCategory(ctx, tx, r.Category)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (title, category_id, description,
			prep_time_minutes, cook_time_minutes, rest_time_minutes,
			servings, servings_unit, has_sections, instructions, notes, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		r.Title, categoryID, r.Description,
		r.PrepTimeMinutes, r.CookTimeMinutes, r.RestTimeMinutes,
		r.Servings, servingsUnit(r), r.HasSections,
		flatInstructions(r), r.Notes, r.Source).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := insertChildren(ctx, tx, id, r); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

// insertChildren writes the recipe's sections and ingredients.
func insertChildren(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, r recipe.Recipe) error {
	if !r.HasSections {
		return insertIngredients(ctx, tx, recipeID, nil, r.Ingredients)
	}

	for i, sec := range r.Sections {
		var sectionID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO recipe_sections (recipe_id, name, instructions, sort_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			recipeID, sec.Name, sec.Instructions, i).Scan(&sectionID)
		if err != nil {
			return err
		}

		if err := insertIngredients(ctx, tx, recipeID, &sectionID, sec.Ingredients); err != nil {
			return err
		}
	}

	return nil
}

func insertIngredients(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, sectionID *uuid.UUID, ingredients []recipe.Ingredient) error {
	for i, ing := range ingredients {
		_, err := tx.Exec(ctx, `
			INSERT INTO ingredients (recipe_id, section_id, quantity, unit, name, preparation, is_optional, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			recipeID, sectionID, ing.Quantity, ing.Unit, ing.Name, ing.Preparation, ing.IsOptional, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// loadChildren populates the recipe's sections or flat ingredient list.
func (s *Store) loadChildren(ctx context.Context, sr *StoredRecipe) error {
	if !sr.HasSections {
		ingredients, err := s.loadIngredients(ctx, sr.ID, nil)
		if err != nil {
			return err
		}
		sr.Ingredients = ingredients
		return nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, instructions
		FROM recipe_sections
		WHERE recipe_id = $1
		ORDER BY sort_order ASC`, sr.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type sectionRow struct {
		id      uuid.UUID
		section recipe.Section
	}

	var sections []sectionRow
	for rows.Next() {
		var row sectionRow
		if err := rows.Scan(&row.id, &row.section.Name, &row.section.Instructions); err != nil {
			return err
		}
		sections = append(sections, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	sr.Sections = make([]recipe.Section, 0, len(sections))
	for _, row := range sections {
		ingredients, err := s.loadIngredients(ctx, sr.ID, &row.id)
		if err != nil {
			return err
		}
		row.section.Ingredients = ingredients
		sr.Sections = append(sr.Sections, row.section)
	}

	return nil
}

func (s *Store) loadIngredients(ctx context.Context, recipeID uuid.UUID, sectionID *uuid.UUID) ([]recipe.Ingredient, error) {
	query := `
		SELECT quantity, unit, name, preparation, is_optional
		FROM ingredients
		WHERE recipe_id = $1 AND section_id IS NULL
		ORDER BY sort_order ASC`
	args := []any{recipeID}
	if sectionID != nil {
		query = `
		SELECT quantity, unit, name, preparation, is_optional
		FROM ingredients
		WHERE recipe_id = $1 AND section_id = $2
		ORDER BY sort_order ASC`
		args = append(args, *sectionID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []recipe.Ingredient
	for rows.Next() {
		var ing recipe.Ingredient
		if err := rows.Scan(&ing.Quantity, &ing.Unit, &ing.Name, &ing.Preparation, &ing.IsOptional); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// servingsUnit defaults the unit label when a recipe arrives without one.
func servingsUnit(r recipe.Recipe) string {
	if r.ServingsUnit == "" {
		return "servings"
	}
	return r.ServingsUnit
}

// flatInstructions returns the instructions column value. Sectioned recipes
// keep their instructions on the section rows, so the column stays empty.
func flatInstructions(r recipe.Recipe) string {
	if r.HasSections {
		return ""
	}
	return r.Instructions
}

func totalTime(prep, cook, rest *int) *int {
	if prep == nil && cook == nil && rest == nil {
		return nil
	}
	total := 0
	for _, v := range []*int{prep, cook, rest} {
		if v != nil {
			total += *v
		}
	}
	return &total
}
