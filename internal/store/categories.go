package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping of recipes.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RecipeCount int64     `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListCategories returns all categories with their recipe counts, ordered by
// name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, count(r.id), c.created_at
		FROM categories c
		LEFT JOIN recipes r ON r.category_id = c.id
		GROUP BY c.id
		ORDER BY lower(c.name) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.RecipeCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CreateCategory adds a new category. Returns ErrConflict when the name is
// already in use.
func (s *Store) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, created_at`, strings.TrimSpace(name)).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// RenameCategory changes a category's name. Returns ErrNotFound when the
// category does not exist and ErrConflict when the new name is taken.
func (s *Store) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	var c Category
	err := s.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2
		WHERE id = $1
		RETURNING id, name, created_at`, id, strings.TrimSpace(name)).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// DeleteCategory removes a category. Recipes keep existing; their
// category_id is set to NULL by the foreign key.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// resolveCategory maps a category name to its ID, creating the category on
// first use. An empty name resolves to no category.
func resolveCategory(ctx context.Context, q DBTX, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var id uuid.UUID
	err := q.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
