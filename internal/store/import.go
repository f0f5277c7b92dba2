package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/cookbook/internal/recipe"
)

// ImportRecipes persists a batch of parsed recipes in a single transaction.
// Either every recipe lands or none do. Category names are resolved to
// existing categories or created on the fly.
func (s *Store) ImportRecipes(ctx context.Context, recipes []recipe.Recipe) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(recipes))

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, r := range recipes {
			id, err := insertRecipe(ctx, tx, r)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	return ids, nil
}
