package catalog

import (
	"context"

	"mealbot/internal/models"
)

// Static - каталог в памяти (например, загруженный из файла)
type Static []models.Recipe

// ListForOwner возвращает системные рецепты и рецепты владельца
func (s Static) ListForOwner(_ context.Context, ownerID int64) ([]models.Recipe, error) {
	out := make([]models.Recipe, 0, len(s))
	for _, r := range s {
		if r.OwnerID == nil || *r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}
