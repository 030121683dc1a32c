package repository

import (
	"context"

	"github.com/anistreamdev/anistream/internal/domain/entity"
)

// FavoriteRepository stores (user, anime) associations. Add is a plain
// insert (duplicates allowed); Remove deletes every row matching both keys.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error)
	Add(ctx context.Context, userID, animeID int64) error
	Remove(ctx context.Context, userID, animeID int64) error
}
