package postgres

import (
	"context"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
)

type FavoriteRepository struct {
	store *Store
}

func NewFavoriteRepository(store *Store) *FavoriteRepository {
	return &FavoriteRepository{store: store}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	if !r.store.Available() {
		return []entity.Favorite{}, nil
	}
	rows, err := r.store.Pool().Query(ctx,
		`SELECT id, user_id, anime_id, created_at FROM user_favorites WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Favorite{}
	for rows.Next() {
		var f entity.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.AnimeID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, animeID int64) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	_, err := r.store.Pool().Exec(ctx,
		`INSERT INTO user_favorites (user_id, anime_id) VALUES ($1, $2)`, userID, animeID)
	return err
}

// Remove deletes every row matching both keys, so it also cleans up any
// duplicate pairs. Zero affected rows is still success.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, animeID int64) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	_, err := r.store.Pool().Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND anime_id = $2`, userID, animeID)
	return err
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
