package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	repo "github.com/anistreamdev/anistream/internal/domain/repository"
)

// UserService covers the authenticated (non-admin) surface: profile reads
// and the favorites watchlist.
type UserService struct {
	Users     repo.UserRepository
	Favorites repo.FavoriteRepository
	Animes    repo.AnimeRepository
	Logger    *logrus.Logger
}

func NewUserService(users repo.UserRepository, favorites repo.FavoriteRepository, animes repo.AnimeRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Favorites: favorites, Animes: animes, Logger: logger}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetFavorites(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	return s.Favorites.ListByUser(ctx, userID)
}

// AddFavorite verifies the anime exists before inserting the pair. Duplicate
// pairs are allowed at the data layer.
func (s *UserService) AddFavorite(ctx context.Context, userID, animeID int64) error {
	if _, err := s.Animes.GetByID(ctx, animeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}
	return s.Favorites.Add(ctx, userID, animeID)
}

// RemoveFavorite is idempotent: removing an absent favorite still succeeds.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, animeID int64) error {
	return s.Favorites.Remove(ctx, userID, animeID)
}
