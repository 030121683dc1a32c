package repository

import (
	"context"

	"github.com/anistreamdev/anistream/internal/domain/entity"
)

// AnimeFilter narrows List results. Filters combine with AND; results are
// ordered newest-created first with limit/offset applied after ordering.
type AnimeFilter struct {
	Limit       int
	Offset      int
	Search      string // case-insensitive title substring
	PremiumOnly *bool
}

// AnimeRepository defines the catalog queries backed by the row store.
type AnimeRepository interface {
	List(ctx context.Context, f AnimeFilter) ([]entity.Anime, error)
	GetByID(ctx context.Context, id int64) (*entity.Anime, error)
	Create(ctx context.Context, a *entity.Anime) error
	Update(ctx context.Context, a *entity.Anime) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}
