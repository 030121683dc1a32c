package repository

import (
	"context"
	"time"

	"github.com/anistreamdev/anistream/internal/domain/entity"
)

// UserRepository defines user persistence. Upsert is keyed by OpenID and
// refreshes contact/login metadata for existing rows. SetRole and SetPremium
// are single-statement updates with no existence check; updating a missing id
// is a silent no-op.
type UserRepository interface {
	Upsert(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByOpenID(ctx context.Context, openID string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	SetRole(ctx context.Context, id int64, role entity.Role) error
	SetPremium(ctx context.Context, id int64, premium bool, expiresAt *time.Time) error
}
