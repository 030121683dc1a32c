package repository

import (
	"context"

	"github.com/anistreamdev/anistream/internal/domain/entity"
)

// AdminLogRepository is append-only: audit records are never updated or
// deleted. List returns newest entries first.
type AdminLogRepository interface {
	Append(ctx context.Context, l *entity.AdminLog) error
	List(ctx context.Context, limit, offset int) ([]entity.AdminLog, error)
}
