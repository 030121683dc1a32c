package postgres

import (
	"context"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
)

type AdminLogRepository struct {
	store *Store
}

func NewAdminLogRepository(store *Store) *AdminLogRepository {
	return &AdminLogRepository{store: store}
}

func (r *AdminLogRepository) Append(ctx context.Context, l *entity.AdminLog) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	row := r.store.Pool().QueryRow(ctx, `
		INSERT INTO admin_logs (admin_id, action, target_id, target_type, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, l.AdminID, l.Action, l.TargetID, l.TargetType, l.Details)
	return row.Scan(&l.ID, &l.CreatedAt)
}

func (r *AdminLogRepository) List(ctx context.Context, limit, offset int) ([]entity.AdminLog, error) {
	if !r.store.Available() {
		return []entity.AdminLog{}, nil
	}
	rows, err := r.store.Pool().Query(ctx, `
		SELECT id, admin_id, action, target_id, target_type, details, created_at
		FROM admin_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.AdminLog{}
	for rows.Next() {
		var l entity.AdminLog
		if err := rows.Scan(&l.ID, &l.AdminID, &l.Action, &l.TargetID, &l.TargetType, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

var _ repository.AdminLogRepository = (*AdminLogRepository)(nil)
