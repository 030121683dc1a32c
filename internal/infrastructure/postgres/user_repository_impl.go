package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
)

const userColumns = `id, open_id, name, email, login_method, role, is_premium,
	premium_expiry_at, created_at, updated_at, last_signed_in`

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role,
		&u.IsPremium, &u.PremiumExpiryAt, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn)
}

// Upsert inserts the user keyed by open_id, refreshing contact and login
// metadata when the row already exists. A granted admin role is never
// silently downgraded by a later login; the owner bootstrap can only raise it.
func (r *UserRepository) Upsert(ctx context.Context, u *entity.User) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	row := r.store.Pool().QueryRow(ctx, `
		INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (open_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			login_method = EXCLUDED.login_method,
			role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
			last_signed_in = now(),
			updated_at = now()
		RETURNING `+userColumns, u.OpenID, u.Name, u.Email, u.LoginMethod, u.Role)
	return scanUser(row, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if !r.store.Available() {
		return nil, repository.ErrNotFound
	}
	u := &entity.User{}
	row := r.store.Pool().QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*entity.User, error) {
	if !r.store.Available() {
		return nil, repository.ErrNotFound
	}
	u := &entity.User{}
	row := r.store.Pool().QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE open_id = $1`, openID)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	if !r.store.Available() {
		return []entity.User{}, nil
	}
	rows, err := r.store.Pool().Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetRole is a silent no-op for missing ids.
func (r *UserRepository) SetRole(ctx context.Context, id int64, role entity.Role) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	_, err := r.store.Pool().Exec(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`, role, id)
	return err
}

// SetPremium writes the flag and the expiry in one statement so the pair can
// never be observed half-set.
func (r *UserRepository) SetPremium(ctx context.Context, id int64, premium bool, expiresAt *time.Time) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	_, err := r.store.Pool().Exec(ctx,
		`UPDATE users SET is_premium = $1, premium_expiry_at = $2, updated_at = now() WHERE id = $3`,
		premium, expiresAt, id)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
