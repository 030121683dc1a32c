package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
)

const animeColumns = `id, title, description, genre, episodes, status, cover_image_url,
	trailer_url, release_year, rating, views, is_premium_only, uploaded_by, created_at, updated_at`

type AnimeRepository struct {
	store *Store
}

func NewAnimeRepository(store *Store) *AnimeRepository {
	return &AnimeRepository{store: store}
}

func scanAnime(row pgx.Row, a *entity.Anime) error {
	return row.Scan(&a.ID, &a.Title, &a.Description, &a.Genre, &a.Episodes, &a.Status,
		&a.CoverImageURL, &a.TrailerURL, &a.ReleaseYear, &a.Rating, &a.Views,
		&a.IsPremiumOnly, &a.UploadedBy, &a.CreatedAt, &a.UpdatedAt)
}

// buildListQuery assembles the filtered SELECT. Filters combine with AND,
// ordering is newest-first, and limit/offset are always the last two args.
func buildListQuery(f repository.AnimeFilter) (string, []any) {
	query := `SELECT ` + animeColumns + ` FROM animes`
	args := []any{}
	where := ""
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = fmt.Sprintf(" WHERE title ILIKE $%d", len(args))
	}
	if f.PremiumOnly != nil {
		args = append(args, *f.PremiumOnly)
		if where == "" {
			where = fmt.Sprintf(" WHERE is_premium_only = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND is_premium_only = $%d", len(args))
		}
	}
	args = append(args, f.Limit, f.Offset)
	query += where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args
}

func (r *AnimeRepository) List(ctx context.Context, f repository.AnimeFilter) ([]entity.Anime, error) {
	if !r.store.Available() {
		return []entity.Anime{}, nil
	}

	query, args := buildListQuery(f)
	rows, err := r.store.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Anime{}
	for rows.Next() {
		var a entity.Anime
		if err := scanAnime(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimeRepository) GetByID(ctx context.Context, id int64) (*entity.Anime, error) {
	if !r.store.Available() {
		return nil, repository.ErrNotFound
	}
	a := &entity.Anime{}
	row := r.store.Pool().QueryRow(ctx, `SELECT `+animeColumns+` FROM animes WHERE id = $1`, id)
	if err := scanAnime(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AnimeRepository) Create(ctx context.Context, a *entity.Anime) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	row := r.store.Pool().QueryRow(ctx, `
		INSERT INTO animes (title, description, genre, episodes, status, cover_image_url,
			trailer_url, release_year, rating, is_premium_only, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, views, created_at, updated_at
	`, a.Title, a.Description, a.Genre, a.Episodes, a.Status, a.CoverImageURL,
		a.TrailerURL, a.ReleaseYear, a.Rating, a.IsPremiumOnly, a.UploadedBy)
	return row.Scan(&a.ID, &a.Views, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AnimeRepository) Update(ctx context.Context, a *entity.Anime) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	a.UpdatedAt = time.Now()
	res, err := r.store.Pool().Exec(ctx, `
		UPDATE animes
		SET title = $1, description = $2, genre = $3, episodes = $4, status = $5,
			cover_image_url = $6, trailer_url = $7, release_year = $8, rating = $9,
			is_premium_only = $10, updated_at = $11
		WHERE id = $12
	`, a.Title, a.Description, a.Genre, a.Episodes, a.Status, a.CoverImageURL,
		a.TrailerURL, a.ReleaseYear, a.Rating, a.IsPremiumOnly, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AnimeRepository) Delete(ctx context.Context, id int64) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	res, err := r.store.Pool().Exec(ctx, `DELETE FROM animes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AnimeRepository) IncrementViews(ctx context.Context, id int64) error {
	if !r.store.Available() {
		return repository.ErrUnavailable
	}
	_, err := r.store.Pool().Exec(ctx, `UPDATE animes SET views = views + 1 WHERE id = $1`, id)
	return err
}

var _ repository.AnimeRepository = (*AnimeRepository)(nil)
