package application

import (
	"context"
	"time"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	repo "github.com/anistreamdev/anistream/internal/domain/repository"
)

// In-memory repository fakes. Each mirrors the storage-layer semantics the
// services rely on: silent no-op role/premium updates, duplicate favorites,
// append-only logs.

type fakeAnimeRepo struct {
	animes map[int64]*entity.Anime
	nextID int64
	err    error // returned by every call when set
}

func newFakeAnimeRepo() *fakeAnimeRepo {
	return &fakeAnimeRepo{animes: map[int64]*entity.Anime{}}
}

func (f *fakeAnimeRepo) put(a entity.Anime) *entity.Anime {
	f.nextID++
	a.ID = f.nextID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	f.animes[a.ID] = &a
	return f.animes[a.ID]
}

func (f *fakeAnimeRepo) List(_ context.Context, filter repo.AnimeFilter) ([]entity.Anime, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Anime{}
	for _, a := range f.animes {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAnimeRepo) GetByID(_ context.Context, id int64) (*entity.Anime, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.animes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnimeRepo) Create(_ context.Context, a *entity.Anime) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.animes[a.ID] = &cp
	return nil
}

func (f *fakeAnimeRepo) Update(_ context.Context, a *entity.Anime) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.animes[a.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *a
	f.animes[a.ID] = &cp
	return nil
}

func (f *fakeAnimeRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.animes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.animes, id)
	return nil
}

func (f *fakeAnimeRepo) IncrementViews(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if a, ok := f.animes[id]; ok {
		a.Views++
	}
	return nil
}

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}}
}

func (f *fakeUserRepo) put(u entity.User) *entity.User {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = &u
	return f.users[u.ID]
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.OpenID == u.OpenID {
			existing.Name = u.Name
			existing.Email = u.Email
			existing.LastSignedIn = time.Now()
			if u.Role == entity.RoleAdmin {
				existing.Role = entity.RoleAdmin
			}
			*u = *existing
			return nil
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByOpenID(_ context.Context, openID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.OpenID == openID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context, limit, offset int) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

// SetRole mirrors the single-statement UPDATE: a missing id is a no-op.
func (f *fakeUserRepo) SetRole(_ context.Context, id int64, role entity.Role) error {
	if u, ok := f.users[id]; ok {
		u.Role = role
	}
	return nil
}

// SetPremium mirrors the single-statement UPDATE: flag and expiry always
// move together, and a missing id is a no-op.
func (f *fakeUserRepo) SetPremium(_ context.Context, id int64, premium bool, expiresAt *time.Time) error {
	if u, ok := f.users[id]; ok {
		u.IsPremium = premium
		u.PremiumExpiryAt = expiresAt
	}
	return nil
}

type fakeFavoriteRepo struct {
	rows   []entity.Favorite
	nextID int64
}

func (f *fakeFavoriteRepo) ListByUser(_ context.Context, userID int64) ([]entity.Favorite, error) {
	out := []entity.Favorite{}
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) Add(_ context.Context, userID, animeID int64) error {
	f.nextID++
	f.rows = append(f.rows, entity.Favorite{ID: f.nextID, UserID: userID, AnimeID: animeID, CreatedAt: time.Now()})
	return nil
}

func (f *fakeFavoriteRepo) Remove(_ context.Context, userID, animeID int64) error {
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.UserID != userID || r.AnimeID != animeID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeLogRepo struct {
	records   []entity.AdminLog
	appendErr error
}

func (f *fakeLogRepo) Append(_ context.Context, l *entity.AdminLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	l.ID = int64(len(f.records) + 1)
	l.CreatedAt = time.Now()
	f.records = append(f.records, *l)
	return nil
}

func (f *fakeLogRepo) List(_ context.Context, limit, offset int) ([]entity.AdminLog, error) {
	out := make([]entity.AdminLog, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

var (
	_ repo.AnimeRepository    = (*fakeAnimeRepo)(nil)
	_ repo.UserRepository     = (*fakeUserRepo)(nil)
	_ repo.FavoriteRepository = (*fakeFavoriteRepo)(nil)
	_ repo.AdminLogRepository = (*fakeLogRepo)(nil)
)
