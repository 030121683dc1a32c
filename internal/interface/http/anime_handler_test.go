package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
	"github.com/anistreamdev/anistream/pkg/validation"
)

// stubAnimeRepo returns fixed results so handler tests can exercise the
// status mapping without a database.
type stubAnimeRepo struct {
	anime *entity.Anime
	err   error
}

func (s *stubAnimeRepo) List(context.Context, repository.AnimeFilter) ([]entity.Anime, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.anime == nil {
		return []entity.Anime{}, nil
	}
	return []entity.Anime{*s.anime}, nil
}

func (s *stubAnimeRepo) GetByID(context.Context, int64) (*entity.Anime, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.anime == nil {
		return nil, repository.ErrNotFound
	}
	return s.anime, nil
}

func (s *stubAnimeRepo) Create(context.Context, *entity.Anime) error { return s.errOr(nil) }
func (s *stubAnimeRepo) Update(context.Context, *entity.Anime) error { return s.errOr(nil) }
func (s *stubAnimeRepo) Delete(context.Context, int64) error         { return s.errOr(nil) }
func (s *stubAnimeRepo) IncrementViews(context.Context, int64) error { return nil }

func (s *stubAnimeRepo) errOr(def error) error {
	if s.err != nil {
		return s.err
	}
	return def
}

type stubLogRepo struct{}

func (stubLogRepo) Append(context.Context, *entity.AdminLog) error { return nil }
func (stubLogRepo) List(context.Context, int, int) ([]entity.AdminLog, error) {
	return []entity.AdminLog{}, nil
}

func animeRouter(repo repository.AnimeRepository, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	svc := application.NewAnimeService(repo, application.NewAuditRecorder(stubLogRepo{}, nil, nil), nil, "", nil, "", nil)
	h := NewAnimeHandler(svc, nil)

	r := gin.New()
	if admin {
		r.Use(func(c *gin.Context) {
			middleware.SetIdentity(c, middleware.Identity{UserID: 1, Role: entity.RoleAdmin})
			c.Next()
		})
	}
	r.GET("/api/animes/:id", h.Detail)
	r.GET("/api/animes", h.List)
	r.POST("/api/admin/animes", middleware.RequireAdmin(), h.Upload)
	return r
}

func TestDetailMissingAnimeAnswers404(t *testing.T) {
	r := animeRouter(&stubAnimeRepo{}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/animes/5", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailInvalidID(t *testing.T) {
	r := animeRouter(&stubAnimeRepo{}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/animes/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAnswers200(t *testing.T) {
	a := &entity.Anime{ID: 1, Title: "T"}
	r := animeRouter(&stubAnimeRepo{anime: a}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/animes?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"T"`)
}

func TestUploadRejectsAnonymous(t *testing.T) {
	r := animeRouter(&stubAnimeRepo{}, false)

	body := strings.NewReader(`{"title":"T"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/animes", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadRejectsInvalidPayload(t *testing.T) {
	r := animeRouter(&stubAnimeRepo{}, true)

	body := strings.NewReader(`{"title":"","status":"cancelled"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/animes", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDegradedStorageAnswers503(t *testing.T) {
	r := animeRouter(&stubAnimeRepo{err: repository.ErrUnavailable}, true)

	body := strings.NewReader(`{"title":"T"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/animes", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUploadCreatesAndAnswers201(t *testing.T) {
	r := animeRouter(&stubAnimeRepo{}, true)

	body := strings.NewReader(`{"title":"Fresh","status":"ongoing"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/animes", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}
