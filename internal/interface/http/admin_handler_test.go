package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
)

// stubUserRepo records the premium update so tests can assert on the expiry
// the handler passed down.
type stubUserRepo struct {
	premiumSet bool
	premium    bool
	expiresAt  *time.Time
}

func (s *stubUserRepo) Upsert(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(context.Context, int64) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) GetByOpenID(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) List(context.Context, int, int) ([]entity.User, error) {
	return []entity.User{}, nil
}
func (s *stubUserRepo) SetRole(context.Context, int64, entity.Role) error { return nil }
func (s *stubUserRepo) SetPremium(_ context.Context, _ int64, premium bool, expiresAt *time.Time) error {
	s.premiumSet = true
	s.premium = premium
	s.expiresAt = expiresAt
	return nil
}

func adminRouter(users *stubUserRepo, ttl time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := application.NewAdminService(users, stubLogRepo{},
		application.NewAuditRecorder(stubLogRepo{}, nil, nil), nil, nil, ttl)
	h := NewAdminHandler(svc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: 1, Role: entity.RoleAdmin})
		c.Next()
	})
	r.POST("/api/admin/users/:id/premium", h.GrantPremium)
	return r
}

func TestGrantPremiumEmptyBodyUsesDefaultTTL(t *testing.T) {
	users := &stubUserRepo{}
	r := adminRouter(users, 30*24*time.Hour)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/users/7/premium", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, users.premiumSet)
	assert.True(t, users.premium)
	require.NotNil(t, users.expiresAt)
	want := time.Now().Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, want, *users.expiresAt, time.Minute)
}

func TestGrantPremiumChunkedBodyHonorsExpiry(t *testing.T) {
	users := &stubUserRepo{}
	r := adminRouter(users, 30*24*time.Hour)

	want := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	body := strings.NewReader(`{"expires_at":"` + want.Format(time.RFC3339) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/7/premium", body)
	req.Header.Set("Content-Type", "application/json")
	// Chunked transfer: the body is present but its length is unknown.
	req.ContentLength = -1

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, users.expiresAt)
	assert.True(t, users.expiresAt.Equal(want), "explicit expiry must win over the default TTL")
}

func TestGrantPremiumRejectsPastExpiry(t *testing.T) {
	users := &stubUserRepo{}
	r := adminRouter(users, 30*24*time.Hour)

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	body := strings.NewReader(`{"expires_at":"` + past + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/7/premium", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, users.premiumSet)
}

func TestGrantPremiumRejectsMalformedBody(t *testing.T) {
	users := &stubUserRepo{}
	r := adminRouter(users, 30*24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/7/premium", strings.NewReader(`{notjson`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, users.premiumSet)
}
