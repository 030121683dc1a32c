package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/pkg/response"
)

// serviceError maps application/repository errors onto the HTTP taxonomy:
// 404 for missing entities, 503 when storage is unavailable for writes,
// 500 for everything else.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrAnimeNotFound),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, repository.ErrUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "storage unavailable", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// idParam parses a numeric path parameter, writing a 400 on failure.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// pageParams parses limit/offset query parameters with clamping.
func pageParams(c *gin.Context, defLimit, maxLimit int) (limit, offset int) {
	limit = defLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit))); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func animeJSON(a *entity.Anime) gin.H {
	return gin.H{
		"id":              a.ID,
		"title":           a.Title,
		"description":     a.Description,
		"genre":           a.Genre,
		"episodes":        a.Episodes,
		"status":          a.Status,
		"cover_image_url": a.CoverImageURL,
		"trailer_url":     a.TrailerURL,
		"release_year":    a.ReleaseYear,
		"rating":          a.Rating,
		"views":           a.Views,
		"is_premium_only": a.IsPremiumOnly,
		"uploaded_by":     a.UploadedBy,
		"created_at":      a.CreatedAt,
		"updated_at":      a.UpdatedAt,
	}
}

func animeListJSON(animes []entity.Anime) []gin.H {
	out := make([]gin.H, 0, len(animes))
	for i := range animes {
		out = append(out, animeJSON(&animes[i]))
	}
	return out
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":                u.ID,
		"open_id":           u.OpenID,
		"name":              u.Name,
		"email":             u.Email,
		"role":              u.Role,
		"is_premium":        u.IsPremium,
		"premium_expiry_at": u.PremiumExpiryAt,
		"created_at":        u.CreatedAt,
		"last_signed_in":    u.LastSignedIn,
	}
}
