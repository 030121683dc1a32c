package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
	"github.com/anistreamdev/anistream/pkg/response"
	"github.com/anistreamdev/anistream/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type addFavoriteRequest struct {
	AnimeID int64 `json:"anime_id" binding:"required,gt=0"`
}

func (h *UserHandler) Profile(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	u, err := h.Svc.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile", nil)
}

func (h *UserHandler) GetFavorites(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	favs, err := h.Svc.GetFavorites(c.Request.Context(), id.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(favs))
	for _, f := range favs {
		out = append(out, gin.H{
			"id":         f.ID,
			"anime_id":   f.AnimeID,
			"created_at": f.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "favorites", gin.H{"count": len(out)})
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AddFavorite(c.Request.Context(), id.UserID, req.AnimeID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"anime_id": req.AnimeID}, "favorite added", nil)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	animeID, ok := idParam(c, "animeID")
	if !ok {
		return
	}
	if err := h.Svc.RemoveFavorite(c.Request.Context(), id.UserID, animeID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"anime_id": animeID}, "favorite removed", nil)
}
