package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
	"github.com/anistreamdev/anistream/pkg/response"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type grantPremiumRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pageParams(c, 50, 200)
	users, err := h.Svc.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	response.Success(c, http.StatusOK, out, "user list",
		gin.H{"limit": limit, "offset": offset, "count": len(out)})
}

func (h *AdminHandler) GetLogs(c *gin.Context) {
	limit, offset := pageParams(c, 50, 200)
	logs, err := h.Svc.GetLogs(c.Request.Context(), limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, gin.H{
			"id":          l.ID,
			"admin_id":    l.AdminID,
			"action":      l.Action,
			"target_id":   l.TargetID,
			"target_type": l.TargetType,
			"details":     l.Details,
			"created_at":  l.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "admin logs",
		gin.H{"limit": limit, "offset": offset, "count": len(out)})
}

func (h *AdminHandler) Promote(c *gin.Context) {
	admin, _ := middleware.CurrentIdentity(c)
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.PromoteToAdmin(c.Request.Context(), admin.UserID, userID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"user_id": userID, "role": "admin"}, "user promoted", nil)
}

func (h *AdminHandler) Demote(c *gin.Context) {
	admin, _ := middleware.CurrentIdentity(c)
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DemoteToUser(c.Request.Context(), admin.UserID, userID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"user_id": userID, "role": "user"}, "user demoted", nil)
}

// GrantPremium accepts an optional body; an empty body means the default
// subscription window.
func (h *AdminHandler) GrantPremium(c *gin.Context) {
	admin, _ := middleware.CurrentIdentity(c)
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	// The body is optional. ContentLength is -1 for chunked requests, so
	// attempt the bind whenever a body may exist and treat EOF as "no body".
	var req grantPremiumRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
			return
		}
		if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
			response.Error[any](c, http.StatusBadRequest, "expires_at must be in the future", nil)
			return
		}
	}

	exp, err := h.Svc.GrantPremium(c.Request.Context(), admin.UserID, userID, req.ExpiresAt)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK,
		gin.H{"user_id": userID, "is_premium": true, "premium_expiry_at": exp}, "premium granted", nil)
}

func (h *AdminHandler) RevokePremium(c *gin.Context) {
	admin, _ := middleware.CurrentIdentity(c)
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.RevokePremium(c.Request.Context(), admin.UserID, userID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK,
		gin.H{"user_id": userID, "is_premium": false}, "premium revoked", nil)
}
