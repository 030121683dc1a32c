package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
	"github.com/anistreamdev/anistream/pkg/helpers"
	"github.com/anistreamdev/anistream/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Users   *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, users *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Users: users, Cookies: cookies, Logger: logger}
}

// Login redirects the browser to the identity provider.
func (h *AuthHandler) Login(c *gin.Context) {
	url, err := h.Svc.BeginLogin(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback finishes the provider round trip: validates the state nonce,
// exchanges the code and sets the cookie pair.
func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Error[any](c, http.StatusBadRequest, "missing state or code", nil)
		return
	}

	u, pair, err := h.Svc.CompleteLogin(c.Request.Context(), state, code)
	if err != nil {
		switch err {
		case application.ErrInvalidState:
			response.Error[any](c, http.StatusBadRequest, "invalid or expired state", nil)
		case application.ErrLoginFailed:
			response.Error[any](c, http.StatusUnauthorized, "login failed", nil)
		default:
			serviceError(c, err)
		}
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, userJSON(u), "login successful", nil)
}

// Me reports the caller's identity. Anonymous callers get authenticated=false
// rather than an error so the frontend can probe without handling a 401.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Success[any](c, http.StatusOK, gin.H{"authenticated": false}, "anonymous", nil)
		return
	}

	u, err := h.Users.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		// Storage may be degraded; answer from the session snapshot.
		response.Success[any](c, http.StatusOK, gin.H{
			"authenticated": true,
			"id":            id.UserID,
			"open_id":       id.OpenID,
			"name":          id.Name,
			"email":         id.Email,
			"role":          id.Role,
		}, "me", nil)
		return
	}

	data := userJSON(u)
	data["authenticated"] = true
	response.Success(c, http.StatusOK, data, "me", nil)
}

// Refresh rotates the token pair from the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "refresh failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "tokens refreshed", nil)
}

// Logout drops the session and clears cookies. Safe for anonymous callers.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, ok := middleware.CurrentIdentity(c); ok {
		h.Svc.Logout(c.Request.Context(), id.UserID)
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logout successful", nil)
}
