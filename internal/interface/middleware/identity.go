package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/pkg/helpers"
	"github.com/anistreamdev/anistream/pkg/response"
)

const ctxIdentityKey = "identity"

// Identity is the resolved principal for a request. Its absence from the
// context means the caller is anonymous.
type Identity struct {
	UserID int64
	OpenID string
	Name   string
	Email  string
	Role   entity.Role
}

func (i Identity) IsAdmin() bool { return i.Role == entity.RoleAdmin }

// CurrentIdentity returns the identity attached by Identify, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// SetIdentity attaches an identity to the context. Exported for tests and
// for the auth handler right after login.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ctxIdentityKey, id)
}

// Identify resolves the session cookie into a typed identity. It never
// aborts: requests without a valid session simply proceed as anonymous, and
// the Require* gates decide what that means per route.
func Identify(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		if rdb == nil {
			c.Next()
			return
		}

		data, err := rdb.HGetAll(c.Request.Context(), helpers.SessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			c.Next()
			return
		}
		userID, err := strconv.ParseInt(data["user_id"], 10, 64)
		if err != nil {
			c.Next()
			return
		}

		SetIdentity(c, Identity{
			UserID: userID,
			OpenID: data["open_id"],
			Name:   data["name"],
			Email:  data["email"],
			Role:   entity.Role(data["role"]),
		})
		c.Next()
	}
}

// RequireUser rejects anonymous callers with 401 before any handler work.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			response.AbortError[any](c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		c.Next()
	}
}

// RequireAdmin is the authorization gate for privileged mutations: the
// request either carries an authenticated admin identity or terminates here,
// with no partial work and no audit entry.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			response.AbortError[any](c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		if !id.IsAdmin() {
			response.AbortError[any](c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}
