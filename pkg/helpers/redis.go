package helpers

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. Sessions, OAuth state and rate
// limit counters all live here.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the redis hash key holding a user's session fields.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

// OAuthStateKey stores the pending OAuth state nonce during a login flow.
func OAuthStateKey(state string) string {
	return "oauth:state:" + state
}
