package application

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	repo "github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/pkg/helpers"
)

const (
	oauthStateTTL = 10 * time.Minute
	sessionTTL    = 24 * time.Hour
)

// AuthService drives the OAuth login flow and session lifecycle. The
// provider is a black box: it gives back an OpenID plus contact fields, and
// the local user row is upserted from those on every login.
type AuthService struct {
	Users       repo.UserRepository
	OAuth       *helpers.OAuthProvider
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	OwnerOpenID string
}

func NewAuthService(users repo.UserRepository, oauth *helpers.OAuthProvider, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, ownerOpenID string) *AuthService {
	return &AuthService{
		Users:       users,
		OAuth:       oauth,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		OwnerOpenID: ownerOpenID,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// BeginLogin creates a state nonce and returns the provider redirect URL.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, helpers.OAuthStateKey(state), "1", oauthStateTTL).Err(); err != nil {
			return "", err
		}
	}
	return s.OAuth.AuthCodeURL(state), nil
}

// CompleteLogin validates the state nonce, exchanges the code, upserts the
// user and issues a session. The owner OpenID is bootstrapped as admin.
func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) (*entity.User, TokenPair, error) {
	if s.Redis != nil {
		n, err := s.Redis.Del(ctx, helpers.OAuthStateKey(state)).Result()
		if err != nil || n == 0 {
			return nil, TokenPair{}, ErrInvalidState
		}
	}

	info, err := s.OAuth.Exchange(ctx, code)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("oauth exchange failed")
		}
		return nil, TokenPair{}, ErrLoginFailed
	}

	u := &entity.User{
		OpenID:      info.OpenID,
		Name:        info.Name,
		Email:       info.Email,
		LoginMethod: "oauth",
		Role:        entity.RoleUser,
	}
	if s.OwnerOpenID != "" && info.OpenID == s.OwnerOpenID {
		u.Role = entity.RoleAdmin
	}
	if err := s.Users.Upsert(ctx, u); err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueSession(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueSession generates the token pair and records the session hash in
// Redis keyed by user id.
func (s *AuthService) IssueSession(ctx context.Context, u *entity.User) (TokenPair, error) {
	uid := strconv.FormatInt(u.ID, 10)
	sid := uuid.NewString()

	access, aexp, err := s.JWT.GenerateAccessToken(uid, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(uid, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		expiry := ""
		if u.PremiumExpiryAt != nil {
			expiry = u.PremiumExpiryAt.Format(time.RFC3339)
		}
		fields := map[string]any{
			"user_id":           uid,
			"open_id":           u.OpenID,
			"name":              u.Name,
			"email":             u.Email,
			"role":              string(u.Role),
			"is_premium":        strconv.FormatBool(u.IsPremium),
			"premium_expiry_at": expiry,
			"sid":               sid,
			"created_at":        time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := helpers.SessionKey(uid)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session when the refresh token is valid and matches
// the active session id.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrLoginFailed
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return TokenPair{}, ErrLoginFailed
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return TokenPair{}, ErrLoginFailed
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, helpers.SessionKey(claims.UserID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrLoginFailed
		}
	}
	return s.IssueSession(ctx, u)
}

// Logout drops the Redis session; the handler clears the cookies.
func (s *AuthService) Logout(ctx context.Context, userID int64) {
	if s.Redis == nil {
		return
	}
	key := helpers.SessionKey(strconv.FormatInt(userID, 10))
	if err := s.Redis.Del(ctx, key).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("session delete failed")
	}
}
