package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	repo "github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/pkg/helpers"
)

// AdminService performs the user-targeted privileged mutations. The role and
// premium updates are single-statement writes with no existence check
// (updating a missing id is a silent no-op at the storage layer), and each
// success appends one audit entry.
type AdminService struct {
	Users             repo.UserRepository
	Logs              repo.AdminLogRepository
	Audit             *AuditRecorder
	Redis             *redis.Client
	Logger            *logrus.Logger
	PremiumDefaultTTL time.Duration
}

func NewAdminService(users repo.UserRepository, logs repo.AdminLogRepository, audit *AuditRecorder, rdb *redis.Client, logger *logrus.Logger, premiumTTL time.Duration) *AdminService {
	return &AdminService{
		Users:             users,
		Logs:              logs,
		Audit:             audit,
		Redis:             rdb,
		Logger:            logger,
		PremiumDefaultTTL: premiumTTL,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.Users.List(ctx, limit, offset)
}

func (s *AdminService) GetLogs(ctx context.Context, limit, offset int) ([]entity.AdminLog, error) {
	return s.Logs.List(ctx, limit, offset)
}

func (s *AdminService) PromoteToAdmin(ctx context.Context, adminID, userID int64) error {
	return s.setRole(ctx, adminID, userID, entity.RoleAdmin, entity.ActionPromoteToAdmin)
}

func (s *AdminService) DemoteToUser(ctx context.Context, adminID, userID int64) error {
	return s.setRole(ctx, adminID, userID, entity.RoleUser, entity.ActionDemoteToUser)
}

func (s *AdminService) setRole(ctx context.Context, adminID, userID int64, role entity.Role, action string) error {
	if err := s.Users.SetRole(ctx, userID, role); err != nil {
		return err
	}
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetID:   &userID,
		TargetType: entity.TargetUser,
	}, s.contactFor(ctx, userID)); err != nil {
		return err
	}
	s.refreshSession(ctx, userID, map[string]any{"role": string(role)})
	return nil
}

// GrantPremium sets the flag and expiry together. When the caller omits the
// expiry the default offset from now is used. Returns the effective expiry.
func (s *AdminService) GrantPremium(ctx context.Context, adminID, userID int64, expiresAt *time.Time) (time.Time, error) {
	exp := time.Now().Add(s.PremiumDefaultTTL).UTC()
	if expiresAt != nil {
		exp = expiresAt.UTC()
	}
	if err := s.Users.SetPremium(ctx, userID, true, &exp); err != nil {
		return time.Time{}, err
	}

	details, _ := json.Marshal(map[string]any{"expires_at": exp.Format(time.RFC3339)})
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     entity.ActionGrantPremium,
		TargetID:   &userID,
		TargetType: entity.TargetUser,
		Details:    string(details),
	}, s.contactFor(ctx, userID)); err != nil {
		return time.Time{}, err
	}

	s.refreshSession(ctx, userID, map[string]any{
		"is_premium":        "true",
		"premium_expiry_at": exp.Format(time.RFC3339),
	})
	return exp, nil
}

// RevokePremium clears the flag and the expiry in the same statement, so a
// non-premium user can never retain a dangling expiry.
func (s *AdminService) RevokePremium(ctx context.Context, adminID, userID int64) error {
	if err := s.Users.SetPremium(ctx, userID, false, nil); err != nil {
		return err
	}
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     entity.ActionRevokePremium,
		TargetID:   &userID,
		TargetType: entity.TargetUser,
	}, s.contactFor(ctx, userID)); err != nil {
		return err
	}
	s.refreshSession(ctx, userID, map[string]any{
		"is_premium":        "false",
		"premium_expiry_at": "",
	})
	return nil
}

// contactFor resolves the target's contact fields for the audit event.
// Best-effort: a missing target still gets its mutation and audit row.
func (s *AdminService) contactFor(ctx context.Context, userID int64) *TargetContact {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("audit contact lookup failed")
		}
		return nil
	}
	return &TargetContact{Email: u.Email, Name: u.Name}
}

// refreshSession mirrors role/premium changes into an active Redis session
// so the next request sees them without a re-login.
func (s *AdminService) refreshSession(ctx context.Context, userID int64, fields map[string]any) {
	if s.Redis == nil {
		return
	}
	key := helpers.SessionKey(strconv.FormatInt(userID, 10))
	exists, err := s.Redis.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}
	if err := s.Redis.HSet(ctx, key, fields).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("session refresh failed")
	}
}
