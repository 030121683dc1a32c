package entity

import "time"

// Audit action tags. One fixed tag per privileged mutation.
const (
	ActionUploadAnime    = "UPLOAD_ANIME"
	ActionUpdateAnime    = "UPDATE_ANIME"
	ActionDeleteAnime    = "DELETE_ANIME"
	ActionPromoteToAdmin = "PROMOTE_TO_ADMIN"
	ActionDemoteToUser   = "DEMOTE_TO_USER"
	ActionGrantPremium   = "GRANT_PREMIUM"
	ActionRevokePremium  = "REVOKE_PREMIUM"
)

// Audit target types.
const (
	TargetAnime = "ANIME"
	TargetUser  = "USER"
)

// AdminLog is a write-once audit record of a privileged action. There is no
// update or delete path for this entity anywhere in the codebase.
type AdminLog struct {
	ID         int64
	AdminID    int64
	Action     string
	TargetID   *int64
	TargetType string
	Details    string
	CreatedAt  time.Time
}
