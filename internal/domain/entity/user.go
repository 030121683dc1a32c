package entity

import "time"

// Role is the authorization role attached to a user.
// Transitions only happen through the explicit promote/demote operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is created on first successful login (upsert keyed by OpenID) and
// never deleted by the API. IsPremium and PremiumExpiryAt are always set or
// cleared together.
type User struct {
	ID              int64
	OpenID          string
	Name            string
	Email           string
	LoginMethod     string
	Role            Role
	IsPremium       bool
	PremiumExpiryAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastSignedIn    time.Time
}
