package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistreamdev/anistream/internal/domain/entity"
)

func newAdminService(users *fakeUserRepo, logs *fakeLogRepo) *AdminService {
	return NewAdminService(users, logs, NewAuditRecorder(logs, nil, nil), nil, nil, 30*24*time.Hour)
}

func TestGrantPremiumDefaultExpiry(t *testing.T) {
	users := newFakeUserRepo()
	logs := &fakeLogRepo{}
	svc := newAdminService(users, logs)

	target := users.put(entity.User{OpenID: "u1", Name: "Rei", Email: "rei@example.com"})

	before := time.Now().Add(30 * 24 * time.Hour)
	exp, err := svc.GrantPremium(context.Background(), 1, target.ID, nil)
	require.NoError(t, err)
	after := time.Now().Add(30 * 24 * time.Hour)

	assert.False(t, exp.Before(before.Add(-time.Minute)))
	assert.False(t, exp.After(after.Add(time.Minute)))

	got, err := users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)
	require.NotNil(t, got.PremiumExpiryAt)

	require.Len(t, logs.records, 1)
	rec := logs.records[0]
	assert.Equal(t, entity.ActionGrantPremium, rec.Action)
	assert.Equal(t, entity.TargetUser, rec.TargetType)

	var details map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.Details), &details))
	assert.NotEmpty(t, details["expires_at"])
}

func TestGrantPremiumExplicitExpiry(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAdminService(users, &fakeLogRepo{})

	target := users.put(entity.User{OpenID: "u1"})
	want := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	exp, err := svc.GrantPremium(context.Background(), 1, target.ID, &want)
	require.NoError(t, err)
	assert.True(t, exp.Equal(want))

	got, _ := users.GetByID(context.Background(), target.ID)
	require.NotNil(t, got.PremiumExpiryAt)
	assert.True(t, got.PremiumExpiryAt.Equal(want))
}

func TestRevokePremiumClearsFlagAndExpiry(t *testing.T) {
	users := newFakeUserRepo()
	logs := &fakeLogRepo{}
	svc := newAdminService(users, logs)

	exp := time.Now().Add(time.Hour)
	target := users.put(entity.User{OpenID: "u1", IsPremium: true, PremiumExpiryAt: &exp})

	require.NoError(t, svc.RevokePremium(context.Background(), 1, target.ID))

	got, err := users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPremium)
	assert.Nil(t, got.PremiumExpiryAt, "flag and expiry always move together")

	require.Len(t, logs.records, 1)
	assert.Equal(t, entity.ActionRevokePremium, logs.records[0].Action)
}

func TestPromoteAndDemote(t *testing.T) {
	users := newFakeUserRepo()
	logs := &fakeLogRepo{}
	svc := newAdminService(users, logs)

	target := users.put(entity.User{OpenID: "u1", Role: entity.RoleUser})

	require.NoError(t, svc.PromoteToAdmin(context.Background(), 1, target.ID))
	got, _ := users.GetByID(context.Background(), target.ID)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	require.NoError(t, svc.DemoteToUser(context.Background(), 1, target.ID))
	got, _ = users.GetByID(context.Background(), target.ID)
	assert.Equal(t, entity.RoleUser, got.Role)

	require.Len(t, logs.records, 2)
	assert.Equal(t, entity.ActionPromoteToAdmin, logs.records[0].Action)
	assert.Equal(t, entity.ActionDemoteToUser, logs.records[1].Action)
	require.NotNil(t, logs.records[0].TargetID)
	assert.Equal(t, target.ID, *logs.records[0].TargetID)
}

func TestRoleChangeMissingUserIsNoOp(t *testing.T) {
	users := newFakeUserRepo()
	logs := &fakeLogRepo{}
	svc := newAdminService(users, logs)

	// No such user: the update is a silent no-op at the storage layer, but
	// the operation still succeeds and is still audited.
	require.NoError(t, svc.PromoteToAdmin(context.Background(), 1, 999))
	require.Len(t, logs.records, 1)
	assert.Equal(t, entity.ActionPromoteToAdmin, logs.records[0].Action)
}
