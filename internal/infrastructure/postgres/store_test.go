package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
)

func unavailableStore(t *testing.T) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return Connect(context.Background(), "", 10, 2, time.Hour, logger)
}

func TestConnectWithoutDSNDegrades(t *testing.T) {
	s := unavailableStore(t)
	assert.False(t, s.Available())
	assert.Nil(t, s.Pool())
	s.Close() // safe on a degraded store
}

func TestDegradedReadsAnswerEmpty(t *testing.T) {
	s := unavailableStore(t)
	ctx := context.Background()

	animes := NewAnimeRepository(s)
	list, err := animes.List(ctx, repository.AnimeFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = animes.GetByID(ctx, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	users := NewUserRepository(s)
	_, err = users.GetByID(ctx, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	favs := NewFavoriteRepository(s)
	rows, err := favs.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, rows)

	logs := NewAdminLogRepository(s)
	recs, err := logs.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDegradedWritesFailWithUnavailable(t *testing.T) {
	s := unavailableStore(t)
	ctx := context.Background()

	animes := NewAnimeRepository(s)
	err := animes.Create(ctx, &entity.Anime{Title: "X"})
	require.ErrorIs(t, err, repository.ErrUnavailable)

	err = animes.Delete(ctx, 1)
	require.ErrorIs(t, err, repository.ErrUnavailable)

	users := NewUserRepository(s)
	err = users.Upsert(ctx, &entity.User{OpenID: "u"})
	require.ErrorIs(t, err, repository.ErrUnavailable)

	err = users.SetRole(ctx, 1, entity.RoleAdmin)
	require.ErrorIs(t, err, repository.ErrUnavailable)

	logs := NewAdminLogRepository(s)
	err = logs.Append(ctx, &entity.AdminLog{AdminID: 1, Action: entity.ActionUploadAnime})
	require.ErrorIs(t, err, repository.ErrUnavailable)
}
