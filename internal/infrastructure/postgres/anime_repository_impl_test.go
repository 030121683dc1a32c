package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistreamdev/anistream/internal/domain/repository"
)

func TestBuildListQueryNoFilters(t *testing.T) {
	query, args := buildListQuery(repository.AnimeFilter{Limit: 20, Offset: 40})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 40}, args)
}

func TestBuildListQuerySearchOnly(t *testing.T) {
	query, args := buildListQuery(repository.AnimeFilter{Limit: 10, Search: "alchemist"})

	assert.Contains(t, query, "WHERE title ILIKE $1")
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $2 OFFSET $3")
	require.Len(t, args, 3)
	assert.Equal(t, "%alchemist%", args[0])
	assert.Equal(t, []any{10, 0}, args[1:])
}

func TestBuildListQueryPremiumOnly(t *testing.T) {
	premium := true
	query, args := buildListQuery(repository.AnimeFilter{Limit: 10, PremiumOnly: &premium})

	assert.Contains(t, query, "WHERE is_premium_only = $1")
	assert.NotContains(t, query, "ILIKE")
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $2 OFFSET $3")
	require.Len(t, args, 3)
	assert.Equal(t, true, args[0])
}

func TestBuildListQueryCombinedFilters(t *testing.T) {
	premium := false
	query, args := buildListQuery(repository.AnimeFilter{
		Limit:       5,
		Offset:      15,
		Search:      "moon",
		PremiumOnly: &premium,
	})

	assert.Contains(t, query, "WHERE title ILIKE $1 AND is_premium_only = $2")
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $3 OFFSET $4")
	require.Len(t, args, 4)
	assert.Equal(t, "%moon%", args[0])
	assert.Equal(t, false, args[1])
	assert.Equal(t, []any{5, 15}, args[2:], "limit/offset are always the last two args")

	// Ordering clause comes after the filters.
	assert.Less(t, strings.Index(query, "WHERE"), strings.Index(query, "ORDER BY"))
}
