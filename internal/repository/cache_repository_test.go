package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikt-nva/fs-courses-api/internal/models"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
)

func newRedisCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	repo := NewCacheRepository(client, nil)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, srv
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "courses:215", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "courses:215", []string{"A"}, time.Minute))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo, srv := newRedisCacheRepo(t)
	ctx := context.Background()

	courses := []models.Course{{Code: "Å", Term: "VÅR", Year: 2023}}
	require.NoError(t, repo.Set(ctx, "courses:215:2022:h2", courses, time.Minute))

	assert.True(t, srv.Exists("fs-courses:courses:215:2022:h2"))
	assert.Equal(t, time.Minute, srv.TTL("fs-courses:courses:215:2022:h2"))

	var dest []models.Course
	require.NoError(t, repo.Get(ctx, "courses:215:2022:h2", &dest))
	assert.Equal(t, courses, dest)
}

func TestCacheRepositoryMissingKey(t *testing.T) {
	repo, _ := newRedisCacheRepo(t)

	var dest []models.Course
	assert.ErrorIs(t, repo.Get(context.Background(), "courses:100:2022:h1", &dest), appErrors.ErrCacheMiss)
}

func TestCacheRepositoryExpiredKey(t *testing.T) {
	repo, srv := newRedisCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []string{"A"}, time.Second))
	srv.FastForward(2 * time.Second)

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "k", &dest), appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDropsUndecodableEntry(t *testing.T) {
	repo, srv := newRedisCacheRepo(t)
	require.NoError(t, srv.Set("fs-courses:k", "{not json"))

	var dest []models.Course
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.False(t, srv.Exists("fs-courses:k"))
}

func TestCacheRepositoryBackendFailure(t *testing.T) {
	repo, srv := newRedisCacheRepo(t)
	srv.Close()

	var dest []string
	err := repo.Get(context.Background(), "k", &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.Error(t, repo.Set(context.Background(), "k", []string{"A"}, time.Minute))
}
