package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikt-nva/fs-courses-api/internal/models"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
)

func TestMemoryCacheRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryCacheRepository(time.Minute, time.Minute)
	ctx := context.Background()

	var dest []models.Course
	assert.ErrorIs(t, repo.Get(ctx, "courses:215:2022:h2", &dest), appErrors.ErrCacheMiss)

	courses := []models.Course{{Code: "Æ", Term: "HØST", Year: 2022}}
	require.NoError(t, repo.Set(ctx, "courses:215:2022:h2", courses, 0))
	require.NoError(t, repo.Get(ctx, "courses:215:2022:h2", &dest))
	assert.Equal(t, courses, dest)
}

func TestMemoryCacheRepositoryExpires(t *testing.T) {
	repo := NewMemoryCacheRepository(time.Minute, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var dest string
	assert.ErrorIs(t, repo.Get(ctx, "k", &dest), appErrors.ErrCacheMiss)
}

func TestMemoryCacheRepositoryDropsUndecodableEntries(t *testing.T) {
	repo := NewMemoryCacheRepository(time.Minute, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", "not a list", time.Minute))
	var dest []models.Course
	assert.ErrorIs(t, repo.Get(ctx, "k", &dest), appErrors.ErrCacheMiss)

	var str string
	assert.ErrorIs(t, repo.Get(ctx, "k", &str), appErrors.ErrCacheMiss)
}
