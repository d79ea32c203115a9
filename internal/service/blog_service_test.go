package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

func setupBlogService(t *testing.T) (BlogService, *redis.Client) {
	t.Helper()

	db := openTestDB(t, &models.Blog{})

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewBlogService(repository.NewBlogRepository(db), validator.New(validator.WithRequiredStructEnabled()), client, time.Minute, testLogger())
	return svc, client
}

func TestBlogServiceSanitizesContent(t *testing.T) {
	svc, _ := setupBlogService(t)

	blog, err := svc.Create(context.Background(), dto.BlogCreateRequest{
		Title:   "Scoring high in UTME",
		Content: `<p>Study daily.</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Contains(t, blog.Content, "<p>Study daily.</p>")
	require.NotContains(t, blog.Content, "<script>")
}

func TestBlogServiceListCachesAndInvalidates(t *testing.T) {
	svc, client := setupBlogService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.BlogCreateRequest{Title: "First", Content: "one"})
	require.NoError(t, err)

	listed, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, listed.Blogs, 1)
	require.Equal(t, int64(1), listed.Pagination.TotalItems)

	keys, err := client.Keys(ctx, "blogs:list:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1, "list should be cached after a miss")

	// The cached copy serves repeat reads.
	cached, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, listed.Pagination, cached.Pagination)

	// A write bumps the generation so the next read sees fresh data.
	_, err = svc.Create(ctx, dto.BlogCreateRequest{Title: "Second", Content: "two"})
	require.NoError(t, err)

	refreshed, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, refreshed.Blogs, 2)
	require.Equal(t, "Second", refreshed.Blogs[0].Title, "newest first")

	require.NoError(t, svc.Delete(ctx, first.ID))
	afterDelete, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, afterDelete.Blogs, 1)
}

func TestBlogServiceWorksWithoutCache(t *testing.T) {
	db := openTestDB(t, &models.Blog{})

	svc := NewBlogService(repository.NewBlogRepository(db), validator.New(validator.WithRequiredStructEnabled()), nil, time.Minute, testLogger())

	_, err := svc.Create(context.Background(), dto.BlogCreateRequest{Title: "No cache", Content: "body"})
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, listed.Blogs, 1)
}

func TestBlogServiceNotFound(t *testing.T) {
	svc, _ := setupBlogService(t)

	_, err := svc.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrBlogNotFound)

	title := "x"
	_, err = svc.Update(context.Background(), 404, dto.BlogUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrBlogNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), 404), ErrBlogNotFound)
}
