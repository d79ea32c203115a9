package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

// ErrBlogNotFound indicates the target article does not exist.
var ErrBlogNotFound = errors.New("blog not found")

const blogCacheGenKey = "blogs:gen"

// BlogService manages editorial articles with a read-through list cache.
type BlogService interface {
	Create(ctx context.Context, req dto.BlogCreateRequest) (models.Blog, error)
	Get(ctx context.Context, id uint) (models.Blog, error)
	List(ctx context.Context, page, pageSize int) (dto.BlogListResponse, error)
	Update(ctx context.Context, id uint, req dto.BlogUpdateRequest) (models.Blog, error)
	Delete(ctx context.Context, id uint) error
}

type blogService struct {
	repo      repository.BlogRepository
	validator *validator.Validate
	cache     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewBlogService constructs the blog service. The cache client may be nil,
// in which case every list goes to the database.
func NewBlogService(repo repository.BlogRepository, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) BlogService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &blogService{
		repo:      repo,
		validator: validate,
		cache:     cache,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "blog_service").Logger(),
		tracer:    otel.Tracer("github.com/edupath-ng/edupath-go-api/internal/service/blog"),
	}
}

func (s *blogService) Create(ctx context.Context, req dto.BlogCreateRequest) (models.Blog, error) {
	ctx, span := s.tracer.Start(ctx, "blogs.create")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return models.Blog{}, err
	}

	blog := models.Blog{
		Title:     req.Title,
		Content:   s.sanitizer.Sanitize(req.Content),
		BlogImage: req.BlogImage,
	}
	if err := s.repo.Create(ctx, &blog); err != nil {
		span.RecordError(err)
		return models.Blog{}, err
	}

	s.invalidateLists(ctx)
	s.logger.Info().Uint("id", blog.ID).Msg("blog created")
	return blog, nil
}

func (s *blogService) Get(ctx context.Context, id uint) (models.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Blog{}, ErrBlogNotFound
		}
		return models.Blog{}, err
	}
	return blog, nil
}

// List serves the paginated article listing, read through the cache when one
// is configured. Cache failures degrade to a database read.
func (s *blogService) List(ctx context.Context, page, pageSize int) (dto.BlogListResponse, error) {
	ctx, span := s.tracer.Start(ctx, "blogs.list", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	defer span.End()

	key := s.listCacheKey(ctx, page, pageSize)
	if key != "" {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var cached dto.BlogListResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				span.SetAttributes(attribute.Bool("cache.hit", true))
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("blog cache read failed")
		}
	}

	blogs, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		span.RecordError(err)
		return dto.BlogListResponse{}, err
	}

	pagination := dto.PaginationMeta{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize > 0 {
		pagination.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	} else {
		pagination.TotalPages = 1
	}

	response := dto.BlogListResponse{Blogs: blogs, Pagination: pagination}
	if key != "" {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("blog cache write failed")
			}
		}
	}
	return response, nil
}

func (s *blogService) Update(ctx context.Context, id uint, req dto.BlogUpdateRequest) (models.Blog, error) {
	ctx, span := s.tracer.Start(ctx, "blogs.update")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return models.Blog{}, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = s.sanitizer.Sanitize(*req.Content)
	}
	if req.BlogImage != nil {
		updates["blog_image"] = *req.BlogImage
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	blog, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Blog{}, ErrBlogNotFound
		}
		span.RecordError(err)
		return models.Blog{}, err
	}

	s.invalidateLists(ctx)
	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	s.invalidateLists(ctx)
	s.logger.Info().Uint("id", id).Msg("blog deleted")
	return nil
}

// listCacheKey versions list keys with a generation counter so invalidation
// is a single INCR instead of a key scan. Returns "" when caching is off or
// the counter is unreachable.
func (s *blogService) listCacheKey(ctx context.Context, page, pageSize int) string {
	if s.cache == nil {
		return ""
	}
	gen, err := s.cache.Get(ctx, blogCacheGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ""
	}
	return fmt.Sprintf("blogs:list:v%d:%d:%d", gen, page, pageSize)
}

func (s *blogService) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, blogCacheGenKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("blog cache invalidation failed")
	}
}
