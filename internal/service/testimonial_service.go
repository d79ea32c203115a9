package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

// ErrTestimonialNotFound indicates the target testimonial does not exist.
var ErrTestimonialNotFound = errors.New("testimonial not found")

// TestimonialService manages landing-page testimonials. Internal submissions
// come from admins and are approved on creation; external ones come from the
// public form and wait in the moderation queue.
type TestimonialService interface {
	CreateInternal(ctx context.Context, req dto.TestimonialCreateRequest) (models.Testimonial, error)
	CreateExternal(ctx context.Context, req dto.TestimonialCreateRequest) (models.Testimonial, error)
	Approve(ctx context.Context, id uint) (models.Testimonial, error)
	List(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error)
	Get(ctx context.Context, id uint) (models.Testimonial, error)
	Update(ctx context.Context, id uint, req dto.TestimonialUpdateRequest) (models.Testimonial, error)
	Delete(ctx context.Context, id uint) error
}

type testimonialService struct {
	repo      repository.TestimonialRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewTestimonialService constructs the testimonial service.
func NewTestimonialService(repo repository.TestimonialRepository, validate *validator.Validate, logger zerolog.Logger) TestimonialService {
	return &testimonialService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "testimonial_service").Logger(),
		tracer:    otel.Tracer("github.com/edupath-ng/edupath-go-api/internal/service/testimonial"),
	}
}

func (s *testimonialService) CreateInternal(ctx context.Context, req dto.TestimonialCreateRequest) (models.Testimonial, error) {
	return s.create(ctx, req, false)
}

func (s *testimonialService) CreateExternal(ctx context.Context, req dto.TestimonialCreateRequest) (models.Testimonial, error) {
	return s.create(ctx, req, true)
}

func (s *testimonialService) create(ctx context.Context, req dto.TestimonialCreateRequest, external bool) (models.Testimonial, error) {
	ctx, span := s.tracer.Start(ctx, "testimonials.create")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return models.Testimonial{}, err
	}

	testimonial := models.Testimonial{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Content:      s.sanitizer.Sanitize(req.Content),
		Role:         req.Role,
		Company:      req.Company,
		ProfileImage: req.ProfileImage,
		IsExternal:   external,
		IsApproved:   !external,
	}
	if err := s.repo.Create(ctx, &testimonial); err != nil {
		span.RecordError(err)
		return models.Testimonial{}, err
	}

	s.logger.Info().Uint("id", testimonial.ID).Bool("external", external).Msg("testimonial created")
	return testimonial, nil
}

// Approve releases a queued submission for display. Approving an already
// approved testimonial is a no-op.
func (s *testimonialService) Approve(ctx context.Context, id uint) (models.Testimonial, error) {
	ctx, span := s.tracer.Start(ctx, "testimonials.approve")
	defer span.End()

	testimonial, err := s.repo.Update(ctx, id, map[string]interface{}{"is_approved": true})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Testimonial{}, ErrTestimonialNotFound
		}
		span.RecordError(err)
		return models.Testimonial{}, err
	}

	s.logger.Info().Uint("id", id).Msg("testimonial approved")
	return testimonial, nil
}

func (s *testimonialService) List(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error) {
	return s.repo.List(ctx, approvedOnly)
}

func (s *testimonialService) Get(ctx context.Context, id uint) (models.Testimonial, error) {
	testimonial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Testimonial{}, ErrTestimonialNotFound
		}
		return models.Testimonial{}, err
	}
	return testimonial, nil
}

func (s *testimonialService) Update(ctx context.Context, id uint, req dto.TestimonialUpdateRequest) (models.Testimonial, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Testimonial{}, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Content != nil {
		updates["content"] = s.sanitizer.Sanitize(*req.Content)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	testimonial, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Testimonial{}, ErrTestimonialNotFound
		}
		return models.Testimonial{}, err
	}
	return testimonial, nil
}

func (s *testimonialService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestimonialNotFound
		}
		return err
	}
	s.logger.Info().Uint("id", id).Msg("testimonial deleted")
	return nil
}
