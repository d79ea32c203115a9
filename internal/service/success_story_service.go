package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

// ErrSuccessStoryNotFound indicates the target story does not exist.
var ErrSuccessStoryNotFound = errors.New("success story not found")

// SuccessStoryService manages the admission highlights shown on the site.
type SuccessStoryService interface {
	Create(ctx context.Context, req dto.SuccessStoryCreateRequest) (models.SuccessStory, error)
	Get(ctx context.Context, id uint) (models.SuccessStory, error)
	List(ctx context.Context) ([]models.SuccessStory, error)
	Update(ctx context.Context, id uint, req dto.SuccessStoryUpdateRequest) (models.SuccessStory, error)
	Delete(ctx context.Context, id uint) error
}

type successStoryService struct {
	repo      repository.SuccessStoryRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSuccessStoryService constructs the success story service.
func NewSuccessStoryService(repo repository.SuccessStoryRepository, validate *validator.Validate, logger zerolog.Logger) SuccessStoryService {
	return &successStoryService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "success_story_service").Logger(),
	}
}

func (s *successStoryService) Create(ctx context.Context, req dto.SuccessStoryCreateRequest) (models.SuccessStory, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SuccessStory{}, err
	}

	story := models.SuccessStory{
		Name:       req.Name,
		Score:      req.Score,
		University: req.University,
		Picture:    req.Picture,
	}
	if err := s.repo.Create(ctx, &story); err != nil {
		return models.SuccessStory{}, err
	}

	s.logger.Info().Uint("id", story.ID).Msg("success story created")
	return story, nil
}

func (s *successStoryService) Get(ctx context.Context, id uint) (models.SuccessStory, error) {
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SuccessStory{}, ErrSuccessStoryNotFound
		}
		return models.SuccessStory{}, err
	}
	return story, nil
}

func (s *successStoryService) List(ctx context.Context) ([]models.SuccessStory, error) {
	return s.repo.List(ctx)
}

func (s *successStoryService) Update(ctx context.Context, id uint, req dto.SuccessStoryUpdateRequest) (models.SuccessStory, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SuccessStory{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.University != nil {
		updates["university"] = *req.University
	}
	if req.Picture != nil {
		updates["picture"] = *req.Picture
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	story, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SuccessStory{}, ErrSuccessStoryNotFound
		}
		return models.SuccessStory{}, err
	}
	return story, nil
}

func (s *successStoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSuccessStoryNotFound
		}
		return err
	}
	s.logger.Info().Uint("id", id).Msg("success story deleted")
	return nil
}
