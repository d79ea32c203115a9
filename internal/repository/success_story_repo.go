package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// SuccessStoryRepository provides access to admission highlights.
type SuccessStoryRepository interface {
	Create(ctx context.Context, story *models.SuccessStory) error
	GetByID(ctx context.Context, id uint) (models.SuccessStory, error)
	List(ctx context.Context) ([]models.SuccessStory, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.SuccessStory, error)
	Delete(ctx context.Context, id uint) error
}

type successStoryRepository struct {
	db *gorm.DB
}

// NewSuccessStoryRepository constructs a success story repository.
func NewSuccessStoryRepository(db *gorm.DB) SuccessStoryRepository {
	return &successStoryRepository{db: db}
}

func (r *successStoryRepository) Create(ctx context.Context, story *models.SuccessStory) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *successStoryRepository) GetByID(ctx context.Context, id uint) (models.SuccessStory, error) {
	var story models.SuccessStory
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return models.SuccessStory{}, err
	}
	return story, nil
}

func (r *successStoryRepository) List(ctx context.Context) ([]models.SuccessStory, error) {
	var stories []models.SuccessStory
	if err := r.db.WithContext(ctx).Order("score DESC").Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *successStoryRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.SuccessStory, error) {
	tx := r.db.WithContext(ctx).Model(&models.SuccessStory{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.SuccessStory{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.SuccessStory{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *successStoryRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.SuccessStory{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
