package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// TestimonialRepository provides access to testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) error
	GetByID(ctx context.Context, id uint) (models.Testimonial, error)
	List(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Testimonial, error)
	Delete(ctx context.Context, id uint) error
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository constructs a testimonial repository.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

func (r *testimonialRepository) GetByID(ctx context.Context, id uint) (models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := r.db.WithContext(ctx).First(&testimonial, id).Error; err != nil {
		return models.Testimonial{}, err
	}
	return testimonial, nil
}

func (r *testimonialRepository) List(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var testimonials []models.Testimonial
	if err := query.Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Testimonial, error) {
	tx := r.db.WithContext(ctx).Model(&models.Testimonial{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Testimonial{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Testimonial{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *testimonialRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Testimonial{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
