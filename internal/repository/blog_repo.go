package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// BlogRepository provides access to blog articles.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (models.Blog, error)
	List(ctx context.Context, page, pageSize int) ([]models.Blog, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Blog, error)
	Delete(ctx context.Context, id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository constructs a blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

func (r *blogRepository) List(ctx context.Context, page, pageSize int) ([]models.Blog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Blog, error) {
	tx := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Blog{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Blog{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
