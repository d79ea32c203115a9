package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// MediaRepository records uploaded assets.
type MediaRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) error
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository constructs a media repository.
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, asset *models.MediaAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}
