package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// AdminRepository provides access to back-office accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (models.Admin, error)
	GetByUsername(ctx context.Context, username string) (models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Admin, error)
	Delete(ctx context.Context, id uint) error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository constructs an admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	err := r.db.WithContext(ctx).Create(admin).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, "username"):
		return ErrUsernameConflict
	case isUniqueViolation(err, "email"):
		return ErrEmailConflict
	default:
		return err
	}
}

func (r *adminRepository) GetByID(ctx context.Context, id uint) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Admin, error) {
	tx := r.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		switch {
		case isUniqueViolation(tx.Error, "username"):
			return models.Admin{}, ErrUsernameConflict
		case isUniqueViolation(tx.Error, "email"):
			return models.Admin{}, ErrEmailConflict
		}
		return models.Admin{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Admin{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *adminRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Admin{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
