package repository

import (
	"context"

	"gorm.io/gorm"

	"anya/internal/model"
)

// VerificationRepository defines verification token persistence operations.
type VerificationRepository interface {
	Create(ctx context.Context, verification *model.Verification) error
	FindByValue(ctx context.Context, value string) (*model.Verification, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository.
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, verification *model.Verification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

func (r *verificationRepository) FindByValue(ctx context.Context, value string) (*model.Verification, error) {
	var verification model.Verification
	if err := r.db.WithContext(ctx).Where("value = ?", value).First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *verificationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Verification{}).Error
}

func (r *verificationRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Verification{}).Error
}
