package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"anya/internal/model"
)

// APIKeyRepository defines API key persistence operations.
type APIKeyRepository interface {
	Create(ctx context.Context, key *model.APIKey) error
	FindByKey(ctx context.Context, key string) (*model.APIKey, error)
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
	DeleteAll(ctx context.Context) error
}

type apiKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository creates a new API key repository.
func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *model.APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *apiKeyRepository) FindByKey(ctx context.Context, key string) (*model.APIKey, error) {
	var apiKey model.APIKey
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&apiKey).Error; err != nil {
		return nil, err
	}
	return &apiKey, nil
}

func (r *apiKeyRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.APIKey{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}

func (r *apiKeyRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.APIKey{}).Error
}
