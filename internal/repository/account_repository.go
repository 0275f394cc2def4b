package repository

import (
	"context"

	"gorm.io/gorm"

	"anya/internal/model"
)

// AccountRepository defines account (credential binding) persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	ListByUserID(ctx context.Context, userID string) ([]model.Account, error)
	// FindCredential returns the password account of a user, if any.
	FindCredential(ctx context.Context, userID string) (*model.Account, error)
	// FindByProvider looks up an account by provider id and the provider's
	// own account id (e.g. the Discord user id).
	FindByProvider(ctx context.Context, providerID, accountID string) (*model.Account, error)
	DeleteAll(ctx context.Context) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) ListByUserID(ctx context.Context, userID string) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) FindCredential(ctx context.Context, userID string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, model.ProviderCredential).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByProvider(ctx context.Context, providerID, accountID string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND account_id = ?", providerID, accountID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Account{}).Error
}
