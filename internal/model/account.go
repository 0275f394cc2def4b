package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider IDs for account rows.
const (
	ProviderCredential = "credential"
	ProviderDiscord    = "discord"
)

// Account binds a user to one authentication provider. For the "credential"
// provider the Password column holds a bcrypt hash; for OAuth providers the
// token columns hold whatever the provider issued. A user has at most one
// credential account and any number of social accounts.
type Account struct {
	ID                    string     `json:"id" gorm:"type:text;primaryKey"`
	AccountID             string     `json:"accountId" gorm:"size:255;not null;index"`
	ProviderID            string     `json:"providerId" gorm:"size:64;not null;index"`
	UserID                string     `json:"userId" gorm:"type:text;not null;index"`
	AccessToken           *string    `json:"-" gorm:"size:2048"`
	RefreshToken          *string    `json:"-" gorm:"size:2048"`
	IDToken               *string    `json:"-" gorm:"size:2048"`
	AccessTokenExpiresAt  *time.Time `json:"accessTokenExpiresAt,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refreshTokenExpiresAt,omitempty"`
	Scope                 *string    `json:"scope,omitempty" gorm:"size:512"`
	Password              *string    `json:"-" gorm:"size:255"` // bcrypt hash, credential provider only
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns an ID before inserting the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
