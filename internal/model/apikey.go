package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIKey is a credential for non-interactive service authentication,
// independent of sessions.
type APIKey struct {
	ID         string     `json:"id" gorm:"type:text;primaryKey"`
	Name       string     `json:"name" gorm:"size:255;not null"`
	Key        string     `json:"-" gorm:"uniqueIndex;size:255;not null"`
	UserID     string     `json:"userId" gorm:"type:text;not null;index"`
	Enabled    bool       `json:"enabled" gorm:"not null;default:true"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// TableName keeps the table name the auth schema uses.
func (APIKey) TableName() string { return "apikeys" }

// BeforeCreate assigns an ID before inserting the record.
func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}
