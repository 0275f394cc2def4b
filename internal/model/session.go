package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is an ephemeral record of an authenticated client. The opaque Token
// travels in a cookie or bearer header; expiry is checked on every lookup.
type Session struct {
	ID             string    `json:"id" gorm:"type:text;primaryKey"`
	Token          string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	UserID         string    `json:"userId" gorm:"type:text;not null;index"`
	ExpiresAt      time.Time `json:"expiresAt" gorm:"not null"`
	IPAddress      string    `json:"ipAddress" gorm:"size:64"`
	UserAgent      string    `json:"userAgent" gorm:"size:512"`
	ImpersonatedBy *string   `json:"impersonatedBy,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ID before inserting the record.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
