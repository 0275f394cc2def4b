package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification is a short lived token for email verification flows. Identifier
// is the email being verified, Value the opaque token mailed to it.
type Verification struct {
	ID         string    `json:"id" gorm:"type:text;primaryKey"`
	Identifier string    `json:"identifier" gorm:"size:255;not null;index"`
	Value      string    `json:"value" gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ID before inserting the record.
func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
