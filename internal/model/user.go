package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an identity record. A user may own several accounts
// (credential bindings) across providers.
type User struct {
	ID            string     `json:"id" gorm:"type:text;primaryKey"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	Email         string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	EmailVerified bool       `json:"emailVerified" gorm:"not null;default:false"`
	Image         *string    `json:"image,omitempty" gorm:"size:1024"`
	Role          string     `json:"role" gorm:"size:50;not null;default:'user'"`
	Banned        bool       `json:"banned" gorm:"not null;default:false"`
	BanReason     *string    `json:"banReason,omitempty" gorm:"size:1024"`
	BanExpires    *time.Time `json:"banExpires,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Relations
	Accounts []Account `json:"accounts,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Sessions []Session `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
