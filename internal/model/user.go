package model

import (
	"time"

	"gorm.io/gorm"
)

// User is the local record of a person authenticated by the external identity
// provider. ClerkUserID is the provider's subject id.
type User struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	ClerkUserID string `gorm:"uniqueIndex;not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PRDs        []*PRD `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
