package model

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	PRDID     string `gorm:"type:varchar(36);not null;index"`
	AuthorID  string `gorm:"type:varchar(36);not null;index"`
	Author    *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
