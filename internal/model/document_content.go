package model

import (
	"time"

	"gorm.io/gorm"
)

// DocumentContent holds the generated markdown of a PRD. HTMLContent is empty
// until the render job fills it in.
type DocumentContent struct {
	ID              string  `gorm:"primaryKey;type:varchar(36)"`
	PRDID           string  `gorm:"type:varchar(36);not null;uniqueIndex"`
	MarkdownContent string  `gorm:"type:text;not null"`
	HTMLContent     *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DocumentContent) TableName() string {
	return "document_contents"
}

func (d *DocumentContent) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

// PendingHTML reports whether the html rendering has not been produced yet.
func (d *DocumentContent) PendingHTML() bool {
	return d.HTMLContent == nil || *d.HTMLContent == ""
}
