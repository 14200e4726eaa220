package model

import (
	"time"

	"gorm.io/gorm"
)

// Version is an immutable snapshot of a PRD. Content holds the sections as
// json and MarkdownContent the document text, both encoded with Compression.
type Version struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	PRDID           string `gorm:"type:varchar(36);not null;uniqueIndex:idx_versions_prd_number,priority:1"`
	VersionNumber   int32  `gorm:"not null;uniqueIndex:idx_versions_prd_number,priority:2"`
	Content         string `gorm:"type:text"`
	MarkdownContent string `gorm:"type:text"`
	Compression     string `gorm:"type:varchar(16);not null;default:'none'"`
	CreatedAt       time.Time
}

func (Version) TableName() string {
	return "versions"
}

func (v *Version) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
