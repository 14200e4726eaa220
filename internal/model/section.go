package model

import (
	"time"

	"gorm.io/gorm"
)

// Section is one page of a PRD. Order is unique within the PRD and is stored
// in the position column.
type Section struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	PRDID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_sections_prd_order,priority:1"`
	Title     string `gorm:"not null"`
	Order     int32  `gorm:"column:position;not null;uniqueIndex:idx_sections_prd_order,priority:2"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Section) TableName() string {
	return "sections"
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
