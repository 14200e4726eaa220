package model

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusCompleted Status = "COMPLETED"
	StatusArchived  Status = "ARCHIVED"
)

// PRD is a project requirement document owned by one author. Sections,
// versions, comments and the current content are deleted with it.
type PRD struct {
	ID                 string    `gorm:"primaryKey;type:varchar(36)"`
	Title              string    `gorm:"not null"`
	ProjectDescription string    `gorm:"type:text;not null"`
	TechStack          []string  `gorm:"type:text;serializer:json"`
	Status             Status    `gorm:"type:varchar(16);not null;default:'DRAFT';index"`
	AuthorID           string    `gorm:"type:varchar(36);not null;index"`
	Author             *User     `gorm:"foreignKey:AuthorID"`
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
	LastEditedAt       time.Time
	PageCount          int32 `gorm:"not null;default:0"`
	IsPublic           bool  `gorm:"not null;default:false"`

	Sections       []*Section       `gorm:"foreignKey:PRDID;constraint:OnDelete:CASCADE"`
	Versions       []*Version       `gorm:"foreignKey:PRDID;constraint:OnDelete:CASCADE"`
	Comments       []*Comment       `gorm:"foreignKey:PRDID;constraint:OnDelete:CASCADE"`
	CurrentContent *DocumentContent `gorm:"foreignKey:PRDID;constraint:OnDelete:CASCADE"`
}

func (PRD) TableName() string {
	return "prds"
}

func (p *PRD) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.LastEditedAt.IsZero() {
		p.LastEditedAt = time.Now()
	}
	return nil
}
