package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &PRD{}, &Section{}, &DocumentContent{}, &Version{}, &Comment{}); err != nil {
		return err
	}

	return nil
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
