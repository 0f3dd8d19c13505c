// Package models defines the persisted records of the analysis service.
package models

import (
	"time"

	"gorm.io/gorm"

	"finhealth/internal/uuid"
)

// Base contains common columns for all tables.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a time-ordered UUIDv7 to new records.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
