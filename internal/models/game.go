package models

import "time"

// Game represents a catalog entry that users can rate.
type Game struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Link        string    `gorm:"size:1024;not null"`
	Description string    `gorm:"type:text;not null"`
	Image       string    `gorm:"size:1024;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`

	Ratings []Rating `gorm:"constraint:OnDelete:CASCADE;"`
}
