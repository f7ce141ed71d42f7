package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     *time.Time
	Address     string
	Category    string
	Status      string `gorm:"not null;default:pending"` // "pending", "approved", "rejected"
	ImageURL    string
	Links       datatypes.JSON `gorm:"type:jsonb"`
	OwnerID     uint           `gorm:"not null;index"`
	VenueID     *uint          `gorm:"index"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Venue    *Venue    `gorm:"foreignKey:VenueID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Comments []Comment `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
