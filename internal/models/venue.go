package models

import "gorm.io/gorm"

type Venue struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	Address     string
	City        string
	Latitude    float64
	Longitude   float64
	Category    string
	Status      string `gorm:"not null;default:pending"` // "pending", "approved", "rejected"
	OwnerID     uint   `gorm:"not null;index"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Events   []Event   `gorm:"foreignKey:VenueID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Comments []Comment `gorm:"foreignKey:VenueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
