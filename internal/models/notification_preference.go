package models

import "gorm.io/gorm"

type NotificationPreference struct {
	gorm.Model

	UserID     uint `gorm:"not null;uniqueIndex"`
	Enabled    bool `gorm:"not null;default:true"`
	HoursAhead int  `gorm:"not null;default:48"` // look-ahead window, 1-168

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
