package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model

	Title    string `gorm:"not null"`
	Slug     string `gorm:"uniqueIndex;not null"`
	Body     string `gorm:"not null"`
	Status   string `gorm:"not null;default:pending"` // "pending", "approved", "rejected"
	AuthorID uint   `gorm:"not null;index"`

	// Relationships
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
