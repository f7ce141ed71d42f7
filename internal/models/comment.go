package models

import "gorm.io/gorm"

// Comment attaches to exactly one of an event, a venue or a post. The
// handlers guarantee a single non-nil parent reference per row.
type Comment struct {
	gorm.Model

	Content  string `gorm:"not null"`
	AuthorID uint   `gorm:"not null;index"`
	EventID  *uint  `gorm:"index"`
	VenueID  *uint  `gorm:"index"`
	PostID   *uint  `gorm:"index"`

	// Relationships
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Event  *Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Venue  *Venue `gorm:"foreignKey:VenueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Post   *Post  `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
