package models

import "gorm.io/gorm"

type Favorite struct {
	gorm.Model

	UserID  uint  `gorm:"not null;uniqueIndex:idx_user_event_fav;uniqueIndex:idx_user_venue_fav"`
	EventID *uint `gorm:"uniqueIndex:idx_user_event_fav"`
	VenueID *uint `gorm:"uniqueIndex:idx_user_venue_fav"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Event *Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Venue *Venue `gorm:"foreignKey:VenueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
