package models

import "gorm.io/gorm"

// EventNotification records that an upcoming event has already been surfaced
// to a user. The composite unique index makes repeat inserts no-ops.
type EventNotification struct {
	gorm.Model

	UserID  uint `gorm:"not null;uniqueIndex:idx_user_event_notification"`
	EventID uint `gorm:"not null;uniqueIndex:idx_user_event_notification"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
