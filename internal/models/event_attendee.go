package models

import "time"

// EventAttendee links a user to an event they signed up for.
// The primary key is a composite of (EventID, UserID), so a user attends an event at most once.
type EventAttendee struct {
	EventID   uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Event Event `gorm:"foreignKey:EventID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
