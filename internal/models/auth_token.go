package models

import "time"

// AuthToken is the bearer token issued to a user at registration.
// Each user owns exactly one token and keeps it across logins.
type AuthToken struct {
	Key       string `gorm:"primaryKey;size:512"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
