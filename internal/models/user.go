package models

import "gorm.io/gorm"

// User represents a registered gamer.
type User struct {
	gorm.Model
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:150;not null"`
	LastName     string `gorm:"size:150;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	Token *AuthToken `gorm:"foreignKey:UserID"`
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
