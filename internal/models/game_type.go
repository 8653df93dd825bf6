package models

import "gorm.io/gorm"

// GameType represents a category of game (e.g., "Board game", "Card game").
type GameType struct {
	gorm.Model
	Label string `gorm:"size:200;uniqueIndex;not null"`
}
