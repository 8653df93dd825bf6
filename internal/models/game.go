package models

import "gorm.io/gorm"

// Game represents a game a user added to the catalog.
type Game struct {
	gorm.Model
	Name            string `gorm:"size:200;not null"`
	Manufacturer    string `gorm:"size:200;not null"`
	NumberOfPlayers int    `gorm:"not null"`
	TypeID          uint   `gorm:"not null;index"`
	CreatorID       uint   `gorm:"not null;index"`

	Type    GameType `gorm:"foreignKey:TypeID"`
	Creator User     `gorm:"foreignKey:CreatorID"`
}

// OwnerID returns the creator, the only user allowed to modify the game.
func (g Game) OwnerID() uint {
	return g.CreatorID
}
