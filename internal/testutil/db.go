// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"levelup/backend/internal/config"
	"levelup/backend/internal/database"
	"levelup/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database that lives for the duration of the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DriverSQLite, ":memory:", logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

// CreateUser inserts a user whose password is the username followed by "-pw".
func CreateUser(t *testing.T, db *gorm.DB, username, first, last string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(username+"-pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    first,
		LastName:     last,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

// CreateGameType inserts a game type.
func CreateGameType(t *testing.T, db *gorm.DB, label string) *models.GameType {
	t.Helper()

	gameType := &models.GameType{Label: label}
	if err := db.Create(gameType).Error; err != nil {
		t.Fatalf("Failed to create game type %s: %v", label, err)
	}
	return gameType
}
