package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"levelup/backend/internal/config"
	"levelup/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open opens a database with the named driver and runs migrations.
func Open(driver, dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// SQLite allows a single writer, and each connection to ":memory:" is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Event{}, "Attendees", &models.EventAttendee{}); err != nil {
		return fmt.Errorf("setup event attendees join table: %w", err)
	}
	err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.GameType{},
		&models.Game{},
		&models.Event{},
		&models.EventAttendee{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// SeedGameTypes makes sure a game type exists for each label.
func SeedGameTypes(ctx context.Context, db *gorm.DB, labels []string) error {
	for _, label := range labels {
		gameType := models.GameType{Label: label}
		if err := db.WithContext(ctx).Where(models.GameType{Label: label}).FirstOrCreate(&gameType).Error; err != nil {
			return fmt.Errorf("seed game type %q: %w", label, err)
		}
	}
	return nil
}

// Connect initializes the global database connection and runs migrations.
func Connect(cfg *config.Config) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := Open(cfg.DatabaseDriver, cfg.DatabaseURL, customLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established and migrated.")

	if err := SeedGameTypes(context.Background(), db, cfg.GameTypeLabels()); err != nil {
		log.Fatalf("Failed to seed game types: %v", err)
	}

	DB = db
}
