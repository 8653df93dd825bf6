package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           string `mapstructure:"PORT"`
	GinMode        string `mapstructure:"GIN_MODE"`
	GameTypes      string `mapstructure:"GAME_TYPES"`
}

var AppConfig *Config

var defaults = map[string]string{
	"DATABASE_DRIVER": DriverPostgres,
	"DATABASE_URL":    "",
	"JWT_SECRET":      "",
	"PORT":            "8080",
	"GIN_MODE":        "debug",
	"GAME_TYPES":      "Board game,Card game,Tabletop role playing game",
}

// Load reads the configuration from a .env file in the working directory and
// from environment variables. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports missing or unsupported settings.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	return nil
}

// GameTypeLabels returns the configured game type labels, trimmed and without blanks.
func (c *Config) GameTypeLabels() []string {
	var labels []string
	for _, part := range strings.Split(c.GameTypes, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// LoadConfig loads the configuration into AppConfig, exiting on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Unable to load config: %v", err)
	}
	AppConfig = cfg
}
