package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Compliance ComplianceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// ComplianceConfig holds the jurisdiction knobs for the rule engine.
type ComplianceConfig struct {
	Timezone             string
	GeofenceRadiusMeters float64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "jornada"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Compliance configuration
	radius, err := strconv.ParseFloat(getEnv("COMPLIANCE_GEOFENCE_RADIUS_M", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLIANCE_GEOFENCE_RADIUS_M: %w", err)
	}

	config.Compliance = ComplianceConfig{
		Timezone:             getEnv("COMPLIANCE_TIMEZONE", "Europe/Madrid"),
		GeofenceRadiusMeters: radius,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Compliance.GeofenceRadiusMeters <= 0 {
		return fmt.Errorf("COMPLIANCE_GEOFENCE_RADIUS_M must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Limits returns the rule-engine thresholds with configuration overrides
// applied on top of the statutory defaults.
func (c *Config) Limits() compliance.Limits {
	limits := compliance.DefaultLimits()
	limits.Timezone = c.Compliance.Timezone
	limits.GeofenceRadiusMeters = c.Compliance.GeofenceRadiusMeters
	return limits
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
