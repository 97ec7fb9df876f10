package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
	Attendance AttendanceConfig
	Notifier   NotifierConfig
	GeoIP      GeoIPConfig
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
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// AttendanceConfig holds the working-hours fallback used before an admin has
// saved a configuration row.
type AttendanceConfig struct {
	DefaultStartHour int
	DefaultEndHour   int
}

// NotifierConfig selects the event delivery backend.
type NotifierConfig struct {
	Driver            string // "sse" or "nats"
	NATSURL           string
	NATSSubjectPrefix string
}

type GeoIPConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	origins := getEnvSlice("ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: origins,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// Working-hours fallback
	startHour, err := strconv.Atoi(getEnv("WORK_START_HOUR", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_START_HOUR: %w", err)
	}
	endHour, err := strconv.Atoi(getEnv("WORK_END_HOUR", "17"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_END_HOUR: %w", err)
	}
	config.Attendance = AttendanceConfig{
		DefaultStartHour: startHour,
		DefaultEndHour:   endHour,
	}

	// Notifier configuration
	config.Notifier = NotifierConfig{
		Driver:            getEnv("NOTIFIER_DRIVER", "sse"),
		NATSURL:           getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "attendance"),
	}

	// GeoIP configuration; empty base URL disables IP-based coordinates.
	config.GeoIP = GeoIPConfig{
		BaseURL: getEnv("GEOIP_BASE_URL", ""),
	}

	// Validate required fields
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
	if c.Notifier.Driver != "sse" && c.Notifier.Driver != "nats" {
		return fmt.Errorf("NOTIFIER_DRIVER must be sse or nats")
	}
	if c.Attendance.DefaultStartHour < 0 || c.Attendance.DefaultStartHour > 23 ||
		c.Attendance.DefaultEndHour < 0 || c.Attendance.DefaultEndHour > 23 {
		return fmt.Errorf("work hours must be between 0 and 23")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
