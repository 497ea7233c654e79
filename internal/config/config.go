package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

type Config struct {
	JWT      JWTConfig
	App      AppConfig
	CORS     CORSConfig
	Matching MatchingConfig
	Payroll  PayrollConfig
	Seed     SeedConfig
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// MatchingConfig controls how subject overlaps are scored
type MatchingConfig struct {
	ScoringMode matching.ScoringMode
}

// PayrollConfig holds the daily rate for staff without a pay rate of their own
type PayrollConfig struct {
	DefaultDailyRate decimal.Decimal
}

// SeedConfig holds the password given to fixture accounts
type SeedConfig struct {
	Password string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Info("no .env file found, using environment")
	}

	config := &Config{}

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
	jwtAccessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: jwtAccessExpiration,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.Matching = MatchingConfig{
		ScoringMode: matching.ScoringMode(getEnv("MATCH_SCORING_MODE", string(matching.ScoringPairs))),
	}

	defaultDailyRate, err := decimal.NewFromString(getEnv("PAYROLL_DEFAULT_DAILY_RATE", "12000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_DAILY_RATE: %w", err)
	}
	config.Payroll = PayrollConfig{
		DefaultDailyRate: defaultDailyRate,
	}

	config.Seed = SeedConfig{
		Password: getEnv("SEED_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Seed.Password == "" {
		return fmt.Errorf("SEED_PASSWORD is required")
	}
	if !c.Matching.ScoringMode.IsValid() {
		return fmt.Errorf("MATCH_SCORING_MODE must be %q or %q", matching.ScoringPairs, matching.ScoringDistinct)
	}
	if !c.Payroll.DefaultDailyRate.IsPositive() {
		return fmt.Errorf("PAYROLL_DEFAULT_DAILY_RATE must be positive")
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS is required")
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
