package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App   AppConfig
	Redis RedisConfig
	JWT   JWTConfig
	Loan  LoanConfig
	Auth  AuthConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// SuspensionLiftPolicy quyết định khi nào librarian được gỡ suspension
type SuspensionLiftPolicy string

const (
	LiftPolicyManual        SuspensionLiftPolicy = "manual"
	LiftPolicyNoOpenOverdue SuspensionLiftPolicy = "no_open_overdue"
	LiftPolicyDisabled      SuspensionLiftPolicy = "disabled"
)

func (p SuspensionLiftPolicy) IsValid() bool {
	switch p {
	case LiftPolicyManual, LiftPolicyNoOpenOverdue, LiftPolicyDisabled:
		return true
	}
	return false
}

type LoanConfig struct {
	PeriodDays      int
	FinePerDay      decimal.Decimal
	Location        *time.Location
	LiftPolicy      SuspensionLiftPolicy
	OverdueScanCron string
}

type AuthConfig struct {
	MaxFailedLogins int
	LockoutWindow   time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	finePerDay, err := decimal.NewFromString(getEnv("LOAN_FINE_PER_DAY", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOAN_FINE_PER_DAY: %w", err)
	}

	location, err := time.LoadLocation(getEnv("LOAN_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOAN_TIMEZONE: %w", err)
	}

	lockout, err := time.ParseDuration(getEnv("AUTH_LOCKOUT_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_LOCKOUT_WINDOW: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Loan: LoanConfig{
			PeriodDays:      getEnvInt("LOAN_PERIOD_DAYS", 14),
			FinePerDay:      finePerDay,
			Location:        location,
			LiftPolicy:      SuspensionLiftPolicy(getEnv("SUSPENSION_LIFT_POLICY", string(LiftPolicyManual))),
			OverdueScanCron: getEnv("OVERDUE_SCAN_CRON", "0 6 * * *"),
		},
		Auth: AuthConfig{
			MaxFailedLogins: getEnvInt("AUTH_MAX_FAILED_LOGINS", 5),
			LockoutWindow:   lockout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Loan.PeriodDays <= 0 {
		return fmt.Errorf("LOAN_PERIOD_DAYS must be positive, got %d", c.Loan.PeriodDays)
	}
	if c.Loan.FinePerDay.IsNegative() {
		return fmt.Errorf("LOAN_FINE_PER_DAY must not be negative")
	}
	if !c.Loan.LiftPolicy.IsValid() {
		return fmt.Errorf("unknown SUSPENSION_LIFT_POLICY %q", c.Loan.LiftPolicy)
	}
	if c.Auth.MaxFailedLogins <= 0 {
		return fmt.Errorf("AUTH_MAX_FAILED_LOGINS must be positive")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	return nil
}

// AccessTokenTTL converts the configured minutes to a duration
func (c JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiry) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnv is exported for the cmd packages (worker, migrate)
func GetEnv(key, defaultValue string) string {
	return getEnv(key, defaultValue)
}
