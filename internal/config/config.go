package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds the PostgreSQL settings of the submission intake.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectTimeout bounds dialing and every connectivity ping.
	ConnectTimeout time.Duration
	// StatementTimeout is sent as the session's statement_timeout.
	// It defaults to the review timeout of the checklist.
	StatementTimeout time.Duration
}

// VerificationConfig holds the timings and limits of the verification checklist.
type VerificationConfig struct {
	ReviewDelay        time.Duration
	PopupDuration      time.Duration
	ToastDuration      time.Duration
	ReviewTimeout      time.Duration
	NotificationBuffer int

	// Sessions untouched for SessionIdleTTL are closed by the sweeper, which runs every SweepInterval.
	SessionIdleTTL time.Duration
	SweepInterval  time.Duration
	// MaxSessions caps open sessions; 0 means unlimited.
	MaxSessions int
}

const (
	IntakeSimulated = "simulated"
	IntakePostgres  = "postgres"
)

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	LogLevel string
	// IntakeMode selects where submissions go: IntakeSimulated or IntakePostgres.
	IntakeMode     string
	SwaggerEnabled bool
	Database       DatabaseConfig
	Verification   VerificationConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	reviewTimeout := getEnvDuration("VERIFY_REVIEW_TIMEOUT", 10*time.Second)

	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		IntakeMode:     getEnv("INTAKE_MODE", IntakeSimulated),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		Database: DatabaseConfig{
			Host:             getEnv("DB_HOST", ""),
			Port:             getEnv("DB_PORT", "5432"),
			User:             getEnv("DB_USER", ""),
			Password:         getEnv("DB_PASSWORD", ""),
			Name:             getEnv("DB_NAME", ""),
			SSLMode:          getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnectTimeout:   getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
			StatementTimeout: getEnvDuration("DB_STATEMENT_TIMEOUT", reviewTimeout),
		},
		Verification: VerificationConfig{
			ReviewDelay:        getEnvDuration("VERIFY_REVIEW_DELAY", 2*time.Second),
			PopupDuration:      getEnvDuration("VERIFY_POPUP_DURATION", 3*time.Second),
			ToastDuration:      getEnvDuration("VERIFY_TOAST_DURATION", 5*time.Second),
			ReviewTimeout:      reviewTimeout,
			NotificationBuffer: getEnvInt("VERIFY_NOTIFICATION_BUFFER", 32),
			SessionIdleTTL:     getEnvDuration("VERIFY_SESSION_IDLE_TTL", 30*time.Minute),
			SweepInterval:      getEnvDuration("VERIFY_SWEEP_INTERVAL", time.Minute),
			MaxSessions:        getEnvInt("VERIFY_MAX_SESSIONS", 10000),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}
