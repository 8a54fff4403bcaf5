package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/pkg/mailer"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired challenge sweep interval (default: 1h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite file (default: accessissues.db)
	PostgresURL    string // Required for the postgres driver

	TokenSecret      string        // Required: signs login tokens
	SessionSecret    string        // Required: signs the session cookie
	LoginTokenMaxAge time.Duration // Login token lifetime (default: 20m)

	FromEmail string // Sender of login codes and invitations
	SiteURL   string // Public site root used in invitation links
	Mail      mailer.Config
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "accessissues.db"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),

		TokenSecret:      os.Getenv("TOKEN_SECRET"),
		SessionSecret:    os.Getenv("WEB_SESSION_SECRET"),
		LoginTokenMaxAge: getEnvDurationOrDefault("LOGIN_TOKEN_MAX_AGE", service.DefaultLoginMaxAge),

		FromEmail: getEnvOrDefault("FROM_EMAIL", "noreply@accessissues.com"),
		SiteURL:   getEnvOrDefault("SITE_URL", "http://localhost:8080/"),
		Mail: mailer.Config{
			Provider:       getEnvOrDefault("MAIL_PROVIDER", "log"),
			SendGridAPIKey: os.Getenv("SEND_GRID_API_KEY"),
			MailgunDomain:  os.Getenv("MAILGUN_DOMAIN"),
			MailgunAPIKey:  os.Getenv("MAILGUN_API_KEY"),
			MailgunAPIBase: os.Getenv("MAILGUN_API_BASE"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       os.Getenv("SMTP_PORT"),
			SMTPUsername:   os.Getenv("SMTP_USERNAME"),
			SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		},
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.TokenSecret == "" {
		errs = append(errs, errors.New("TOKEN_SECRET is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("WEB_SESSION_SECRET is required"))
	}
	if c.TokenSecret != "" && c.TokenSecret == c.SessionSecret {
		errs = append(errs, errors.New("TOKEN_SECRET and WEB_SESSION_SECRET must differ"))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.PostgresURL == "" {
			errs = append(errs, errors.New("POSTGRES_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.LoginTokenMaxAge <= 0 {
		errs = append(errs, errors.New("LOGIN_TOKEN_MAX_AGE must be positive"))
	}
	if c.IsProduction() && strings.EqualFold(c.Mail.Provider, "log") {
		errs = append(errs, errors.New("MAIL_PROVIDER=log is not allowed in production"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}
	return nil
}

// IsProduction turns on secure cookies.
func (c Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "prod" || env == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
