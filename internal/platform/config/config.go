package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second

	defaultCurrency       = "usd"
	defaultTimezone       = "America/New_York"
	defaultCutoffHour     = 9
	defaultAdminTokenTTL  = 12 * time.Hour
	defaultPaymentTimeout = 15 * time.Second
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Admin    AdminConfig
	Bakery   BakeryConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig stores the relational store connection parameters.
type DatabaseConfig struct {
	DSN string
}

// StripeConfig collects payment processor credentials.
type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	// Timeout bounds the payment-intent call during checkout.
	Timeout time.Duration
}

// EmailConfig configures the transactional mail sender.
type EmailConfig struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
	StaffAddress   string
}

// AdminConfig groups staff authentication settings.
type AdminConfig struct {
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
	// BaseURL is used to build admin detail links in staff emails.
	BaseURL string
}

// BakeryConfig carries storefront business parameters.
type BakeryConfig struct {
	Currency string
	// Timezone is the single source for both "today" and "current hour"
	// in the same-day cutoff check.
	Timezone   string
	CutoffHour int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env overrides,
// and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Database: DatabaseConfig{
			DSN: stringWithDefault(lookup, "DATABASE_URL", ""),
		},
		Stripe: StripeConfig{
			APIKey:        stringWithDefault(lookup, "STRIPE_SECRET_KEY", ""),
			WebhookSecret: stringWithDefault(lookup, "STRIPE_WEBHOOK_SECRET", ""),
			Timeout:       durationWithDefault(lookup, "STRIPE_TIMEOUT", defaultPaymentTimeout),
		},
		Email: EmailConfig{
			SendGridAPIKey: stringWithDefault(lookup, "SENDGRID_API_KEY", ""),
			FromAddress:    stringWithDefault(lookup, "EMAIL_FROM_ADDRESS", ""),
			FromName:       stringWithDefault(lookup, "EMAIL_FROM_NAME", "Nataly Bakery"),
			StaffAddress:   stringWithDefault(lookup, "EMAIL_STAFF_ADDRESS", ""),
		},
		Admin: AdminConfig{
			Password:  stringWithDefault(lookup, "ADMIN_PASSWORD", ""),
			JWTSecret: stringWithDefault(lookup, "ADMIN_JWT_SECRET", ""),
			TokenTTL:  durationWithDefault(lookup, "ADMIN_TOKEN_TTL", defaultAdminTokenTTL),
			BaseURL:   strings.TrimRight(stringWithDefault(lookup, "ADMIN_BASE_URL", ""), "/"),
		},
		Bakery: BakeryConfig{
			Currency:   strings.ToLower(stringWithDefault(lookup, "BAKERY_CURRENCY", defaultCurrency)),
			Timezone:   stringWithDefault(lookup, "BAKERY_TIMEZONE", defaultTimezone),
			CutoffHour: intWithDefault(lookup, "BAKERY_SAMEDAY_CUTOFF_HOUR", defaultCutoffHour),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Database.DSN == "" {
		missing = append(missing, "Database.DSN")
	}
	if cfg.Admin.Password == "" {
		missing = append(missing, "Admin.Password")
	}
	if cfg.Admin.JWTSecret == "" {
		missing = append(missing, "Admin.JWTSecret")
	}
	if cfg.Bakery.CutoffHour < 0 || cfg.Bakery.CutoffHour > 23 {
		missing = append(missing, "Bakery.CutoffHour")
	}
	if cfg.Bakery.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Bakery.Timezone); err != nil {
			missing = append(missing, "Bakery.Timezone")
		}
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
