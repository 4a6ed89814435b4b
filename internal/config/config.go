package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"financeflow/internal/core"
	"financeflow/internal/profile"
)

type Config struct {
	// HTTP server
	Port string

	// Remote tier (per-identity document store)
	SQLiteDBPath string

	// Change feed (optional; empty URL disables publishing)
	AMQPURL      string
	AMQPExchange string

	// Profile defaults
	DefaultCurrency string
	DefaultBudget   string

	// In-memory identity provider seed
	AuthEmail    string
	AuthPassword string
	AuthName     string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/financeflow.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "financeflow"),

		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "EUR"),
		DefaultBudget:   getEnv("DEFAULT_BUDGET", "1000"),

		AuthEmail:    getEnv("AUTH_EMAIL", "demo@financeflow.local"),
		AuthPassword: getEnv("AUTH_PASSWORD", "demo"),
		AuthName:     getEnv("AUTH_NAME", "Demo User"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, ok := profile.SymbolFor(c.DefaultCurrency); !ok {
		errs = append(errs, fmt.Sprintf("unknown default currency '%s'", c.DefaultCurrency))
	}

	if budget, err := core.MoneyFromString(c.DefaultBudget); err != nil {
		errs = append(errs, fmt.Sprintf("invalid default budget '%s'", c.DefaultBudget))
	} else if budget.IsNegative() {
		errs = append(errs, fmt.Sprintf("default budget '%s' must not be negative", c.DefaultBudget))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Budget parses the configured default budget. Call Validate first.
func (c *Config) Budget() (core.Money, error) {
	return core.MoneyFromString(c.DefaultBudget)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
