package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// HTTP
	Port           string   `envconfig:"PORT" default:"8083"`
	GinMode        string   `envconfig:"GIN_MODE" default:"debug"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	// Keeps 200 on search misses and rejected deletes for old clients.
	LegacyStatusCodes bool `envconfig:"LEGACY_STATUS_CODES" default:"false"`

	// DB
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN        string `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=cafe port=5432 sslmode=disable"`
	DBLogLevel string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	// Auth
	APIKey    string        `envconfig:"API_KEY" required:"true"`
	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"15m"`
}

// Load reads .env (when present) and then the process environment.
func Load() (App, error) {
	_ = godotenv.Load(".env")

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c App) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY must not be empty")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.DBLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("unsupported DB_LOG_LEVEL %q", c.DBLogLevel)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

func (c App) Addr() string { return ":" + c.Port }
