package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Store      StoreConfig
	CORS       CORSConfig
	Attendance AttendanceConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int           `env:"APP_PORT"              env-default:"8000"`
	Env             string        `env:"APP_ENV"               env-default:"development"`
	LogLevel        string        `env:"LOG_LEVEL"             env-default:"info"`
	ReadTimeout     time.Duration `env:"APP_READ_TIMEOUT"      env-default:"10s"`
	WriteTimeout    time.Duration `env:"APP_WRITE_TIMEOUT"     env-default:"30s"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"  env-default:"10s"`
}

type DatabaseConfig struct {
	Host        string `env:"DB_HOST"         env-default:"localhost"`
	Port        int    `env:"DB_PORT"         env-default:"5432"`
	User        string `env:"DB_USER"         env-default:"postgres"`
	Password    string `env:"DB_PASSWORD"`
	Name        string `env:"DB_NAME"         env-default:"hrms"`
	SSLMode     string `env:"DB_SSL_MODE"     env-default:"disable"`
	MaxConns    int32  `env:"DB_MAX_CONNS"    env-default:"25"`
	MinConns    int32  `env:"DB_MIN_CONNS"    env-default:"5"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Type string `env:"STORE" env-default:"postgres"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

// AttendanceConfig decides what a second mark for the same employee and day does
type AttendanceConfig struct {
	MarkPolicy string `env:"ATTENDANCE_MARK_POLICY" env-default:"overwrite"`
}

// ClientConfig is read by the API consumers (hrmsctl), not by the server
type ClientConfig struct {
	APIBaseURL string        `env:"HRMS_API_BASE_URL" env-default:"http://localhost:8000"`
	Timeout    time.Duration `env:"HRMS_API_TIMEOUT"  env-default:"0s"`
	NotifyTTL  time.Duration `env:"NOTIFY_TTL"        env-default:"4200ms"`
}

// Load reads the server configuration from the environment, after loading
// an optional .env file.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	config.CORS.AllowedOrigins = trimAll(config.CORS.AllowedOrigins)
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadClient reads the API client configuration.
func LoadClient() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &ClientConfig{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	config.APIBaseURL = strings.TrimRight(strings.TrimSpace(config.APIBaseURL), "/")
	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("HRMS_API_BASE_URL is required")
	}
	if config.Timeout < 0 {
		return nil, fmt.Errorf("HRMS_API_TIMEOUT must not be negative")
	}
	if config.NotifyTTL <= 0 {
		return nil, fmt.Errorf("NOTIFY_TTL must be positive")
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store.Type)
	}

	switch c.Attendance.MarkPolicy {
	case "overwrite", "reject":
	default:
		return fmt.Errorf("ATTENDANCE_MARK_POLICY must be overwrite or reject, got %q", c.Attendance.MarkPolicy)
	}

	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT: %d", c.App.Port)
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

func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env file: %w", err)
	}
	return nil
}

func trimAll(values []string) []string {
	var result []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
