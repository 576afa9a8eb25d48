package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"VIP Ledger"`
		Port int    `envconfig:"PORT" default:"8080"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	Storage struct {
		Driver       string `envconfig:"STORAGE_DRIVER" default:"file"`
		Key          string `envconfig:"STORAGE_KEY" default:"vip_financial_data"`
		Dir          string `envconfig:"STORAGE_DIR" default:"./data"`
		SQLitePath   string `envconfig:"SQLITE_PATH" default:"./data/vip.db"`
		RedisAddr    string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
		WriteThrough bool   `envconfig:"STORAGE_WRITE_THROUGH" default:"true"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"vipledger"`
	}

	Auth struct {
		// Password is the shared dashboard password.
		Password   string        `envconfig:"AUTH_PASSWORD"`
		Secret     string        `envconfig:"AUTH_SECRET"`
		SessionTTL time.Duration `envconfig:"AUTH_SESSION_TTL" default:"720h"`
		// MarkerPath is where the terminal UI remembers a login.
		MarkerPath string `envconfig:"AUTH_MARKER_PATH" default:"./data/vip_auth_token"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"http://localhost:5173"`
		LoginRate      int           `envconfig:"SERVER_LOGIN_RATE" default:"10"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate checks the settings every entry point depends on.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("%w: STORAGE_DIR is required for the file driver", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite driver", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return fmt.Errorf("%w: DB_HOST and DB_NAME are required for the postgres driver", ErrInvalidConfig)
		}
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("%w: REDIS_ADDR is required for the redis driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("%w: STORAGE_KEY is required", ErrInvalidConfig)
	}

	if c.Auth.Password == "" {
		return fmt.Errorf("%w: AUTH_PASSWORD is required", ErrInvalidConfig)
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("%w: AUTH_SECRET is required", ErrInvalidConfig)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("%w: AUTH_SESSION_TTL must be positive", ErrInvalidConfig)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
