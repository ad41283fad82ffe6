package config

import (
	"fmt"
	"time"

	"github.com/jasamarga/toll-ops-gateway/pkg/configparser"
)

// Session store kinds
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

// Config contains all configuration variables of the gateway
type (
	Config struct {
		App      AppConfig
		Upstream UpstreamConfig
		Session  SessionConfig
		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
	}

	AppConfig struct {
		Name     string `env:"APP_NAME" default:"toll-ops-gateway"`
		Port     string `env:"APP_PORT" default:"3000"`
		LogLevel string `env:"APP_LOG_LEVEL" default:"INFO"`
	}

	// UpstreamConfig points at the toll operator's REST backend
	UpstreamConfig struct {
		BaseURL string        `env:"UPSTREAM_BASE_URL" default:"http://localhost:8080/api"`
		Timeout time.Duration `env:"UPSTREAM_TIMEOUT" default:"30s"`
	}

	// SessionConfig selects the persistent credential store and the
	// lifetime of the session cookies.
	SessionConfig struct {
		Store        string        `env:"SESSION_STORE" default:"memory"`
		CookieMaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE" default:"168h"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"dashboard_user"`
		Password string `env:"DATABASE_PASSWORD" default:"dashboard_pass"`
		Database string `env:"DATABASE_DATABASE" default:"dashboard_db"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading environment variables and parsing into the config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if cfg.Session.Store != SessionStoreMemory && cfg.Session.Store != SessionStorePostgres {
		return nil, fmt.Errorf("invalid session store %q", cfg.Session.Store)
	}

	return cfg, nil
}
