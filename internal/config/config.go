package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DB_"`
	AMQP     AMQPConfig     `env:",prefix=AMQP_"`
	App      AppConfig      `env:",prefix=APP_"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port               string `env:"PORT,default=8080"`
	Host               string `env:"HOST,default=0.0.0.0"`
	ReadTimeout        int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout       int    `env:"WRITE_TIMEOUT,default=30"` // seconds
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE,default=600"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD,default=postgres"`
	Name     string `env:"NAME,default=blooddrive"`
	SSLMode  string `env:"SSL_MODE,default=disable"`
	MaxConns int    `env:"MAX_CONNS,default=25"`
	MinConns int    `env:"MIN_CONNS,default=5"`
}

// AMQPConfig selects the broker for record change events. An empty URL
// keeps events in process.
type AMQPConfig struct {
	URL   string `env:"URL"`
	Queue string `env:"QUEUE,default=record_changes"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// GetDatabaseURL returns the PostgreSQL connection URL
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
