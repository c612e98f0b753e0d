package configs

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"go-weather/pkg/resource"
)

type ServerConfig struct {
	Port        string
	ContextPath string
}

type WeatherConfig struct {
	BaseURL string
	APIKey  string
}

type DBConfig struct {
	// Driver is one of sqlite, postgres, mysql
	Driver string
	// Gateway is sqlc (database/sql) or gorm
	Gateway string
	DSN     string
}

type CacheConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	Database int
	TTL      time.Duration
}

type QueueConfig struct {
	Enabled         bool
	Name            string
	AWSRegion       string
	AWSEndpoint     string
	AccessKeyID     string
	SecretAccessKey string
}

type RefreshConfig struct {
	Enabled  bool
	Cron     string
	PoolSize int
}

// Config is the typed application configuration. It is built once in main
// and handed to constructors.
type Config struct {
	AppName string
	Server  ServerConfig
	Weather WeatherConfig
	DB      DBConfig
	Cache   CacheConfig
	Queue   QueueConfig
	Refresh RefreshConfig
}

// Load reads a local .env file when present, then the properties file at path.
func Load(path string) (*Config, error) {
	// a missing .env is not an error
	_ = godotenv.Load()

	props, err := resource.Load(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppName: props.GetStringOrDefault("app.name", "go-weather"),
		Server: ServerConfig{
			Port:        props.GetStringOrDefault("app.server.port", "5000"),
			ContextPath: props.GetStringOrDefault("app.server.context-path", "/api"),
		},
		Weather: WeatherConfig{
			BaseURL: props.GetString("app.weather.base-url"),
			APIKey:  props.GetString("app.weather.api-key"),
		},
		DB: DBConfig{
			Driver:  props.GetStringOrDefault("app.db.driver", "sqlite"),
			Gateway: props.GetStringOrDefault("app.db.gateway", "sqlc"),
			DSN:     props.GetStringOrDefault("app.db.dsn", "weather.db"),
		},
		Cache: CacheConfig{
			Enabled:  props.GetBool("app.cache.enabled"),
			Host:     props.GetStringOrDefault("app.cache.host", "localhost"),
			Port:     props.GetInt("app.cache.port"),
			Password: props.GetString("app.cache.password"),
			Database: props.GetInt("app.cache.database"),
			TTL:      props.GetDuration("app.cache.ttl"),
		},
		Queue: QueueConfig{
			Enabled:         props.GetBool("app.queue.enabled"),
			Name:            props.GetStringOrDefault("app.queue.name", "weather-refresh"),
			AWSRegion:       props.GetStringOrDefault("app.queue.aws-region", "us-east-1"),
			AWSEndpoint:     props.GetString("app.queue.aws-endpoint"),
			AccessKeyID:     props.GetString("app.queue.access-key-id"),
			SecretAccessKey: props.GetString("app.queue.secret-access-key"),
		},
		Refresh: RefreshConfig{
			Enabled:  props.GetBool("app.refresh.enabled"),
			Cron:     props.GetStringOrDefault("app.refresh.cron", "*/30 * * * *"),
			PoolSize: props.GetInt("app.refresh.pool-size"),
		},
	}

	if cfg.Cache.Port == 0 {
		cfg.Cache.Port = 6379
	}
	if cfg.Refresh.PoolSize <= 0 {
		cfg.Refresh.PoolSize = 1
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combinations the wiring in main relies on.
func (c *Config) Validate() error {
	if c.Weather.BaseURL == "" {
		return fmt.Errorf("app.weather.base-url cannot be empty")
	}

	switch c.DB.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported app.db.driver %q", c.DB.Driver)
	}

	switch c.DB.Gateway {
	case "sqlc":
	case "gorm":
		if c.DB.Driver != "postgres" {
			return fmt.Errorf("app.db.gateway gorm requires the postgres driver, got %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported app.db.gateway %q", c.DB.Gateway)
	}

	if c.Queue.Enabled && c.Queue.Name == "" {
		return fmt.Errorf("app.queue.name cannot be empty when the queue is enabled")
	}
	return nil
}
