package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"

	// EnvConfigPath переменная окружения с путем к конфигу
	EnvConfigPath = "CONFIG_PATH"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Events    EventsConfig    `toml:"events"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Booking   BookingConfig   `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"` // пусто - stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Backend        string         `toml:"backend"`
	RequestTimeout int            `toml:"request_timeout"` // секунды, 0 - без ограничения
	Postgres       PostgresConfig `toml:"postgres"`
	Redis          RedisConfig    `toml:"redis"`
	Mongo          MongoConfig    `toml:"mongo"`
}

type PostgresConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Table           string `toml:"table"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type RedisConfig struct {
	Addrs     []string `toml:"addrs"`
	Password  string   `toml:"password"`
	DB        int      `toml:"db"`
	KeyPrefix string   `toml:"key_prefix"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type EventsConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	TTL     int     `toml:"ttl"` // секунды
}

type BookingConfig struct {
	DefaultShopID   string `toml:"default_shop_id"`
	StrictSlotGuard bool   `toml:"strict_slot_guard"`
	AtomicViews     *bool  `toml:"atomic_views"` // nil - по умолчанию true
	MaxListedSlots  int    `toml:"max_listed_slots"`
}

// UseAtomicViews true, если не выключено явно
func (b BookingConfig) UseAtomicViews() bool {
	return b.AtomicViews == nil || *b.AtomicViews
}

// DSN строка подключения к PostgreSQL
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Load читает конфиг из файла. Путь из CONFIG_PATH имеет приоритет
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "workshop_appointments")

	setString(&c.Storage.Backend, BackendMemory)
	setString(&c.Storage.Postgres.Host, "localhost")
	setInt(&c.Storage.Postgres.Port, 5432)
	setString(&c.Storage.Postgres.SSLMode, "disable")
	setString(&c.Storage.Postgres.Table, "kv_items")
	setInt(&c.Storage.Postgres.MaxOpenConns, 10)
	setInt(&c.Storage.Postgres.MaxIdleConns, 5)
	setInt(&c.Storage.Postgres.ConnMaxLifetime, 300)
	if len(c.Storage.Redis.Addrs) == 0 {
		c.Storage.Redis.Addrs = []string{"localhost:6379"}
	}
	setString(&c.Storage.Mongo.Database, "workshop")
	setString(&c.Storage.Mongo.Collection, "kv_items")

	setString(&c.Events.Topic, "appointments")

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	setInt(&c.RateLimit.Burst, 10)
	setInt(&c.RateLimit.TTL, 600)

	setString(&c.Booking.DefaultShopID, "Main")
	setInt(&c.Booking.MaxListedSlots, 10)
}

// Validate собирает все ошибки конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}

	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logs.level unknown: %q", c.Logs.Level))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/': %q", c.Metrics.Path))
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.Postgres.DBName == "" {
			errs = append(errs, errors.New("storage.postgres.dbname is required"))
		}
	case BackendRedis:
	case BackendMongo:
		if c.Storage.Mongo.URI == "" {
			errs = append(errs, errors.New("storage.mongo.uri is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend unknown: %q", c.Storage.Backend))
	}
	if c.Storage.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("storage.request_timeout must not be negative: %d", c.Storage.RequestTimeout))
	}

	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		errs = append(errs, errors.New("events.brokers are required when events are enabled"))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS < 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive"))
	}

	if strings.Contains(c.Booking.DefaultShopID, "#") {
		errs = append(errs, fmt.Errorf("booking.default_shop_id must not contain '#': %q", c.Booking.DefaultShopID))
	}

	return errors.Join(errs...)
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
