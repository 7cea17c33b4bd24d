// Package config provides application configuration loaded from code defaults, an
// optional YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StorageMemory = "memory"
	StorageGorm   = "gorm"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
)

// Database drivers used by the gorm storage.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	App      AppConfig      `yaml:"app"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings. SERVER_PORT falls back to PORT.
type ServerConfig struct {
	Port         string        `yaml:"port" envconfig:"PORT" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true" validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" split_words:"true" validate:"gt=0"`
}

// DatabaseConfig holds SQL connection settings. Fields carry no envconfig tag so that
// DB_USER never falls back to the shell's USER.
type DatabaseConfig struct {
	Driver     string `yaml:"driver" validate:"oneof=sqlite postgres"`
	Path       string `yaml:"path"`
	ConnString string `yaml:"conn_string" split_words:"true"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port" validate:"gte=0,lte=65535"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env         string `yaml:"env" validate:"oneof=development production test"`
	Migrations  bool   `yaml:"migrations"`
	DefaultLang string `yaml:"default_lang" split_words:"true" validate:"oneof=fr en"`
	// RateLimit is the number of requests accepted per client IP and minute. Zero disables it.
	RateLimit int `yaml:"rate_limit" split_words:"true" validate:"gte=0"`
}

// StorageConfig selects where the snapshot is persisted.
type StorageConfig struct {
	Driver   string `yaml:"driver" validate:"oneof=memory gorm redis mongo"`
	Key      string `yaml:"key" validate:"required,max=100"`
	MaxBytes int    `yaml:"max_bytes" split_words:"true" validate:"gte=0"`
}

// RedisConfig holds the Redis snapshot backend settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

// MongoConfig holds the MongoDB snapshot backend settings.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// DSN returns the PostgreSQL connection string in key=value format. An explicit
// DB_CONN_STRING wins over the individual fields.
func (d DatabaseConfig) DSN() string {
	if d.ConnString != "" {
		return d.ConnString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format, as golang-migrate wants it.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.App.Env == "production"
}

// Defaults returns the configuration used for local development.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  DriverSQLite,
			Path:    "devis.db",
			Host:    "localhost",
			Port:    5432,
			User:    "devis",
			Name:    "devis",
			SSLMode: "disable",
		},
		App: AppConfig{
			Env:         "development",
			DefaultLang: "fr",
			RateLimit:   300,
		},
		Storage: StorageConfig{
			Driver:   StorageGorm,
			Key:      "entrepreneurApp",
			MaxBytes: 5 << 20,
		},
		Redis: RedisConfig{Addr: "127.0.0.1:6379"},
		Mongo: MongoConfig{URI: "mongodb://localhost:27017", Database: "devis"},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration: defaults, then the YAML file named by CONFIG_FILE
// (if any), then environment variables, then validation.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	sections := []struct {
		prefix string
		target any
	}{
		{"SERVER", &cfg.Server},
		{"DB", &cfg.Database},
		{"APP", &cfg.App},
		{"STORAGE", &cfg.Storage},
		{"REDIS", &cfg.Redis},
		{"MONGO", &cfg.Mongo},
		{"LOG", &cfg.Log},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.target); err != nil {
			return nil, fmt.Errorf("env %s: %w", s.prefix, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and the settings each storage driver needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Storage.Driver {
	case StorageGorm:
		if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
			return errors.New("config: database path is required for sqlite")
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: redis addr is required for the redis storage")
		}
	case StorageMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("config: mongo uri and database are required for the mongo storage")
		}
	}
	return nil
}
