package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Upload naming strategies.
const (
	NamingTimestamp = "timestamp"
	NamingUUID      = "uuid"
)

// Config holds all inventory configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	BodyLimitMB  int    `yaml:"body_limit_mb"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
	CORSOrigins  string `yaml:"cors_origins"`
}

// DatabaseConfig selects and addresses the store.
type DatabaseConfig struct {
	Driver        string `yaml:"driver"` // sqlite, postgres, mongo
	DSN           string `yaml:"dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

// UploadsConfig configures where uploaded images land and how they are named.
type UploadsConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
	Naming    string `yaml:"naming"` // timestamp, uuid
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":3000",
			BodyLimitMB:  8,
			ReadTimeout:  "15s",
			WriteTimeout: "15s",
			CORSOrigins:  "*",
		},
		Database: DatabaseConfig{
			Driver:        DriverSQLite,
			DSN:           "data/inventory.db",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "inventory",
		},
		Uploads: UploadsConfig{
			Dir:       "public/uploads",
			URLPrefix: "/uploads",
			Naming:    NamingTimestamp,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
// Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := os.Getenv("INVENTORY_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	if driver := os.Getenv("INVENTORY_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	// DATABASE_URL is the conventional postgres variable; an explicit DSN wins over it.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.DSN = url
	}
	if dsn := os.Getenv("INVENTORY_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		c.Database.MongoURI = uri
	}

	if dir := os.Getenv("INVENTORY_UPLOAD_DIR"); dir != "" {
		c.Uploads.Dir = dir
	}
	if level := os.Getenv("INVENTORY_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// BodyLimit returns the request body limit in bytes.
func (c *Config) BodyLimit() int {
	if c.Server.BodyLimitMB <= 0 {
		return 8 * 1024 * 1024
	}
	return c.Server.BodyLimitMB * 1024 * 1024
}

// ValidDrivers lists all supported database drivers.
var ValidDrivers = []string{DriverSQLite, DriverPostgres, DriverMongo}

// ValidNamings lists all supported upload naming strategies.
var ValidNamings = []string{NamingTimestamp, NamingUUID}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidDrivers, c.Database.Driver) {
		return fmt.Errorf("invalid database driver: %s (valid: %v)", c.Database.Driver, ValidDrivers)
	}
	if !c.Database.IsSQL() {
		if c.Database.MongoURI == "" || c.Database.MongoDatabase == "" {
			return fmt.Errorf("mongo driver needs mongo_uri and mongo_database")
		}
	} else if c.Database.DSN == "" {
		return fmt.Errorf("database dsn not configured (set INVENTORY_DB_DSN or database.dsn)")
	}
	if !slices.Contains(ValidNamings, c.Uploads.Naming) {
		return fmt.Errorf("invalid upload naming: %s (valid: %v)", c.Uploads.Naming, ValidNamings)
	}
	if c.Uploads.Dir == "" {
		return fmt.Errorf("uploads dir not configured")
	}
	return nil
}

// IsSQL reports whether the driver is served by GORM.
func (d DatabaseConfig) IsSQL() bool {
	return d.Driver == DriverSQLite || d.Driver == DriverPostgres
}
