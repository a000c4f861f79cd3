// Package config loads clientdesk settings from a TOML file, a .env file and
// the environment, in that order of increasing precedence. Command-line flags
// are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Defaults.
const (
	DefaultBaseURL     = "https://boasorte.teddybackoffice.com.br"
	DefaultPageSize    = 16
	DefaultTable       = "clientdesk"
	DefaultRedisAddr   = "localhost:6379"
	DefaultHomeDirName = ".clientdesk"
)

var backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendDynamoDB, BackendMemory}

// Config holds the complete application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig describes the clients backend.
type APIConfig struct {
	BaseURL           string   `toml:"base_url"`
	Timeout           Duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Burst             int      `toml:"burst"`
}

// StorageConfig selects where selection and session state is persisted.
type StorageConfig struct {
	Backend    string         `toml:"backend"`
	Dir        string         `toml:"dir"`
	Passphrase string         `toml:"passphrase"`
	Compress   bool           `toml:"compress"`
	Redis      RedisConfig    `toml:"redis"`
	DynamoDB   DynamoDBConfig `toml:"dynamodb"`
	SQLite     SQLiteConfig   `toml:"sqlite"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Username string   `toml:"username"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	Prefix   string   `toml:"prefix"`
	Timeout  Duration `toml:"timeout"`
}

// DynamoDBConfig configures the dynamodb backend. A non-empty Endpoint
// targets a local emulator with static credentials.
type DynamoDBConfig struct {
	Table    string   `toml:"table"`
	Endpoint string   `toml:"endpoint"`
	Region   string   `toml:"region"`
	Timeout  Duration `toml:"timeout"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
	File   string `toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize  int   `toml:"page_size"`
	PageSizes []int `toml:"page_sizes"`
}

// Duration wraps time.Duration for TOML parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultHome returns $CLIENTDESK_HOME or ~/.clientdesk.
func DefaultHome() (string, error) {
	if h := os.Getenv("CLIENTDESK_HOME"); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultHomeDirName), nil
}

// Default returns the configuration used when no file exists.
func Default(home string) *Config {
	var cfg Config
	cfg.applyDefaults(home)
	return &cfg
}

// Load reads path (a missing file is not an error), applies environment
// overrides and defaults, and validates the result. home is the fallback
// storage directory.
func Load(path, home string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults(home)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetHome points storage at dir, taking precedence over the file and the
// environment. A SQLite path derived from the previous dir follows it.
func (c *Config) SetHome(dir string) {
	if c.Storage.SQLite.Path == "" || c.Storage.SQLite.Path == filepath.Join(c.Storage.Dir, "clientdesk.db") {
		c.Storage.SQLite.Path = filepath.Join(dir, "clientdesk.db")
	}
	c.Storage.Dir = dir
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.API.BaseURL, "CLIENTDESK_API_URL")
	setString(&c.Storage.Backend, "CLIENTDESK_STORAGE_BACKEND")
	setString(&c.Storage.Dir, "CLIENTDESK_HOME")
	setString(&c.Storage.Passphrase, "CLIENTDESK_PASSPHRASE")
	setString(&c.Log.Level, "CLIENTDESK_LOG_LEVEL")
	setString(&c.Storage.Redis.Addr, "REDIS_ADDR")
	setString(&c.Storage.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Storage.DynamoDB.Endpoint, "DDB_ENDPOINT")
	setString(&c.Storage.DynamoDB.Table, "DDB_TABLE")
	setString(&c.Storage.DynamoDB.Region, "AWS_REGION")

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		c.Storage.Redis.DB = n
	}
	return nil
}

// applyDefaults sets default values for missing configuration.
func (c *Config) applyDefaults(home string) {
	// API
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.Timeout.Duration == 0 {
		c.API.Timeout.Duration = 15 * time.Second
	}
	if c.API.Burst == 0 {
		c.API.Burst = 5
	}

	// Storage
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = home
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = filepath.Join(c.Storage.Dir, "clientdesk.db")
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = DefaultRedisAddr
	}
	if c.Storage.Redis.Timeout.Duration == 0 {
		c.Storage.Redis.Timeout.Duration = 5 * time.Second
	}
	if c.Storage.DynamoDB.Table == "" {
		c.Storage.DynamoDB.Table = DefaultTable
	}
	if c.Storage.DynamoDB.Region == "" {
		c.Storage.DynamoDB.Region = "us-east-1"
	}
	if c.Storage.DynamoDB.Timeout.Duration == 0 {
		c.Storage.DynamoDB.Timeout.Duration = 5 * time.Second
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}
	if c.Log.Output == "file" && c.Log.File == "" {
		c.Log.File = filepath.Join(c.Storage.Dir, "clientdesk.log")
	}

	// UI
	if c.UI.PageSize == 0 {
		c.UI.PageSize = DefaultPageSize
	}
	if len(c.UI.PageSizes) == 0 {
		c.UI.PageSizes = []int{8, 16, 32}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("unknown storage backend %q (want one of %s)",
			c.Storage.Backend, strings.Join(backends, ", "))
	}
	if (c.Storage.Backend == BackendFile || c.Storage.Backend == BackendSQLite) && c.Storage.Dir == "" {
		return errors.New("storage dir is required")
	}
	if c.API.BaseURL == "" {
		return errors.New("api base_url is required")
	}
	if c.API.Timeout.Duration < 0 {
		return errors.New("api timeout must not be negative")
	}
	if c.API.RequestsPerSecond < 0 || c.API.Burst < 0 {
		return errors.New("api rate limit must not be negative")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui page_size must be positive, got %d", c.UI.PageSize)
	}
	for _, n := range c.UI.PageSizes {
		if n <= 0 {
			return fmt.Errorf("ui page_sizes must be positive, got %d", n)
		}
	}
	return nil
}
