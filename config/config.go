// Package config loads service configuration.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a YAML file: $CONFIG_PATH, else ./config.yaml or ./config.yml
//  3. environment variables (a .env file in the working directory is read first)
//
// Environment variables:
//
//	HTTP_HOST, HTTP_PORT, GIN_MODE
//	HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
//	DB_DRIVER (sqlite|mysql), DB_DSN, DB_MAX_OPEN_CONNS
//	MODEL_PATH, VECTORIZER_PATH, STOPWORDS_PATH
//	STATIC_DIR, STATIC_INDEX
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//	AWS_REGION
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"sensor-sentiment/logging"
)

// ConfigPathEnvVar names the variable pointing at a YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are checked in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Model    ModelConfig    `koanf:"model"`
	Static   StaticConfig   `koanf:"static"`
	Logging  LoggingConfig  `koanf:"logging"`
	AWS      AWSConfig      `koanf:"aws"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is sqlite or mysql.
	Driver string `koanf:"driver"`
	// DSN is a file path for sqlite, or a go-sql-driver DSN for mysql
	// (e.g. user:pass@tcp(127.0.0.1:3306)/sensors?parseTime=true).
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
}

type ModelConfig struct {
	// ClassifierPath and VectorizerPath accept a local path or s3://bucket/key.
	ClassifierPath string `koanf:"classifier_path"`
	VectorizerPath string `koanf:"vectorizer_path"`
	// StopwordsPath overrides the embedded Indonesian list when set.
	StopwordsPath string `koanf:"stopwords_path"`
}

type StaticConfig struct {
	Dir   string `koanf:"dir"`
	Index string `koanf:"index"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ToLogging converts to the logging package's configuration.
func (l LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:  l.Level,
		Format: l.Format,
		Caller: l.Caller,
		Output: os.Stderr,
	}
}

type AWSConfig struct {
	Region string `koanf:"region"`
}

// Default returns the built-in configuration shared by all three services.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          "sensor_data.db",
			MaxOpenConns: 10,
		},
		Model: ModelConfig{
			ClassifierPath: "artifacts/classifier.json",
			VectorizerPath: "artifacts/vectorizer.json",
		},
		Static: StaticConfig{
			Dir:   "static",
			Index: "index.html",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		AWS: AWSConfig{
			Region: "eu-west-1",
		},
	}
}

// Load layers the file and environment over defaults and validates the result.
// A nil defaults uses Default().
func Load(defaults *Config) (*Config, error) {
	if defaults == nil {
		defaults = Default()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		logging.Warn().Str("path", p).Msg("Config file not found, falling back to defaults")
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"gin_mode":              "server.mode",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"db_driver":         "database.driver",
	"db_dsn":            "database.dsn",
	"db_max_open_conns": "database.max_open_conns",

	"model_path":      "model.classifier_path",
	"vectorizer_path": "model.vectorizer_path",
	"stopwords_path":  "model.stopwords_path",

	"static_dir":   "static.dir",
	"static_index": "static.index",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"aws_region": "aws.region",
}

// envTransformFunc maps known variables to koanf keys; everything else is dropped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be sqlite or mysql, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Database.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must not be negative, got %d", c.Database.MaxOpenConns))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
