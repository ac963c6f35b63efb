package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jhaveripatric/ota-gateway/internal/logger"
)

const (
	// DefaultFilename is the config file looked up when no path is given.
	DefaultFilename = "config.yaml"

	DefaultPort            = 3000
	DefaultBuildDir        = "dist"
	DefaultMetadataFile    = "metadata.json"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultS3Region        = "us-east-1"

	// StorageDir serves the build output from the local filesystem.
	StorageDir = "dir"
	// StorageS3 serves the build output from an S3-compatible bucket.
	StorageS3 = "s3"
)

var errBucketRequired = errors.New("storage.s3.bucket is required for the s3 driver")

// Option overrides a loaded configuration before validation.
type Option func(*Config) error

// WithPort overrides the listen port.
func WithPort(port int) Option {
	return func(cfg *Config) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		cfg.Server.Port = port
		return nil
	}
}

// WithBuildDir overrides the build output directory.
func WithBuildDir(dir string) Option {
	return func(cfg *Config) error {
		cfg.Build.Dir = dir
		return nil
	}
}

// Load reads and parses the configuration file, applies environment
// overrides, then opts, and validates the result. A missing file at the
// default location is not an error; the gateway then runs on defaults.
func Load(path string, opts ...Option) (*Config, error) {
	var cfg Config

	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultFilename:
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}

	setString(&cfg.Build.Dir, "OTA_BUILD_DIR")
	setString(&cfg.Server.PublicURL, "OTA_PUBLIC_URL")
	setString(&cfg.Logging.Level, "OTA_LOG_LEVEL")
	setString(&cfg.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Storage.S3.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.S3.Region, "S3_REGION")
	setString(&cfg.Storage.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.S3.SecretKey, "S3_SECRET_KEY")

	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func validate(cfg *Config) error {
	if cfg.Name == "" {
		cfg.Name = "ota-gateway"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}

	if cfg.Server.PublicURL != "" {
		u, err := url.Parse(cfg.Server.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid public_url: %q", cfg.Server.PublicURL)
		}
		cfg.Server.PublicURL = strings.TrimRight(cfg.Server.PublicURL, "/")
	}

	if cfg.Build.Dir == "" {
		cfg.Build.Dir = DefaultBuildDir
	}
	if cfg.Build.MetadataFile == "" {
		cfg.Build.MetadataFile = DefaultMetadataFile
	}

	switch cfg.Storage.Driver {
	case "":
		cfg.Storage.Driver = StorageDir
	case StorageDir:
	case StorageS3:
		if cfg.Storage.S3.Bucket == "" {
			return errBucketRequired
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
	if cfg.Storage.S3.Region == "" {
		cfg.Storage.S3.Region = DefaultS3Region
	}
	if cfg.Storage.S3.ForcePathStyle == nil {
		forcePathStyle := true
		cfg.Storage.S3.ForcePathStyle = &forcePathStyle
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if _, ok := logger.ParseLogLevel(cfg.Logging.Level); !ok {
		return fmt.Errorf("invalid log level: %q", cfg.Logging.Level)
	}

	return nil
}
