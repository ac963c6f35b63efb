package config

import "time"

// Config holds all gateway configuration.
type Config struct {
	Name    string        `yaml:"name"`
	Version string        `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Build   BuildConfig   `yaml:"build"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
	// PublicURL replaces the origin derived from the inbound request when
	// building asset URLs. Useful behind proxies that rewrite Host.
	PublicURL string `yaml:"public_url"`
	// TrustProxyHeaders lets X-Forwarded-Proto/Host pick the asset origin.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool          `yaml:"trust_proxy_headers"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	CORS              CORSConfig    `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// BuildConfig locates the exported bundle.
type BuildConfig struct {
	Dir          string `yaml:"dir"`
	MetadataFile string `yaml:"metadata_file"`
}

// StorageConfig selects where the build output is read from.
type StorageConfig struct {
	Driver string   `yaml:"driver"`
	S3     S3Config `yaml:"s3"`
}

// S3Config holds bucket settings for the s3 storage driver.
type S3Config struct {
	Bucket         string `yaml:"bucket"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	ForcePathStyle *bool  `yaml:"force_path_style"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Endpoint string `yaml:"endpoint"`
}
