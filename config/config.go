// Package config provides configuration settings for the short URL service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the application.
// The object store fields mirror the settings the redirect bucket and its
// CDN distribution were provisioned with; they are read once at startup and
// never mutated afterwards.
type Config struct {
	// Object store settings.
	Region           string `validate:"required"`
	Bucket           string `validate:"required"`
	Prefix           string `validate:"required"`
	DistributionHost string `validate:"required"`
	RandomDigits     int    `validate:"gt=0"`
	SignatureVersion string `validate:"required,oneof=s3v4"`
	StorageBackend   string `validate:"required,oneof=s3 memory"`

	// Optional S3 client settings. When AccessKeyID/SecretAccessKey are
	// empty the default AWS credential chain is used. Endpoint and
	// ForcePathStyle exist for S3-compatible stores such as MinIO.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool

	// MaxAttempts bounds the collision retry loop. Zero means unbounded,
	// matching the historical behavior.
	MaxAttempts int `validate:"gte=0"`

	// HTTP server settings.
	ServerPort     int           `validate:"gt=0"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		RandomDigits:     8,
		SignatureVersion: "s3v4",
		StorageBackend:   "s3",
		MaxAttempts:      0,
		ServerPort:       3000,
		RequestTimeout:   5 * time.Second,
	}
}

// Load builds a Config from the environment on top of the defaults.
// An optional .env file is honored for development convenience. The returned
// config is validated; missing required fields fail here, before any network
// interaction takes place.
func Load() (*Config, error) {
	// Attempt to load a .env file, but don't fail if it's not there.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	cfg.Region = getEnv("S3_REGION", cfg.Region)
	cfg.Bucket = getEnv("S3_BUCKET", cfg.Bucket)
	cfg.Prefix = getEnv("KEY_PREFIX", cfg.Prefix)
	cfg.DistributionHost = getEnv("DISTRIBUTION_HOST", cfg.DistributionHost)
	cfg.SignatureVersion = getEnv("SIGNATURE_VERSION", cfg.SignatureVersion)
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", cfg.StorageBackend)
	cfg.Endpoint = getEnv("S3_ENDPOINT", cfg.Endpoint)
	cfg.AccessKeyID = getEnv("S3_ACCESS_KEY_ID", cfg.AccessKeyID)
	cfg.SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", cfg.SecretAccessKey)

	var err error
	if cfg.RandomDigits, err = getEnvInt("RANDOM_DIGITS", cfg.RandomDigits); err != nil {
		return nil, err
	}
	if cfg.MaxAttempts, err = getEnvInt("MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.ServerPort, err = getEnvInt("SERVER_PORT", cfg.ServerPort); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.ForcePathStyle, err = getEnvBool("S3_FORCE_PATH_STYLE", cfg.ForcePathStyle); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for presence of required fields.
// Only presence and ranges are checked; there is no semantic validation of
// the prefix or the distribution host.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
