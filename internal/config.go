package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/timewarp/internal/store"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Library  LibraryConfig     `yaml:"library"`
	Exiftool ExiftoolConfig    `yaml:"exiftool"`
	Retry    RetryConfig       `yaml:"retry"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Library.Validate(); err != nil {
		return err
	}
	return c.Retry.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// LibraryConfig points at the .photoslibrary bundle to operate on.
type LibraryConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the library configuration.
func (c *LibraryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ExiftoolConfig holds the optional explicit path to the exiftool binary;
// empty means look in $PATH.
type ExiftoolConfig struct {
	Path string `yaml:"path"`
}

// RetryConfig bounds the busy-retry loop against the row-store. Delays are
// in milliseconds.
type RetryConfig struct {
	Attempts   int `yaml:"attempts"`
	MinDelayMS int `yaml:"min_delay_ms"`
	MaxDelayMS int `yaml:"max_delay_ms"`
}

// Validate validates the retry configuration.
func (c *RetryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Attempts, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.MinDelayMS, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxDelayMS, validation.Required, validation.Min(1)),
	)
}

// Policy converts the retry section into the store's retry policy.
func (c *RetryConfig) Policy() store.RetryPolicy {
	return store.RetryPolicy{
		Attempts: c.Attempts,
		MinDelay: time.Duration(c.MinDelayMS) * time.Millisecond,
		MaxDelay: time.Duration(c.MaxDelayMS) * time.Millisecond,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	retry := store.DefaultRetryPolicy()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Library: LibraryConfig{
			Path: filepath.Join(home, "Pictures", "Photos Library.photoslibrary"),
		},
		Retry: RetryConfig{
			Attempts:   retry.Attempts,
			MinDelayMS: int(retry.MinDelay / time.Millisecond),
			MaxDelayMS: int(retry.MaxDelay / time.Millisecond),
		},
	}
}
