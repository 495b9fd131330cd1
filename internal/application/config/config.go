package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full deployment configuration, parsed once from the
// environment at startup.
type Config struct {
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	Port        string `env:"PORT" envDefault:"8742"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// VideosDir is the local media root (one sub-directory per song).
	VideosDir string `env:"VIDEOS_DIR" envDefault:"./videos"`

	// WebDir holds the static entry pages for the two browser clients.
	WebDir string `env:"WEB_DIR" envDefault:"./web"`

	// WatchLibrary enables the fsnotify rescan watcher in local mode.
	WatchLibrary bool `env:"WATCH_LIBRARY" envDefault:"false"`

	S3 S3Config
}

// S3Config selects and configures the object-store backend. Setting
// S3_BUCKET switches the process into cloud mode.
type S3Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Region          string `env:"S3_REGION" envDefault:"auto"`
	UseSSL          bool   `env:"S3_USE_SSL" envDefault:"true"`
	PublicURL       string `env:"S3_PUBLIC_URL"`
}

// CloudMode reports whether the song library lives in an object store
// rather than on the local filesystem.
func (c *Config) CloudMode() bool {
	return c.S3.Bucket != ""
}

func (s *S3Config) validate() error {
	var missing []string
	if s.Endpoint == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if s.AccessKeyID == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if s.SecretAccessKey == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("cloud mode requires %v", missing)
	}

	return nil
}

func New() (*Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if c.CloudMode() {
		if err := c.S3.validate(); err != nil {
			return nil, err
		}
	}

	return &c, nil
}
