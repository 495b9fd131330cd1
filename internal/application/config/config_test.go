package config_test

import (
	"os"
	"testing"

	"github.com/paroles-live/paroles/internal/application/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DEBUG", "PORT", "METRICS_PORT", "VIDEOS_DIR", "WEB_DIR", "WATCH_LIBRARY",
		"S3_BUCKET", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"S3_REGION", "S3_USE_SSL", "S3_PUBLIC_URL",
	} {
		// t.Setenv registers the restore; Unsetenv leaves the variable
		// genuinely absent so envDefault applies.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultsSelectLocalMode(t *testing.T) {
	clearEnv(t)

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.CloudMode() {
		t.Fatal("expected local mode without S3_BUCKET")
	}
	if cfg.Port != "8742" {
		t.Fatalf("port default: got %q", cfg.Port)
	}
	if cfg.VideosDir != "./videos" {
		t.Fatalf("videos dir default: got %q", cfg.VideosDir)
	}
	if cfg.WatchLibrary {
		t.Fatal("watcher must default to off")
	}
}

func TestCloudModeRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("S3_BUCKET", "songs")

	if _, err := config.New(); err == nil {
		t.Fatal("expected error for incomplete cloud config")
	}
}

func TestCloudModeComplete(t *testing.T) {
	clearEnv(t)
	t.Setenv("S3_BUCKET", "songs")
	t.Setenv("S3_ENDPOINT", "account.r2.cloudflarestorage.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_PUBLIC_URL", "https://pub-x.r2.dev/")

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !cfg.CloudMode() {
		t.Fatal("expected cloud mode")
	}
	if cfg.S3.Region != "auto" {
		t.Fatalf("region default: got %q", cfg.S3.Region)
	}
	if !cfg.S3.UseSSL {
		t.Fatal("ssl must default to on")
	}
}
