package config

import (
	"strings"
	"testing"
	"time"
)

// setRequiredEnv fills the credentials Validate() insists on.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MUSICSYNC_CHANNEL_ID", "UCchan")
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("R2_ACCESS_KEY_ID", "ak")
	t.Setenv("R2_SECRET_ACCESS_KEY", "sk")
	t.Setenv("R2_ACCOUNT_ID", "acct123")
	t.Setenv("HOME", t.TempDir()) // keep any real user config out of the test
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.S3Bucket != "music-library" {
		t.Errorf("S3Bucket = %q, want default", cfg.S3Bucket)
	}
	if cfg.S3Region != "auto" {
		t.Errorf("S3Region = %q, want %q", cfg.S3Region, "auto")
	}
	if cfg.YtdlpPath != "yt-dlp" {
		t.Errorf("YtdlpPath = %q, want %q", cfg.YtdlpPath, "yt-dlp")
	}
	if cfg.FetchTimeout != 10*time.Minute {
		t.Errorf("FetchTimeout = %v, want 10m", cfg.FetchTimeout)
	}
}

func TestLoadEndpointFromAccountID(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := "https://acct123.r2.cloudflarestorage.com"
	if cfg.S3Endpoint != want {
		t.Errorf("S3Endpoint = %q, want %q", cfg.S3Endpoint, want)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MUSICSYNC_S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("MUSICSYNC_S3_BUCKET", "other-bucket")
	t.Setenv("MUSICSYNC_FETCH_TIMEOUT", "30s")
	t.Setenv("YT_DLP_BINARY_PATH", "/usr/local/bin/yt-dlp")
	t.Setenv("COOKIES_FILE_PATH", "/etc/cookies.txt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.S3Endpoint != "https://s3.example.com" {
		t.Errorf("S3Endpoint = %q, explicit endpoint must win over account ID", cfg.S3Endpoint)
	}
	if cfg.S3Bucket != "other-bucket" {
		t.Errorf("S3Bucket = %q, want %q", cfg.S3Bucket, "other-bucket")
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
	if cfg.YtdlpPath != "/usr/local/bin/yt-dlp" {
		t.Errorf("YtdlpPath = %q", cfg.YtdlpPath)
	}
	if cfg.CookiesFile != "/etc/cookies.txt" {
		t.Errorf("CookiesFile = %q", cfg.CookiesFile)
	}
}

func TestValidateMissingChannel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MUSICSYNC_CHANNEL_ID", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "MUSICSYNC_CHANNEL_ID") {
		t.Errorf("Load() error = %v, want missing-channel error", err)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("R2_SECRET_ACCESS_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "credentials") {
		t.Errorf("Load() error = %v, want missing-credentials error", err)
	}
}

func TestValidateBadTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChannelID = "UCchan"
	cfg.GoogleAPIKey = "k"
	cfg.MongoURI = "mongodb://localhost"
	cfg.S3AccessKeyID = "ak"
	cfg.S3SecretAccessKey = "sk"
	cfg.S3Endpoint = "https://s3.example.com"
	cfg.FetchTimeout = 0

	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "fetch_timeout") {
		t.Errorf("Validate() error = %v, want fetch_timeout error", err)
	}
}
