// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults matching the archive's deployment.
const (
	defaultBucket         = "music-library"
	defaultPublicHost     = "music-library-r2.nvhub.my.id"
	defaultRegion         = "auto"
	defaultWorkDir        = "musics"
	defaultCheckpointPath = "musicsync.checkpoint.json"
	defaultFetchTimeout   = 10 * time.Minute
)

// Config holds all application configuration for a sync run.
type Config struct {
	// ChannelID is the catalog channel whose playlists are synchronized.
	ChannelID string `json:"channel_id"`
	// GoogleAPIKey authenticates catalog listing calls.
	GoogleAPIKey string `json:"-"`

	// MongoURI is the document-store connection string.
	MongoURI string `json:"-"`
	// MongoDatabase is the database holding the archive records.
	MongoDatabase string `json:"mongo_database"`

	// S3AccessKeyID and S3SecretAccessKey authenticate against the
	// object store.
	S3AccessKeyID     string `json:"-"`
	S3SecretAccessKey string `json:"-"`
	// S3Endpoint is the object-store endpoint. For R2 it is derived from
	// R2_ACCOUNT_ID when not set explicitly.
	S3Endpoint string `json:"s3_endpoint"`
	// S3Region is the bucket region ("auto" for R2).
	S3Region string `json:"s3_region"`
	// S3Bucket is the bucket holding audio artifacts.
	S3Bucket string `json:"s3_bucket"`
	// PublicHost serves stored artifacts publicly.
	PublicHost string `json:"public_host"`

	// YtdlpPath is the path to the yt-dlp executable (default: "yt-dlp").
	YtdlpPath string `json:"ytdlp_path"`
	// CookiesFile is an optional cookies file passed to yt-dlp.
	CookiesFile string `json:"cookies_file"`
	// FetchTimeout bounds a single media fetch.
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// WorkDir is the root for per-playlist scratch directories.
	WorkDir string `json:"work_dir"`
	// CheckpointPath is the file holding the last-processed-item cursor.
	CheckpointPath string `json:"checkpoint_path"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		MongoDatabase:  "musicsync",
		S3Region:       defaultRegion,
		S3Bucket:       defaultBucket,
		PublicHost:     defaultPublicHost,
		YtdlpPath:      "yt-dlp",
		FetchTimeout:   defaultFetchTimeout,
		WorkDir:        defaultWorkDir,
		CheckpointPath: defaultCheckpointPath,
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from musicsync.json in current
// directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"musicsync.json",
		filepath.Join(os.Getenv("HOME"), ".config", "musicsync", "musicsync.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables. Credential
// variables keep their provider-conventional names; everything else is
// prefixed MUSICSYNC_.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("MUSICSYNC_CHANNEL_ID"); v != "" {
		c.ChannelID = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.GoogleAPIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.MongoURI = v
	}
	if v := os.Getenv("MUSICSYNC_MONGO_DATABASE"); v != "" {
		c.MongoDatabase = v
	}
	if v := os.Getenv("R2_ACCESS_KEY_ID"); v != "" {
		c.S3AccessKeyID = v
	}
	if v := os.Getenv("R2_SECRET_ACCESS_KEY"); v != "" {
		c.S3SecretAccessKey = v
	}
	if v := os.Getenv("MUSICSYNC_S3_ENDPOINT"); v != "" {
		c.S3Endpoint = v
	} else if v := os.Getenv("R2_ACCOUNT_ID"); v != "" && c.S3Endpoint == "" {
		c.S3Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", v)
	}
	if v := os.Getenv("MUSICSYNC_S3_REGION"); v != "" {
		c.S3Region = v
	}
	if v := os.Getenv("MUSICSYNC_S3_BUCKET"); v != "" {
		c.S3Bucket = v
	}
	if v := os.Getenv("MUSICSYNC_PUBLIC_HOST"); v != "" {
		c.PublicHost = v
	}
	if v := os.Getenv("YT_DLP_BINARY_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("COOKIES_FILE_PATH"); v != "" {
		c.CookiesFile = v
	}
	if v := os.Getenv("MUSICSYNC_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		}
	}
	if v := os.Getenv("MUSICSYNC_WORK_DIR"); v != "" {
		c.WorkDir = v
	}
	if v := os.Getenv("MUSICSYNC_CHECKPOINT_PATH"); v != "" {
		c.CheckpointPath = v
	}
}

// Validate checks that configuration values are present and consistent.
func (c *Config) Validate() error {
	if c.ChannelID == "" {
		return fmt.Errorf("channel_id required (set MUSICSYNC_CHANNEL_ID)")
	}
	if c.GoogleAPIKey == "" {
		return fmt.Errorf("api key required (set GOOGLE_API_KEY)")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("document-store uri required (set DATABASE_URL)")
	}
	if c.S3AccessKeyID == "" || c.S3SecretAccessKey == "" {
		return fmt.Errorf("object-store credentials required (set R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY)")
	}
	if c.S3Endpoint == "" {
		return fmt.Errorf("object-store endpoint required (set MUSICSYNC_S3_ENDPOINT or R2_ACCOUNT_ID)")
	}
	if c.S3Bucket == "" {
		return fmt.Errorf("s3_bucket must not be empty")
	}
	if c.PublicHost == "" {
		return fmt.Errorf("public_host must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.WorkDir == "" {
		return fmt.Errorf("work_dir must not be empty")
	}
	if c.CheckpointPath == "" {
		return fmt.Errorf("checkpoint_path must not be empty")
	}
	return nil
}
