package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	StrapiURL         string        `mapstructure:"strapi_url"`
	StrapiToken       string        `mapstructure:"strapi_token" json:"-"`
	CMSTimeoutSeconds int64         `mapstructure:"cms_timeout_seconds"`
	CMSTimeout        time.Duration `mapstructure:"-"`

	PublishersFile      string        `mapstructure:"publishers_file"`
	SyncIntervalSeconds int64         `mapstructure:"sync_interval"`
	SyncInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	ExportDir    string `mapstructure:"export_dir"`
	ExportFormat string `mapstructure:"export_format"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-content")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("strapi_url", strapi.DefaultBaseURL)
	v.SetDefault("strapi_token", "")
	v.SetDefault("cms_timeout_seconds", 0) // 0 disables the client timeout
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("sync_interval", 300) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/sync.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("export_dir", "./content/posts")
	v.SetDefault("export_format", "yaml")

	// The frontend build historically exported VITE_-prefixed names; accept both.
	_ = v.BindEnv("strapi_url", "STRAPI_URL", "VITE_STRAPI_URL")
	_ = v.BindEnv("strapi_token", "STRAPI_TOKEN", "VITE_STRAPI_TOKEN")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StrapiURL = strings.TrimRight(strings.TrimSpace(cfg.StrapiURL), "/")
	if cfg.StrapiURL == "" {
		return nil, fmt.Errorf("invalid strapi_url (must not be empty)")
	}
	cfg.StrapiToken = strings.TrimSpace(cfg.StrapiToken)

	if cfg.CMSTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid cms_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.CMSTimeout = time.Duration(cfg.CMSTimeoutSeconds) * time.Second

	if cfg.SyncIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid sync_interval (must be positive seconds)")
	}
	cfg.SyncInterval = time.Duration(cfg.SyncIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))

	return &cfg, nil
}

// Strapi returns the CMS client settings derived from the loaded configuration.
func (c *Config) Strapi() strapi.Config {
	if c == nil {
		return strapi.Config{BaseURL: strapi.DefaultBaseURL}
	}
	return strapi.Config{
		BaseURL: c.StrapiURL,
		Token:   c.StrapiToken,
		Timeout: c.CMSTimeout,
	}
}
