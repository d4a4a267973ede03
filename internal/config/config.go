package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	Links    LinksConfig
	Auth     AuthConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// SessionConfig holds the persistent login store settings.
type SessionConfig struct {
	Path string
	TTL  time.Duration
}

// LinksConfig controls generated payment link URLs.
type LinksConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// AuthConfig holds credential rules.
type AuthConfig struct {
	PasswordLength int `mapstructure:"password_length"`
	BcryptCost     int `mapstructure:"bcrypt_cost"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Currency      string
	DateFormat    string        `mapstructure:"date_format"`
	Timezone      string
	SplashDelay   time.Duration `mapstructure:"splash_delay"`
	DefaultFilter string        `mapstructure:"default_filter"`
}

// LogConfig controls where the standard logger writes while the TUI owns the terminal.
type LogConfig struct {
	Path string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "pay")
}

// Path returns the config file location. PAY_CONFIG overrides the default.
func Path() string {
	if p := os.Getenv("PAY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "pay", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix PAY_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "pay.db"))
	v.SetDefault("session.path", filepath.Join(dataDir(), "sessions"))
	v.SetDefault("session.ttl", 30*24*time.Hour)
	v.SetDefault("links.base_url", "https://paylink.app")
	v.SetDefault("auth.password_length", 4)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("ui.currency", "KES")
	v.SetDefault("ui.date_format", "02 Jan 2006 15:04")
	v.SetDefault("ui.timezone", "Africa/Nairobi")
	v.SetDefault("ui.splash_delay", 1500*time.Millisecond)
	v.SetDefault("ui.default_filter", "all")
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("PAY_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pay"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine, defaults apply
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Auth.PasswordLength <= 0 {
		return Config{}, fmt.Errorf("auth.password_length must be positive, got %d", c.Auth.PasswordLength)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The TUI uses it to remember presentation preferences such as the home filter.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("session.path", cfg.Session.Path)
	v.Set("session.ttl", cfg.Session.TTL.String())
	v.Set("links.base_url", cfg.Links.BaseURL)
	v.Set("auth.password_length", cfg.Auth.PasswordLength)
	v.Set("auth.bcrypt_cost", cfg.Auth.BcryptCost)
	v.Set("ui.currency", cfg.UI.Currency)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.splash_delay", cfg.UI.SplashDelay.String())
	v.Set("ui.default_filter", cfg.UI.DefaultFilter)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
