package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Channel ChannelConfig `mapstructure:"channel"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Reveal  RevealConfig  `mapstructure:"reveal"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the REST collaborator location. It is read once at startup.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 = no transport deadline
	UserAgent string        `mapstructure:"user_agent"`
}

// ChannelConfig holds the external navigation targets
type ChannelConfig struct {
	TelegramURL  string `mapstructure:"telegram_url"`
	InstagramURL string `mapstructure:"instagram_url"`
	Referrer     string `mapstructure:"referrer"`     // Reported with every Telegram click
	OpenCommand  string `mapstructure:"open_command"` // Empty for the system default handler
}

// CatalogConfig controls how the product collection is split
type CatalogConfig struct {
	PriorityCategories []string `mapstructure:"priority_categories"`
	PriorityLabel      string   `mapstructure:"priority_label"`
}

// RevealConfig controls scroll-driven section reveals
type RevealConfig struct {
	Threshold float64 `mapstructure:"threshold"` // Visible fraction of a section needed to reveal it
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8001",
		},
		Channel: ChannelConfig{
			TelegramURL:  "https://t.me/thunderxservices",
			InstagramURL: "https://instagram.com/thunderxservices",
			Referrer:     "terminal",
		},
		Catalog: CatalogConfig{
			PriorityCategories: []string{"watches", "relojes"},
			PriorityLabel:      "WATCHES",
		},
		Reveal: RevealConfig{
			Threshold: 0.1,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "thunder", "thunder.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "thunder", "thunder.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "thunder")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "thunder")
	}
}

// setDefaults registers every key with viper so THUNDER_* environment
// variables can override values that are absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("channel.telegram_url", cfg.Channel.TelegramURL)
	v.SetDefault("channel.instagram_url", cfg.Channel.InstagramURL)
	v.SetDefault("channel.referrer", cfg.Channel.Referrer)
	v.SetDefault("channel.open_command", cfg.Channel.OpenCommand)

	v.SetDefault("catalog.priority_categories", cfg.Catalog.PriorityCategories)
	v.SetDefault("catalog.priority_label", cfg.Catalog.PriorityLabel)

	v.SetDefault("reveal.threshold", cfg.Reveal.Threshold)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment. An empty
// configFile searches ~/.config/thunder and the working directory.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix("THUNDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the page cannot work without
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if c.Channel.TelegramURL == "" {
		return errors.New("channel.telegram_url is required")
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("reveal.threshold must be in (0, 1], got %v", c.Reveal.Threshold)
	}
	return nil
}
