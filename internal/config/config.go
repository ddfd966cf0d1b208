package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Search  SearchConfig  `mapstructure:"search"`
	Images  ImagesConfig  `mapstructure:"images"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	// Keys rebinds actions, e.g. quit = ["ctrl+x"].
	Keys map[string][]string `mapstructure:"keys"`
}

// BackendConfig locates the chat/search/visualize service.
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	MaxResults int `mapstructure:"max_results"`
}

// ImagesConfig controls where downloaded visualizations are written.
type ImagesConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	StartRoute   string `mapstructure:"start_route"`
	DiscardStale bool   `mapstructure:"discard_stale"`
}

// Load reads configuration from a .env file, the config file and env.
// Env var overrides use prefix ARXIVCS_.
func Load() (Config, error) {
	// .env is optional; real env vars win over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ARXIVCS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "arxivcs"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARXIVCS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that is missing or broken is an error; a missing
		// default file is not
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("search.max_results", 10)
	v.SetDefault("images.dir", filepath.Join(home, "Pictures", "arxivcs"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "arxivcs", "arxivcs.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.start_route", "/")
	v.SetDefault("ui.discard_stale", false)
}

// Validate rejects values the client cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return fmt.Errorf("config: backend.base_url is empty")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("config: backend.timeout must not be negative")
	}
	if c.Search.MaxResults < 1 || c.Search.MaxResults > 100 {
		return fmt.Errorf("config: search.max_results must be between 1 and 100, got %d", c.Search.MaxResults)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("ARXIVCS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "arxivcs", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("search.max_results", cfg.Search.MaxResults)
	v.Set("images.dir", cfg.Images.Dir)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.start_route", cfg.UI.StartRoute)
	v.Set("ui.discard_stale", cfg.UI.DiscardStale)
	if len(cfg.Keys) > 0 {
		v.Set("keys", cfg.Keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
