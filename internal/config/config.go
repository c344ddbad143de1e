package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ruminaider/rosterpick/internal/paths"
	"github.com/ruminaider/rosterpick/internal/transfer"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// ROSTERPICK_STORE_BACKEND.
const EnvPrefix = "ROSTERPICK"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents ~/.rosterpick/config.yaml.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Match   MatchConfig   `yaml:"match" mapstructure:"match"`
	User    UserConfig    `yaml:"user" mapstructure:"user"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig selects where committed selections live.
type StoreConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path,omitempty" mapstructure:"path"`
}

// CatalogConfig points at a JSONC catalog. Empty means the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty" mapstructure:"path"`
}

// MatchConfig picks the search matcher.
type MatchConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// UserConfig identifies the acting user. Its record is pinned in the users
// variant.
type UserConfig struct {
	ID   string `yaml:"id" mapstructure:"id"`
	Name string `yaml:"name,omitempty" mapstructure:"name"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file,omitempty" mapstructure:"file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	user := os.Getenv("USER")
	if user == "" {
		user = "me"
	}
	return Config{
		Store: StoreConfig{Backend: "yaml"},
		Match: MatchConfig{Mode: transfer.MatchSubstring},
		User:  UserConfig{ID: user},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads the config file at path (or ~/.rosterpick/config.yaml, or
// $ROSTERPICK_CONFIG) and applies ROSTERPICK_* environment overrides. A
// missing file is not an error.
func Load(path string) (Config, error) {
	def := Default()
	v := viper.New()
	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("store.path", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("match.mode", def.Match.Mode)
	v.SetDefault("user.id", def.User.ID)
	v.SetDefault("user.name", "")
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", "")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = paths.ConfigFile()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = paths.SelectionsFile(cfg.Store.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("%w: store.backend %q (want yaml or sqlite)", ErrInvalid, c.Store.Backend)
	}
	if _, err := transfer.MatcherFor(c.Match.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if strings.TrimSpace(c.User.ID) == "" {
		return fmt.Errorf("%w: user.id is required", ErrInvalid)
	}
	return nil
}

// Parse parses config.yaml bytes into a Config without defaults or env.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
