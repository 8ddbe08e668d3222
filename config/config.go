package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"globalaccel/keys"
	"globalaccel/log"
)

const (
	ConfigFileName  = "config.toml"
	ActionsFileName = "actions.toml"
	LocalFileName   = "shortcuts.toml"
	GlobalFileName  = "globals.toml"
	LockFileName    = "shortcuts.lock"
	BlockFileName   = "blocked"
)

// Backend names accepted in the config file.
const (
	BackendHotkey = "hotkey"
	BackendNone   = "none"
)

// DefaultGroup is the store group shortcuts are saved under.
const DefaultGroup = "Global Shortcuts"

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	return log.GetConfigDir()
}

// Config is the daemon and CLI configuration, read from config.toml.
type Config struct {
	// Group is the store group bindings are read from and written to.
	Group string `toml:"group"`
	// Backend selects how keys are grabbed: "hotkey" or "none".
	Backend string `toml:"backend"`
	// ChordTimeoutMs abandons a partly typed chord after this long.
	ChordTimeoutMs int `toml:"chord_timeout_ms"`
	// WatchConfig reloads shortcuts when the files change on disk.
	WatchConfig      bool `toml:"watch_config"`
	ReloadDebounceMs int  `toml:"reload_debounce_ms"`
	// MetaKey is "auto", "yes" or "no".
	MetaKey string `toml:"meta_key"`
	// KeypadVariants also grabs keypad copies of digits and operators.
	KeypadVariants bool `toml:"keypad_variants"`
	// Locale is used for user-facing key names, e.g. "de".
	Locale string `toml:"locale"`

	Log LogSettings `toml:"log"`
}

type LogSettings struct {
	Enabled  bool   `toml:"enabled"`
	Dir      string `toml:"dir"`
	MaxSize  int    `toml:"max_size_mb"`
	MaxFiles int    `toml:"max_files"`
	MaxAge   int    `toml:"max_age_days"`
	Compress bool   `toml:"compress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	lc := log.DefaultLogConfig()
	return &Config{
		Group:            DefaultGroup,
		Backend:          BackendHotkey,
		ChordTimeoutMs:   1500,
		WatchConfig:      true,
		ReloadDebounceMs: 200,
		MetaKey:          "auto",
		Locale:           "en",
		Log: LogSettings{
			Enabled:  lc.LogsEnabled,
			MaxSize:  lc.LogMaxSize,
			MaxFiles: lc.LogMaxFiles,
			MaxAge:   lc.LogMaxAge,
			Compress: lc.LogCompress,
		},
	}
}

// LoadConfig reads config.toml from the config directory. A missing file
// yields the defaults.
func LoadConfig() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(filepath.Join(dir, ConfigFileName))
}

// LoadConfigFrom reads the configuration at path over the defaults.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to config.toml in the config directory.
func SaveConfig(cfg *Config) error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644)
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendHotkey, BackendNone:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch strings.ToLower(c.MetaKey) {
	case "", "auto", "yes", "no":
	default:
		return fmt.Errorf("meta_key must be auto, yes or no, got %q", c.MetaKey)
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
		}
	}
	if c.ChordTimeoutMs < 0 || c.ReloadDebounceMs < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

func (c *Config) ChordTimeout() time.Duration {
	return time.Duration(c.ChordTimeoutMs) * time.Millisecond
}

func (c *Config) ReloadDebounce() time.Duration {
	return time.Duration(c.ReloadDebounceMs) * time.Millisecond
}

// MetaProbe returns the function the registry uses to pick default
// shortcuts. detect is consulted only in "auto" mode.
func (c *Config) MetaProbe(detect func() bool) func() bool {
	switch strings.ToLower(c.MetaKey) {
	case "yes":
		return func() bool { return true }
	case "no":
		return func() bool { return false }
	}
	if detect == nil {
		return func() bool { return true }
	}
	return detect
}

// Expander returns the layout table for alternate key encodings.
func (c *Config) Expander() keys.Expander {
	if c.KeypadVariants {
		return keys.USKeypad
	}
	return keys.NoExpansion
}

// Namer returns the key namer for the configured locale.
func (c *Config) Namer() keys.Namer {
	tag, err := language.Parse(c.Locale)
	if err != nil || c.Locale == "" {
		return keys.Internal
	}
	return keys.NewLocalNamer(tag)
}

// LogConfig converts the log section for the log package.
func (c *Config) LogConfig() *log.LogConfig {
	return &log.LogConfig{
		LogsEnabled: c.Log.Enabled,
		LogsDir:     c.Log.Dir,
		LogMaxSize:  c.Log.MaxSize,
		LogMaxFiles: c.Log.MaxFiles,
		LogMaxAge:   c.Log.MaxAge,
		LogCompress: c.Log.Compress,
	}
}
