package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
)

// Config represents the complete aptlite configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Output  OutputConfig  `toml:"output"`
	Window  WindowConfig  `toml:"window"`
	APT     APTConfig     `toml:"apt"`
}

// GeneralConfig contains general aptlite settings.
type GeneralConfig struct {
	// AutoConfirm skips confirmation prompts when true (like -y flag).
	AutoConfirm bool `toml:"auto_confirm"`

	// DryRun shows what would happen without executing when true.
	DryRun bool `toml:"dry_run"`

	// UseSudo prefixes mutating apt commands with sudo when not running as root.
	UseSudo bool `toml:"use_sudo"`

	// History records every install/remove/update/upgrade in the history database.
	History bool `toml:"history"`

	// HistoryDays drops history entries older than this many days each time
	// the history is opened. Zero keeps everything.
	HistoryDays int `toml:"history_days"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables detailed output.
	Verbose bool `toml:"verbose"`
}

// WindowConfig holds the layout defaults of the interactive window.
// Width and Height are only used until the terminal reports its real size.
type WindowConfig struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	ListRatio float64 `toml:"list_ratio"`
}

// APTConfig selects the binaries apt operations are delegated to.
type APTConfig struct {
	// QueryBinary runs "search" and "show".
	QueryBinary string `toml:"query_binary"`

	// ActionBinary runs install, remove, update and upgrade.
	ActionBinary string `toml:"action_binary"`

	// UseNala uses nala instead of apt for actions if available.
	UseNala bool `toml:"use_nala"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			AutoConfirm: false,
			DryRun:      false,
			UseSudo:     true,
			History:     true,
			HistoryDays: 90,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Window: WindowConfig{
			Width:     100,
			Height:    30,
			ListRatio: 0.44, // 350 of 800
		},
		APT: APTConfig{
			QueryBinary:  "apt-cache",
			ActionBinary: "apt",
		},
	}
}

// Load loads the configuration from the default path.
// If the config file doesn't exist, it returns the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path. The file is replaced
// atomically while holding path+".lock", so concurrent saves never interleave
// and readers never see a partial file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := toml.NewEncoder(tmp).Encode(c); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise break the layout or the
// command lines built from them.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.ListRatio <= 0 || c.Window.ListRatio >= 1 {
		return fmt.Errorf("%w: window.list_ratio must be between 0 and 1, got %v", ErrInvalid, c.Window.ListRatio)
	}
	if c.General.HistoryDays < 0 {
		return fmt.Errorf("%w: general.history_days must not be negative, got %d", ErrInvalid, c.General.HistoryDays)
	}
	if c.APT.QueryBinary == "" {
		return fmt.Errorf("%w: apt.query_binary is empty", ErrInvalid)
	}
	if c.APT.ActionBinary == "" {
		return fmt.Errorf("%w: apt.action_binary is empty", ErrInvalid)
	}
	return nil
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
