package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dshills/rebind/internal/config/loader"
)

const (
	appName = "rebind"

	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "REBIND_"
)

// Config is the complete runtime configuration.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Keymap  KeymapConfig  `koanf:"keymap"`
	Journal JournalConfig `koanf:"journal"`
	Script  ScriptConfig  `koanf:"script"`
	Debug   DebugConfig   `koanf:"debug"`
	Frame   FrameConfig   `koanf:"frame"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn or error
	File  string `koanf:"file"`  // empty logs to stderr
}

// KeymapConfig locates the saved keymap.
type KeymapConfig struct {
	Path  string `koanf:"path"`
	Watch bool   `koanf:"watch"` // reload when the file changes on disk
}

// JournalConfig controls the binding change history.
type JournalConfig struct {
	Path    string `koanf:"path"`
	Enabled bool   `koanf:"enabled"`
}

// ScriptConfig locates the Lua hook script. An empty or missing file
// disables scripting.
type ScriptConfig struct {
	Path string `koanf:"path"`
}

// DebugConfig lists the player slots that request debug mode at startup.
type DebugConfig struct {
	Players []int `koanf:"players"`
}

// FrameConfig controls the main loop.
type FrameConfig struct {
	Rate int `koanf:"rate"` // frames per second
}

// Default returns the built-in configuration. Paths follow the XDG base
// directory layout.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Keymap: KeymapConfig{
			Path:  filepath.Join(xdg.ConfigHome, appName, "keymap.toml"),
			Watch: true,
		},
		Journal: JournalConfig{
			Path:    filepath.Join(xdg.DataHome, appName, "journal.db"),
			Enabled: true,
		},
		Script: ScriptConfig{
			Path: filepath.Join(xdg.ConfigHome, appName, "hooks.lua"),
		},
		Frame: FrameConfig{Rate: 60},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Load reads the configuration file at path over the defaults and applies
// REBIND_* environment overrides. A missing file is not an error; an empty
// path uses DefaultPath.
func Load(path string) (*Config, error) {
	cfg, _, err := load(path, loader.NewEnvProvider(EnvPrefix))
	return cfg, err
}

// load is Load with an injectable environment. It also returns the koanf
// instance so reloads can diff the flattened keys.
func load(path string, env *loader.EnvProvider) (*Config, *koanf.Koanf, error) {
	if path == "" {
		path = DefaultPath()
	}

	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, nil, &ParseError{Path: path, Err: err}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("config %s: %w", path, err)
	}

	if env != nil {
		if err := k.Load(env, nil); err != nil {
			return nil, nil, fmt.Errorf("config environment: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}

	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Keymap.Path = expandPath(cfg.Keymap.Path)
	cfg.Journal.Path = expandPath(cfg.Journal.Path)
	cfg.Script.Path = expandPath(cfg.Script.Path)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, k, nil
}

// Validate checks value ranges. It returns the first problem found.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	if c.Keymap.Path == "" {
		return &ValidationError{Path: "keymap.path", Message: "must not be empty", Value: c.Keymap.Path}
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return &ValidationError{Path: "journal.path", Message: "required when the journal is enabled", Value: c.Journal.Path}
	}
	if c.Frame.Rate < 1 || c.Frame.Rate > 1000 {
		return &ValidationError{Path: "frame.rate", Message: "must be between 1 and 1000", Value: c.Frame.Rate}
	}
	for _, p := range c.Debug.Players {
		if p < 0 || p >= MaxPlayers {
			return &ValidationError{Path: "debug.players", Message: fmt.Sprintf("player must be between 0 and %d", MaxPlayers-1), Value: p}
		}
	}
	return nil
}

// MaxPlayers bounds debug.players. It matches the dispatcher's player slots.
const MaxPlayers = 11

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
