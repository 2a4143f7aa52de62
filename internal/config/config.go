// Package config loads clanker-input settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory under the user config dir holding config.yaml.
	AppDir = "clanker-input"
	// FileName is the default config file name.
	FileName = "config.yaml"
)

// Environment variables.
const (
	EnvConfig        = "CLANKER_INPUT_CONFIG"
	EnvTimeout       = "CLANKER_INPUT_TIMEOUT"
	EnvLogLevel      = "CLANKER_INPUT_LOG_LEVEL"
	EnvLogMode       = "CLANKER_INPUT_LOG_MODE"
	EnvTerminalStyle = "CLANKER_INPUT_TERMINAL_STYLE"
	EnvMechanisms    = "CLANKER_INPUT_MECHANISMS"
)

// Config is the resolved configuration.
type Config struct {
	// Title replaces "Input Required" as the default dialog title.
	Title   string        `yaml:"title"`
	Timeout time.Duration `yaml:"timeout"`
	// Mechanisms overrides the mechanism order per platform family
	// (darwin, windows, linux).
	Mechanisms map[string][]string `yaml:"mechanisms"`
	Terminal   TerminalConfig      `yaml:"terminal"`
	Log        LogConfig           `yaml:"log"`

	// Override comes from CLANKER_INPUT_MECHANISMS and applies to every
	// platform.
	Override []string `yaml:"-"`
	// Path is the file the config was read from, empty when none.
	Path string `yaml:"-"`
}

type TerminalConfig struct {
	Style string `yaml:"style"` // line or form
}

type LogConfig struct {
	Level string `yaml:"level"`
	Mode  string `yaml:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Terminal: TerminalConfig{Style: "line"},
		Log:      LogConfig{Level: "warn", Mode: "development"},
	}
}

// Order returns the configured mechanism order for a platform family, or
// nil when the built-in order applies.
func (c Config) Order(platform string) []string {
	if len(c.Override) > 0 {
		return c.Override
	}
	return c.Mechanisms[platform]
}

// LoadDotEnv seeds the environment from .env files. Missing files are
// ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load resolves the configuration. explicit is the --config flag value; a
// file named there or in CLANKER_INPUT_CONFIG must exist, the default
// location is optional.
func Load(explicit string) (Config, error) {
	cfg := Default()

	path, required := resolvePath(explicit)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			cfg.Path = path
		case os.IsNotExist(err) && !required:
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later.
func (c Config) Validate() error {
	switch c.Terminal.Style {
	case "", "line", "form":
	default:
		return fmt.Errorf("terminal.style must be line or form, got %q", c.Terminal.Style)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	for platform := range c.Mechanisms {
		switch platform {
		case "darwin", "windows", "linux":
		default:
			return fmt.Errorf("mechanisms: unknown platform %q (expected darwin, windows or linux)", platform)
		}
	}
	return nil
}

func resolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, AppDir, FileName), false
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogMode)); v != "" {
		cfg.Log.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTerminalStyle)); v != "" {
		cfg.Terminal.Style = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMechanisms)); v != "" {
		cfg.Override = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Override = append(cfg.Override, strings.ToLower(name))
			}
		}
	}
	return nil
}

// ParseTimeout accepts a Go duration ("90s", "2m") or a bare number of
// seconds.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("timeout must not be negative, got %s", s)
		}
		return time.Duration(n * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", s)
	}
	return d, nil
}
