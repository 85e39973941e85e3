package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // Asia/Seoul must resolve on hosts without zoneinfo.

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override passbook.yaml.
const (
	EnvURL     = "PASSBOOK_URL"
	EnvTimeout = "PASSBOOK_TIMEOUT"
	EnvRetries = "PASSBOOK_RETRIES"
)

// Config represents the top-level passbook.yaml configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
}

// ServiceConfig points at the spreadsheet-backed ledger web app.
type ServiceConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
	Retries int      `yaml:"retries"`
}

// LogConfig controls the local activity log.
type LogConfig struct {
	Dir string `yaml:"dir"`
}

// DisplayConfig controls terminal rendering.
type DisplayConfig struct {
	MemoWidth int    `yaml:"memo_width"`
	Timezone  string `yaml:"timezone"` // IANA name, e.g. "Asia/Seoul"
}

// Duration is a time.Duration that reads and writes as "10s" in YAML.
type Duration time.Duration

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Load reads a passbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default(url string) *Config {
	return &Config{
		Service: ServiceConfig{
			URL:     url,
			Timeout: Duration(10 * time.Second),
			Retries: 1,
		},
		Log: LogConfig{
			Dir: "logs",
		},
		Display: DisplayConfig{
			MemoWidth: 24,
			Timezone:  "Asia/Seoul",
		},
	}
}

// LoadOrDefault loads path, or returns the defaults when it does not exist.
// The display timezone is checked either way.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default("")
	} else if err != nil {
		return nil, err
	}
	if err := ValidateTimezone(cfg.Display.Timezone); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateTimezone checks that name is a loadable IANA zone. Empty means UTC.
func ValidateTimezone(name string) error {
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("display.timezone %q: %w", name, err)
	}
	return nil
}

// Resolve loads path (if present), then .env (if present), then applies
// environment overrides. A missing config file is fine as long as the
// service URL ends up set.
func Resolve(path string) (*Config, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if cfg.Service.URL == "" {
		return nil, fmt.Errorf("service url not set: add service.url to %s or set %s", path, EnvURL)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment lookups.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvURL); v != "" {
		c.Service.URL = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		c.Service.Timeout = Duration(d)
	}
	if v := getenv(EnvRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("parsing %s: invalid retry count %q", EnvRetries, v)
		}
		c.Service.Retries = n
	}
	return nil
}

// Location returns the display timezone. LoadOrDefault has already rejected
// unknown zones, so the UTC fallback only covers hand-built configs.
func (c *Config) Location() *time.Location {
	if c.Display.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
