package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arangotui/arangotui/internal/types"
)

const (
	DefaultEndpoint   = "http://localhost:8529"
	DefaultUsername   = "root"
	DefaultProfile    = "local"
	DefaultLogLevel   = "info"
	DefaultPageSize   = 10
	DefaultSampleSize = 10
	DefaultTimeoutSec = 30
)

// Config is the content of config.yaml
type Config struct {
	DefaultProfile string        `yaml:"default_profile"`
	Profiles       []Profile     `yaml:"profiles"`
	Logging        LoggingConfig `yaml:"logging"`
	History        HistoryConfig `yaml:"history"`
	Browser        BrowserConfig `yaml:"browser"`
}

// Profile is a named ArangoDB connection
type Profile struct {
	Name               string `yaml:"name"`
	Endpoint           string `yaml:"endpoint"`
	GAE                string `yaml:"gae,omitempty"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password,omitempty"`
	InsecureSkipVerify *bool  `yaml:"insecure_skip_verify,omitempty"`
	TimeoutSec         int    `yaml:"timeout_sec,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

type BrowserConfig struct {
	PageSize          int `yaml:"page_size"`
	DefaultSampleSize int `yaml:"default_sample_size"`
	// MessageTimeoutSec clears footer messages after this many seconds, 0 keeps them
	MessageTimeoutSec int `yaml:"message_timeout_sec,omitempty"`
}

// Overrides carries connection values given on the command line.
// Empty strings mean "not given"; Password uses PasswordSet because
// an empty password is a valid explicit value.
type Overrides struct {
	Endpoint    string
	GAE         string
	Username    string
	Password    string
	PasswordSet bool
}

// Default returns the configuration written on first start
func Default() *Config {
	return &Config{
		DefaultProfile: DefaultProfile,
		Profiles: []Profile{{
			Name:     DefaultProfile,
			Endpoint: DefaultEndpoint,
			Username: DefaultUsername,
		}},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		History: HistoryConfig{Enabled: true},
		Browser: BrowserConfig{
			PageSize:          DefaultPageSize,
			DefaultSampleSize: DefaultSampleSize,
		},
	}
}

// Load reads a config file; a missing file yields Default()
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	cfg.DefaultProfile = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.DefaultProfile == "" && len(cfg.Profiles) > 0 {
		cfg.DefaultProfile = cfg.Profiles[0].Name
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config as YAML. The file may contain passwords.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, SecretFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges and profile names
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("profile #%d has no name", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
		if p.TimeoutSec < 0 {
			return fmt.Errorf("profile %q: timeout_sec must not be negative", p.Name)
		}
	}

	if c.DefaultProfile != "" && len(c.Profiles) > 0 && !seen[c.DefaultProfile] {
		return fmt.Errorf("default_profile %q is not defined", c.DefaultProfile)
	}

	if c.Browser.PageSize < 0 {
		return fmt.Errorf("browser.page_size must not be negative")
	}
	if c.Browser.DefaultSampleSize < 0 {
		return fmt.Errorf("browser.default_sample_size must not be negative")
	}
	if c.Browser.MessageTimeoutSec < 0 {
		return fmt.Errorf("browser.message_timeout_sec must not be negative")
	}

	return nil
}

// Profile finds a profile by name
func (c *Config) Profile(name string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Resolve builds the connection: command-line overrides, then the selected
// profile (explicit name or default_profile), then built-in defaults.
func (c *Config) Resolve(profileName string, o Overrides) (types.Connection, error) {
	conn := types.Connection{
		Endpoint:           DefaultEndpoint,
		Username:           DefaultUsername,
		InsecureSkipVerify: true,
		TimeoutSec:         DefaultTimeoutSec,
	}

	name := profileName
	if name == "" {
		name = c.DefaultProfile
	}
	if name != "" {
		p, ok := c.Profile(name)
		if !ok && profileName != "" {
			return types.Connection{}, fmt.Errorf("profile %q not found", profileName)
		}
		if ok {
			applyProfile(&conn, p)
		}
	}

	if o.Endpoint != "" {
		conn.Endpoint = o.Endpoint
	}
	if o.GAE != "" {
		conn.GAEEndpoint = o.GAE
	}
	if o.Username != "" {
		conn.Username = o.Username
	}
	if o.PasswordSet {
		conn.Password = o.Password
	}

	conn.Endpoint = strings.TrimRight(conn.Endpoint, "/")
	conn.GAEEndpoint = strings.TrimRight(conn.GAEEndpoint, "/")
	return conn, nil
}

func applyProfile(conn *types.Connection, p Profile) {
	if p.Endpoint != "" {
		conn.Endpoint = p.Endpoint
	}
	if p.GAE != "" {
		conn.GAEEndpoint = p.GAE
	}
	if p.Username != "" {
		conn.Username = p.Username
	}
	conn.Password = p.Password
	if p.InsecureSkipVerify != nil {
		conn.InsecureSkipVerify = *p.InsecureSkipVerify
	}
	if p.TimeoutSec > 0 {
		conn.TimeoutSec = p.TimeoutSec
	}
}

// PageSize returns the configured page size or the default
func (c *Config) PageSize() int {
	if c.Browser.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.Browser.PageSize
}

// SampleSize returns the configured sample size or the default
func (c *Config) SampleSize() int {
	if c.Browser.DefaultSampleSize <= 0 {
		return DefaultSampleSize
	}
	return c.Browser.DefaultSampleSize
}

// MessageTimeout returns how long footer messages stay visible, 0 for forever
func (c *Config) MessageTimeout() time.Duration {
	return time.Duration(c.Browser.MessageTimeoutSec) * time.Second
}
