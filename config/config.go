// Package config provides YAML and TOML configuration parsing for the EOL
// tracker.
//
// This package enables running the tracker as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// Files ending in ".toml" are parsed as TOML; anything else is YAML.
//
// Example configuration:
//
//	title: EOL Tracker
//	port: 8080
//	poll_interval: 5m
//	fetch_timeout: 10s
//
//	entry:
//	  entry_id: ubuntu-2204
//	  input_device: https://endoflife.date/api/v1/products/ubuntu/releases/22.04
//	  mode: uri
//
//	notifications:
//	  persistent: true
//	  slack_webhook_url: ${SLACK_WEBHOOK_URL:-}
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// minPollInterval keeps file-configured trackers from hammering the API.
	minPollInterval = 10 * time.Second

	// minFetchTimeout is the smallest accepted fetch_timeout.
	minFetchTimeout = 1 * time.Second

	defaultPort         = 8080
	defaultPollInterval = 300 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

// Entry modes.
const (
	ModeURI  = "uri"
	ModeSlug = "slug"
)

// Config is the root configuration structure for the tracker.
//
// It maps directly to the configuration file structure.
// Use [Load], [Parse] or [ParseTOML] to create a Config.
type Config struct {
	// Title is the dashboard title. Defaults to "EOL Tracker" if not set.
	Title string `yaml:"title" toml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port" toml:"port"`

	// PollInterval is the time between refreshes. Defaults to 5m.
	PollInterval Duration `yaml:"poll_interval" toml:"poll_interval"`

	// FetchTimeout bounds a single fetch (release plus product).
	// Defaults to 10s.
	FetchTimeout Duration `yaml:"fetch_timeout" toml:"fetch_timeout"`

	// UserAgent overrides the User-Agent sent to the API.
	UserAgent string `yaml:"user_agent" toml:"user_agent"`

	// Entry is the release to track.
	Entry EntryConfig `yaml:"entry" toml:"entry"`

	// Notifications configures where failure notices go.
	Notifications NotificationsConfig `yaml:"notifications" toml:"notifications"`
}

// EntryConfig defines the tracked release.
type EntryConfig struct {
	// EntryID is the stable ID used in unique IDs. Derived from
	// InputDevice when empty.
	EntryID string `yaml:"entry_id" toml:"entry_id"`

	// InputDevice is the release identifier: a full release URI in uri
	// mode, or "product[/release]" in slug mode.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	InputDevice string `yaml:"input_device" toml:"input_device"`

	// Mode is "uri" (default) or "slug".
	Mode string `yaml:"mode" toml:"mode"`

	// BaseURL is the API root for slug mode.
	BaseURL string `yaml:"base_url" toml:"base_url"`
}

// NotificationsConfig configures failure notifications.
type NotificationsConfig struct {
	// Persistent keeps notices in memory for the dashboard. Defaults to true.
	Persistent *bool `yaml:"persistent" toml:"persistent"`

	// SlackWebhookURL posts notices to a Slack incoming webhook when set.
	SlackWebhookURL string `yaml:"slack_webhook_url" toml:"slack_webhook_url" masq:"secret"`
}

// PersistentEnabled reports whether persistent notifications are on.
func (n NotificationsConfig) PersistentEnabled() bool {
	return n.Persistent == nil || *n.Persistent
}

// Duration wraps time.Duration for YAML and TOML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML
// decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler so durations log as "5m0s".
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a configuration file. Files with a ".toml"
// extension are parsed as TOML, everything else as YAML.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in input_device, base_url and
// slack_webhook_url. Defaults are applied for Port (8080), PollInterval
// (5m), FetchTimeout (10s), Mode (uri) and persistent notifications (on).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&cfg)
}

// ParseTOML parses TOML configuration data with the same defaults and
// validation as [Parse].
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(defaultPollInterval)
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = Duration(defaultFetchTimeout)
	}
	if cfg.Entry.Mode == "" {
		cfg.Entry.Mode = ModeURI
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}
	if c.FetchTimeout.Duration() < minFetchTimeout {
		return fmt.Errorf("fetch_timeout must be at least %s, got %s", minFetchTimeout, c.FetchTimeout.Duration())
	}

	e := &c.Entry
	switch e.Mode {
	case ModeURI, ModeSlug:
	default:
		return fmt.Errorf("entry: mode must be %q or %q, got %q", ModeURI, ModeSlug, e.Mode)
	}

	expanded, err := expandEnvVars(e.InputDevice)
	if err != nil {
		return fmt.Errorf("entry: input_device: %w", err)
	}
	e.InputDevice = strings.TrimSpace(expanded)
	if e.InputDevice == "" {
		return fmt.Errorf("entry: input_device is required")
	}

	expanded, err = expandEnvVars(e.BaseURL)
	if err != nil {
		return fmt.Errorf("entry: base_url: %w", err)
	}
	e.BaseURL = expanded
	if e.BaseURL != "" {
		if e.Mode != ModeSlug {
			return fmt.Errorf("entry: base_url is only valid with mode %q", ModeSlug)
		}
		if err := validateHTTPURL(e.BaseURL); err != nil {
			return fmt.Errorf("entry: base_url: %w", err)
		}
	}

	n := &c.Notifications
	expanded, err = expandEnvVars(n.SlackWebhookURL)
	if err != nil {
		return fmt.Errorf("notifications: slack_webhook_url: %w", err)
	}
	n.SlackWebhookURL = expanded
	if n.SlackWebhookURL != "" {
		if err := validateHTTPURL(n.SlackWebhookURL); err != nil {
			return fmt.Errorf("notifications: slack_webhook_url: %w", err)
		}
	}

	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("url must have a scheme (http:// or https://)")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url must have a host")
	}
	return nil
}
