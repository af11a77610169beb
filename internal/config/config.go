// Package config provides reading and writing of entlog configuration.
// Supports both global (~/.entlog/config.yaml) and local (.entlog/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.entlog/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is catalog-specific config in .entlog/config.yaml
	ScopeLocal
)

// Author identifies who made a change in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Search holds search defaults.
type Search struct {
	DefaultLimit *int `yaml:"default_limit,omitempty"`
}

// Tags holds tag listing defaults.
type Tags struct {
	DefaultLimit *int `yaml:"default_limit,omitempty"`
}

// Limits holds entity size limits.
type Limits struct {
	MaxField *int `yaml:"max_field,omitempty"`
	MaxTags  *int `yaml:"max_tags,omitempty"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr       string   `yaml:"addr,omitempty"`
	Token      string   `yaml:"token,omitempty"`
	CORSOrigin string   `yaml:"cors_origin,omitempty"`
	RateLimit  *float64 `yaml:"rate_limit,omitempty"`
	Burst      *int     `yaml:"burst,omitempty"`
}

// Media holds upload and remote fetch settings.
type Media struct {
	Dir          string `yaml:"dir,omitempty"`
	MaxUpload    *int64 `yaml:"max_upload,omitempty"`
	FetchTimeout string `yaml:"fetch_timeout,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultSearchLimit  = 10
	DefaultTagLimit     = 100
	DefaultMaxField     = 4096
	DefaultMaxTags      = 256
	DefaultAddr         = ":8000"
	DefaultCORSOrigin   = "*"
	DefaultRateLimit    = 20.0
	DefaultBurst        = 40
	DefaultMediaDir     = ".entlog/media"
	DefaultMaxUpload    = 10 * 1024 * 1024 // 10 MiB
	DefaultFetchTimeout = 30 * time.Second
)

// Validation bounds for configuration values.
const (
	MaxDefaultLimit = 10000
	MaxMaxField     = 1024 * 1024 // 1 MiB per text field
	MaxMaxTags      = 10000
	MaxMaxUpload    = 1024 * 1024 * 1024 // 1 GiB
)

// Config contains configuration for entlog.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Tags   Tags   `yaml:"tags,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Server Server `yaml:"server,omitempty"`
	Media  Media  `yaml:"media,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	checks := []struct {
		key      string
		v        *int
		min, max int
	}{
		{"search.default_limit", c.Search.DefaultLimit, 1, MaxDefaultLimit},
		{"tags.default_limit", c.Tags.DefaultLimit, 1, MaxDefaultLimit},
		{"limits.max_field", c.Limits.MaxField, 1, MaxMaxField},
		{"limits.max_tags", c.Limits.MaxTags, 1, MaxMaxTags},
		{"server.burst", c.Server.Burst, 1, MaxDefaultLimit},
	}
	for _, ck := range checks {
		if ck.v != nil && (*ck.v < ck.min || *ck.v > ck.max) {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidValue, ck.key, ck.min, ck.max, *ck.v)
		}
	}
	if c.Server.RateLimit != nil && *c.Server.RateLimit <= 0 {
		return fmt.Errorf("%w: server.rate_limit must be positive, got %g", ErrInvalidValue, *c.Server.RateLimit)
	}
	if c.Media.MaxUpload != nil {
		if v := *c.Media.MaxUpload; v < 1 || v > MaxMaxUpload {
			return fmt.Errorf("%w: media.max_upload must be between 1 and %d, got %d",
				ErrInvalidValue, int64(MaxMaxUpload), v)
		}
	}
	if c.Media.FetchTimeout != "" {
		d, err := time.ParseDuration(c.Media.FetchTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: media.fetch_timeout must be a positive duration, got %q",
				ErrInvalidValue, c.Media.FetchTimeout)
		}
	}
	return nil
}

// SearchLimit returns the default search page size (defaults to 10).
func (c *Config) SearchLimit() int {
	return intOr(c.Search.DefaultLimit, DefaultSearchLimit)
}

// TagLimit returns the default tag listing page size (defaults to 100).
func (c *Config) TagLimit() int {
	return intOr(c.Tags.DefaultLimit, DefaultTagLimit)
}

// MaxField returns the maximum bytes per entity text field (defaults to 4096).
func (c *Config) MaxField() int {
	return intOr(c.Limits.MaxField, DefaultMaxField)
}

// MaxTags returns the maximum tags per entity (defaults to 256).
func (c *Config) MaxTags() int {
	return intOr(c.Limits.MaxTags, DefaultMaxTags)
}

// Addr returns the HTTP listen address (defaults to ":8000").
func (c *Config) Addr() string {
	return stringOr(c.Server.Addr, DefaultAddr)
}

// Token returns the API bearer token. Empty disables authentication.
func (c *Config) Token() string {
	return c.Server.Token
}

// CORSOrigin returns the allowed CORS origin (defaults to "*").
func (c *Config) CORSOrigin() string {
	return stringOr(c.Server.CORSOrigin, DefaultCORSOrigin)
}

// RateLimit returns the sustained request rate per second (defaults to 20).
func (c *Config) RateLimit() float64 {
	if c.Server.RateLimit == nil {
		return DefaultRateLimit
	}
	return *c.Server.RateLimit
}

// Burst returns the rate limiter bucket size (defaults to 40).
func (c *Config) Burst() int {
	return intOr(c.Server.Burst, DefaultBurst)
}

// MediaDir returns the directory uploaded and fetched media are stored in.
func (c *Config) MediaDir() string {
	return stringOr(c.Media.Dir, DefaultMediaDir)
}

// MaxUpload returns the maximum media size in bytes (defaults to 10 MiB).
func (c *Config) MaxUpload() int64 {
	if c.Media.MaxUpload == nil {
		return DefaultMaxUpload
	}
	return *c.Media.MaxUpload
}

// FetchTimeout returns the remote media fetch timeout (defaults to 30s).
// An unparsable value falls back to the default; Validate reports it.
func (c *Config) FetchTimeout() time.Duration {
	if c.Media.FetchTimeout == "" {
		return DefaultFetchTimeout
	}
	d, err := time.ParseDuration(c.Media.FetchTimeout)
	if err != nil || d <= 0 {
		return DefaultFetchTimeout
	}
	return d
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// LocalPath returns the path to the local (catalog) config file.
func LocalPath() string {
	return filepath.Join(".entlog", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.entlog/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".entlog", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.scope = scope
	return cfg, nil
}

// LoadFile reads configuration from an explicit path. A missing file yields
// an empty config bound to that path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path, creating
// parent directories as needed.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	// The file may hold the API token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
