// config_keys.go provides string-keyed access to configuration settings.
//
// The CLI (`entlog config`) and the HTTP/MCP surfaces address settings by
// dotted keys such as "search.default_limit". Each key is one entry in the
// keys table below, pairing a getter that applies defaults with a setter that
// parses and bounds the raw string.
//
// Design: Optional numeric fields are pointers so "not set" (nil) differs from
// an explicit value; IsSet reports the former without consulting defaults.

package config

import (
	"fmt"
	"strconv"
	"time"
)

// KeyServerToken is the API bearer token setting. Surfaces that print
// configuration mask its value.
const KeyServerToken = "server.token"

// key describes one addressable setting.
type key struct {
	name  string
	get   func(c *Config) string
	set   func(c *Config, v string) error
	isSet func(c *Config) bool
}

// keys lists every setting in display order.
var keys = []key{
	{
		name:  "author.name",
		get:   func(c *Config) string { return c.Author.Name },
		set:   func(c *Config, v string) error { c.Author.Name = v; return nil },
		isSet: func(c *Config) bool { return c.Author.Name != "" },
	},
	{
		name:  "author.email",
		get:   func(c *Config) string { return c.Author.Email },
		set:   func(c *Config, v string) error { c.Author.Email = v; return nil },
		isSet: func(c *Config) bool { return c.Author.Email != "" },
	},
	intKey("search.default_limit", func(c *Config) **int { return &c.Search.DefaultLimit }, (*Config).SearchLimit, MaxDefaultLimit),
	intKey("tags.default_limit", func(c *Config) **int { return &c.Tags.DefaultLimit }, (*Config).TagLimit, MaxDefaultLimit),
	intKey("limits.max_field", func(c *Config) **int { return &c.Limits.MaxField }, (*Config).MaxField, MaxMaxField),
	intKey("limits.max_tags", func(c *Config) **int { return &c.Limits.MaxTags }, (*Config).MaxTags, MaxMaxTags),
	{
		name:  "server.addr",
		get:   (*Config).Addr,
		set:   func(c *Config, v string) error { c.Server.Addr = v; return nil },
		isSet: func(c *Config) bool { return c.Server.Addr != "" },
	},
	{
		name:  KeyServerToken,
		get:   (*Config).Token,
		set:   func(c *Config, v string) error { c.Server.Token = v; return nil },
		isSet: func(c *Config) bool { return c.Server.Token != "" },
	},
	{
		name:  "server.cors_origin",
		get:   (*Config).CORSOrigin,
		set:   func(c *Config, v string) error { c.Server.CORSOrigin = v; return nil },
		isSet: func(c *Config) bool { return c.Server.CORSOrigin != "" },
	},
	{
		name: "server.rate_limit",
		get:  func(c *Config) string { return strconv.FormatFloat(c.RateLimit(), 'g', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("%w: server.rate_limit must be a positive number", ErrInvalidValue)
			}
			c.Server.RateLimit = &f
			return nil
		},
		isSet: func(c *Config) bool { return c.Server.RateLimit != nil },
	},
	intKey("server.burst", func(c *Config) **int { return &c.Server.Burst }, (*Config).Burst, MaxDefaultLimit),
	{
		name:  "media.dir",
		get:   (*Config).MediaDir,
		set:   func(c *Config, v string) error { c.Media.Dir = v; return nil },
		isSet: func(c *Config) bool { return c.Media.Dir != "" },
	},
	{
		name: "media.max_upload",
		get:  func(c *Config) string { return strconv.FormatInt(c.MaxUpload(), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 || n > MaxMaxUpload {
				return fmt.Errorf("%w: media.max_upload must be between 1 and %d", ErrInvalidValue, int64(MaxMaxUpload))
			}
			c.Media.MaxUpload = &n
			return nil
		},
		isSet: func(c *Config) bool { return c.Media.MaxUpload != nil },
	},
	{
		name: "media.fetch_timeout",
		get:  func(c *Config) string { return c.FetchTimeout().String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("%w: media.fetch_timeout must be a positive duration such as 30s", ErrInvalidValue)
			}
			c.Media.FetchTimeout = v
			return nil
		},
		isSet: func(c *Config) bool { return c.Media.FetchTimeout != "" },
	},
}

// intKey builds a bounded positive integer setting.
func intKey(name string, field func(*Config) **int, value func(*Config) int, max int) key {
	return key{
		name: name,
		get:  func(c *Config) string { return strconv.Itoa(value(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > max {
				return fmt.Errorf("%w: %s must be an integer between 1 and %d", ErrInvalidValue, name, max)
			}
			*field(c) = &n
			return nil
		},
		isSet: func(c *Config) bool { return *field(c) != nil },
	}
}

func lookup(name string) (key, bool) {
	for _, k := range keys {
		if k.name == name {
			return k, true
		}
	}
	return key{}, false
}

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.name
	}
	return names
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(name string) bool {
	_, ok := lookup(name)
	return ok
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(name string) (string, error) {
	k, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	return k.get(c), nil
}

// Set sets the value of a configuration key.
func (c *Config) Set(name, value string) error {
	k, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	return k.set(c, value)
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k.name] = k.get(c)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(name string) bool {
	k, ok := lookup(name)
	return ok && k.isSet(c)
}
