// Package config reads process settings from the environment. It has no
// dependency on the logger so the logger can be configured from it.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g. "LOG_")
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// Get returns the trimmed env var or the default if empty
func (c Conf) Get(key, def string) string {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	if v == "" {
		return def
	}
	return v
}

// GetBool parses a bool-like env ("1|true|yes") with default fallback
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(c.key(key))))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

// GetInt parses a non-negative integer; anything else gives the default
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(c.key(key))))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Design holds the PGDESIGN_ settings that override girder file criteria
type Design struct {
	MaxRestarts int    // 0 keeps the girder file value
	OutDir      string // run store directory
	LogLevel    string
}

// DesignFromEnv reads the PGDESIGN_ settings
func DesignFromEnv() Design {
	c := New().Prefix("PGDESIGN_")
	return Design{
		MaxRestarts: c.GetInt("MAX_RESTARTS", 0),
		OutDir:      c.Get("OUT_DIR", "runs"),
		LogLevel:    c.Get("LOG_LEVEL", ""),
	}
}
