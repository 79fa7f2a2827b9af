// Package config handles the converter's persistent settings. The config
// file is optional; defaults apply when it is absent, and environment
// variables override whatever was loaded.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the batch conversion settings.
type Config struct {
	// Extensions are the file extensions (without the dot) picked up when
	// converting directories.
	Extensions []string `yaml:"extensions"`

	// Recursive descends into subdirectories.
	Recursive bool `yaml:"recursive"`

	// Old enables the legacy rendering mode for pre-0.10 style help pages.
	Old bool `yaml:"old"`

	// DebugOutput writes the structural node dump instead of HTML.
	DebugOutput bool `yaml:"debug_output"`

	// Jobs bounds concurrent conversions; 0 means one per available CPU.
	Jobs int `yaml:"jobs"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{"txt"},
	}
}

// Load reads a config file, fills defaults for unset fields, and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if len(cfg.Extensions) == 0 {
			cfg.Extensions = DefaultConfig().Extensions
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from VIMDOC2HTML_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("VIMDOC2HTML_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v)
	}
	if v := os.Getenv("VIMDOC2HTML_RECURSIVE"); v != "" {
		c.Recursive = parseBool(v, c.Recursive)
	}
	if v := os.Getenv("VIMDOC2HTML_OLD"); v != "" {
		c.Old = parseBool(v, c.Old)
	}
	if v := os.Getenv("VIMDOC2HTML_DEBUG_OUTPUT"); v != "" {
		c.DebugOutput = parseBool(v, c.DebugOutput)
	}
	if v := os.Getenv("VIMDOC2HTML_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Jobs = n
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimPrefix(part, "."))
		}
	}
	return out
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
