// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateFenix(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateDirectory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFenix() error {
	if c.Fenix.BaseURL == "" {
		return fmt.Errorf("FENIX_BASE_URL is required")
	}
	u, err := url.Parse(c.Fenix.BaseURL)
	if err != nil {
		return fmt.Errorf("FENIX_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("FENIX_BASE_URL must use http or https, got %q", u.Scheme)
	}
	if c.Fenix.Timeout <= 0 {
		return fmt.Errorf("FENIX_TIMEOUT must be positive, got %s", c.Fenix.Timeout)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.RebuildSchedule == "" {
		return fmt.Errorf("CACHE_REBUILD_SCHEDULE is required")
	}
	if _, err := cron.ParseStandard(c.Cache.RebuildSchedule); err != nil {
		return fmt.Errorf("CACHE_REBUILD_SCHEDULE %q is not a valid cron expression: %w", c.Cache.RebuildSchedule, err)
	}
	return nil
}

// validateDirectory checks that every mistake entry has a matching
// correction under the id+"c" key, so a rebuild never looks up a
// replacement value that does not exist.
func (c *Config) validateDirectory() error {
	for id, field := range c.Directory.Mistakes {
		if field == "" {
			return fmt.Errorf("directory.mistakes[%s] names an empty field", id)
		}
		if _, ok := c.Directory.Corrections[id+"c"]; !ok {
			return fmt.Errorf("directory.mistakes[%s] has no matching correction under key %q", id, id+"c")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
