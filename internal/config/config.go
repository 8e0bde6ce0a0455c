// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

// Package config loads and validates spacesd configuration using Koanf v2
// with layered sources: built-in defaults, an optional YAML file, and
// environment variables (highest priority).
package config

import "time"

// Config is the root configuration for spacesd.
type Config struct {
	Fenix     FenixConfig     `koanf:"fenix"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Cache     CacheConfig     `koanf:"cache"`
	Directory DirectoryConfig `koanf:"directory"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// FenixConfig configures the upstream Fenix spaces API client.
type FenixConfig struct {
	// BaseURL is the upstream API root, e.g.
	// https://fenix.tecnico.ulisboa.pt/tecnico-api/v2
	BaseURL string `koanf:"base_url"`

	// Timeout applies to every upstream request. A timed-out request is
	// treated the same as a failed fetch.
	Timeout time.Duration `koanf:"timeout"`

	// BreakerEnabled wraps the client in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig configures rate limiting and CORS.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// CacheConfig configures the snapshot cache rebuild policy.
type CacheConfig struct {
	// RebuildSchedule is a standard 5-field cron expression.
	RebuildSchedule string `koanf:"rebuild_schedule"`

	// RebuildOnStart runs a synchronous rebuild before the HTTP server is
	// considered ready.
	RebuildOnStart bool `koanf:"rebuild_on_start"`
}

// DirectoryConfig carries the static enrichment tables. All four tables are
// loaded once at startup and treated as immutable afterwards.
type DirectoryConfig struct {
	// AlwaysOpen lists room names that are open around the clock.
	AlwaysOpen []string `koanf:"always_open"`

	// Mistakes maps a space ID to the name of the field that upstream gets
	// wrong for that space.
	Mistakes map[string]string `koanf:"mistakes"`

	// Corrections maps a space ID suffixed with "c" to the replacement
	// value for the field named in Mistakes. The id+"c" keying is a
	// convention inherited from the data set and kept as-is.
	Corrections map[string]string `koanf:"corrections"`

	// Maps maps a space ID to an external maps URL.
	Maps map[string]string `koanf:"maps"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Fenix: FenixConfig{
			BaseURL:        "https://fenix.tecnico.ulisboa.pt/tecnico-api/v2",
			Timeout:        30 * time.Second,
			BreakerEnabled: true,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    3000,
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   15 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Cache: CacheConfig{
			RebuildSchedule: "0 3 * * *",
			RebuildOnStart:  true,
		},
		Directory: DirectoryConfig{
			AlwaysOpen:  defaultAlwaysOpen(),
			Mistakes:    map[string]string{},
			Corrections: map[string]string{},
			Maps:        defaultMaps(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// defaultAlwaysOpen returns the built-in always-open room name set.
// 0.22 is the Aquario study room.
func defaultAlwaysOpen() []string {
	return []string{"V0.07", "V0.08", "V0.09", "0.22"}
}

// defaultMaps returns the built-in space-ID to maps-URL table for the
// Alameda and Taguspark campuses.
func defaultMaps() map[string]string {
	return map[string]string{
		"2448131361074": "https://maps.app.goo.gl/n8CAjDrN7j8dE7dz5", // Torre Sul
		"2448131371435": "https://maps.app.goo.gl/58LR99uX81t71VAP9", // Infantario
		"2448131361119": "https://maps.app.goo.gl/Pc7yeKtewEToSbH89", // Pavilhao de Matematica
		"2448131361139": "https://maps.app.goo.gl/2MUhP5npGdww6pzg7", // Pavilhao de Minas
		"2448131361150": "https://maps.app.goo.gl/FTZvhfrBJX5o8t8x8", // Pavilhao de Mecanica IV
		"2448131361133": "https://maps.app.goo.gl/zebkJ7qg14hJogLF7", // Pavilhao de Informatica I/III
		"2448131361091": "https://maps.app.goo.gl/rg5YeTN7uqMiZnSx5", // Torre Norte
		"2448131361042": "https://maps.app.goo.gl/k2QQ7wHyaEMRUhKB8", // Pavilhao de Civil
		"2448131361035": "https://maps.app.goo.gl/JYdksZcstV2y2Jfe7", // Complexo Interdisciplinar
		"2448131361173": "https://maps.app.goo.gl/ZXyMpNPBS6uA1DCq9", // Pavilhao de Informatica II
		"2448131361176": "https://maps.app.goo.gl/W5wu5gXd7rUu84Go7", // Pavilhao do Jardim Norte
		"2448131384238": "https://maps.app.goo.gl/U2o5AKMzW5NjD2Yx8", // Pavilhao da Associacao de Estudantes
		"2448131361165": "https://maps.app.goo.gl/bKchBK9GVAu8nNkP6", // Pavilhao de Mecanica I
		"2448131361069": "https://maps.app.goo.gl/U2o5AKMzW5NjD2Yx8", // Pavilhao de Acao Social
		"2448131361109": "https://maps.app.goo.gl/BUns83cSdfHBigb77", // Pavilhao de Quimica
		"2448131361175": "https://maps.app.goo.gl/amzRShaaqbKoQrNv9", // Pavilhao do Jardim Sul
		"2448131377838": "https://maps.app.goo.gl/6Gv1BcGxg5yZpZTP8", // Seccao de Folhas
		"2448131361161": "https://maps.app.goo.gl/TDzsTykXTShsbQfr7", // Pavilhao de Mecanica II
		"2448131361155": "https://maps.app.goo.gl/uo3CD8RdyJXvPvi3A", // Pavilhao de Mecanica III
		"2448131361060": "https://maps.app.goo.gl/rBbYrEanmP8z57Ds5", // Pavilhao Central
		"2448131361051": "https://maps.app.goo.gl/96KYCXD4rUb3UkkK9", // Pavilhao de Fisica
		"2448131361129": "https://maps.app.goo.gl/zebkJ7qg14hJogLF7", // Pavilhao de Informatica I/III
		"2448131361024": "https://maps.app.goo.gl/2KCsDLwk7fYrdyG8A", // Pavilhao de Eletricidade
		"2448131365084": "https://maps.app.goo.gl/ZarXwQKFJUDR7U5BA", // Edificio Principal
		"2448131360898": "https://maps.app.goo.gl/ZarXwQKFJUDR7U5BA", // Taguspark
		"2448131392438": "https://maps.app.goo.gl/pSdB8f14ZTyQQEED8", // Tecnologico e Nuclear
		"2448131360897": "https://maps.app.goo.gl/nvMs3gZ77vPPRUmz7", // Alameda
	}
}
