// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System settings and theme document store for texelfx.

package config

import (
	"sync"

	"github.com/framegrace/texelfx/internal/logging"
)

const (
	systemConfigName = "texelfx.yaml"
	legacyConfigName = "texelfx.json"
	themesDirName    = "themes"
)

// Config stores a document as YAML/JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	themes  map[string]Config
	loadErr error

	cfgLog = logging.For("config")
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (texelfx.yaml).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Theme returns the named theme document (themes/<name>.yaml). A theme missing
// from the user directory falls back to the embedded copy, then to an empty
// document.
func Theme(name string) Config {
	if name == "" {
		return nil
	}
	once.Do(initStore)

	mu.RLock()
	cfg := themes[name]
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if cfg, ok := themes[name]; ok {
		return cfg
	}

	loaded, err := loadThemeLocked(name)
	if err != nil {
		cfgLog.Warnf("Config: Failed to load theme %q: %v", name, err)
		if loaded == nil {
			loaded = make(Config)
		}
	}
	themes[name] = loaded
	return loaded
}

// Reload refreshes the system config and all cached themes.
func Reload() error {
	once.Do(initStore)

	mu.Lock()
	defer mu.Unlock()

	loadErr = loadSystemLocked()
	for name := range themes {
		loaded, err := loadThemeLocked(name)
		if err != nil {
			cfgLog.Warnf("Config: Failed to reload theme %q: %v", name, err)
			continue
		}
		themes[name] = loaded
	}
	return loadErr
}

// ReloadSystem refreshes the system config.
func ReloadSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	return loadErr
}

// ReloadTheme re-reads a single theme. The cached copy is kept on error.
func ReloadTheme(name string) error {
	if name == "" {
		return nil
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loaded, err := loadThemeLocked(name)
	if err != nil {
		return err
	}
	themes[name] = loaded
	return nil
}

// SaveSystem persists the current system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SaveTheme writes a theme document into the user theme directory.
func SaveTheme(name string) error {
	if name == "" {
		return nil
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	cfg := themes[name]
	if cfg == nil {
		cfg = defaultThemeConfig(name)
		if cfg == nil {
			cfg = make(Config)
		}
		themes[name] = cfg
	}
	path, err := themeConfigPath(name)
	if err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// SetSystem replaces the in-memory system config with the provided config.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
}

// SetTheme replaces the in-memory theme document.
func SetTheme(name string, cfg Config) {
	if name == "" {
		return
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	themes[name] = Clone(cfg)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	themes = make(map[string]Config)
	loadErr = loadSystemLocked()
}
