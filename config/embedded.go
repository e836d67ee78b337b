// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from embedded YAML files.
// The embedded files in defaults/ are the single source of truth.

package config

import (
	"sync"

	"github.com/framegrace/texelfx/defaults"
)

var (
	embeddedSystemOnce sync.Once
	embeddedSystem     Config
	embeddedSystemErr  error

	embeddedThemes   = make(map[string]Config)
	embeddedThemesMu sync.RWMutex
)

// embeddedSystemDefaults returns the parsed system defaults.
// The result is cached after the first call.
func embeddedSystemDefaults() (Config, error) {
	embeddedSystemOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedSystemErr = err
			return
		}
		embeddedSystem, embeddedSystemErr = Decode(data, false)
	})
	return embeddedSystem, embeddedSystemErr
}

// embeddedThemeDefaults returns a parsed embedded theme, nil when there is
// none by that name.
func embeddedThemeDefaults(name string) (Config, error) {
	embeddedThemesMu.RLock()
	if cfg, ok := embeddedThemes[name]; ok {
		embeddedThemesMu.RUnlock()
		return cfg, nil
	}
	embeddedThemesMu.RUnlock()

	data, err := defaults.Theme(name)
	if err != nil {
		return nil, nil
	}
	cfg, err := Decode(data, false)
	if err != nil {
		return nil, err
	}

	embeddedThemesMu.Lock()
	embeddedThemes[name] = cfg
	embeddedThemesMu.Unlock()
	return cfg, nil
}

// defaultSystemConfig returns a copy of the embedded system defaults.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil || cfg == nil {
		if err != nil {
			cfgLog.Errorf("Config: Embedded system defaults unreadable: %v", err)
		}
		return nil
	}
	return Clone(cfg)
}

// defaultThemeConfig returns a copy of the embedded theme.
func defaultThemeConfig(name string) Config {
	cfg, err := embeddedThemeDefaults(name)
	if err != nil || cfg == nil {
		if err != nil {
			cfgLog.Errorf("Config: Embedded theme %q unreadable: %v", name, err)
		}
		return nil
	}
	return Clone(cfg)
}
