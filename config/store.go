// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load, reload, and migration logic for config store.

package config

import "fmt"

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		cfgLog.Errorf("Config: Failed to resolve system config path: %v", err)
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		cfgLog.Errorf("Config: Failed to read system config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if exists && len(cfg) == 0 && readErr == nil {
		if def := defaultSystemConfig(); def != nil {
			cfg = def
			if err := writeConfig(path, cfg); err != nil {
				cfgLog.Errorf("Config: Failed to write default system config: %v", err)
				readErr = err
			}
		}
	}

	if !exists {
		cfg = make(Config)
		migrated, migrateErr := migrateSystemFromLegacy(cfg)
		if migrateErr != nil {
			cfgLog.Warnf("Config: Legacy system migration error: %v", migrateErr)
			if readErr == nil {
				readErr = migrateErr
			}
		}
		if !migrated {
			if def := defaultSystemConfig(); def != nil {
				cfg = def
			}
		}
		applySystemDefaults(cfg)
		if err := writeConfig(path, cfg); err != nil {
			cfgLog.Errorf("Config: Failed to write system config: %v", err)
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		cfgLog.Infof("Config: Loaded system config from %s", path)
	}
	return readErr
}

// loadThemeLocked reads a theme from the user directory, falling back to the
// embedded copy. On a read error the embedded copy, if any, is returned along
// with the error.
func loadThemeLocked(name string) (Config, error) {
	path, err := ThemePath(name)
	if err != nil {
		return nil, err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		cfgLog.Errorf("Config: Failed to read theme %s: %v", path, readErr)
	}
	if !exists || readErr != nil {
		def := defaultThemeConfig(name)
		if def == nil {
			if readErr != nil {
				return nil, readErr
			}
			return nil, fmt.Errorf("theme %q not found", name)
		}
		cfg = def
	}

	if Migrate(cfg) {
		cfgLog.Infof("Config: Migrated legacy effect keys in theme %q", name)
	}
	if readErr == nil && exists {
		cfgLog.Infof("Config: Loaded theme %q from %s", name, path)
	}
	return cfg, readErr
}
