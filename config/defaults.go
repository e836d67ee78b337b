// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

// DefaultTheme is used when the system config names none.
const DefaultTheme = "neon"

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"theme":     DefaultTheme,
		"fps":       60,
		"log-level": "info",
	})
	cfg.RegisterDefaults("viewport", Section{
		"cols":        100,
		"rows":        30,
		"cell-width":  8,
		"cell-height": 16,
	})
	cfg.RegisterDefaults("render", Section{
		"texture-budget":     0,
		"hot-reload":         true,
		"reload-debounce-ms": 150,
	})
}
