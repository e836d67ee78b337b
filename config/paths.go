// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelfx configuration.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root returns the configuration directory. TEXELFX_CONFIG_DIR overrides the
// platform default.
func Root() (string, error) {
	if dir := os.Getenv("TEXELFX_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelfx"), nil
}

func systemConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// SystemPath returns the path of texelfx.yaml. The file may not exist yet.
func SystemPath() (string, error) { return systemConfigPath() }

func legacyConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, legacyConfigName), nil
}

// ThemesDir returns the user theme directory.
func ThemesDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, themesDirName), nil
}

func validThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("theme name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid theme name %q", name)
	}
	return nil
}

func themeConfigPath(name string) (string, error) {
	if err := validThemeName(name); err != nil {
		return "", err
	}
	dir, err := ThemesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".yaml"), nil
}

// ThemePath returns the user file backing a theme: the .yaml file, or the
// .json one when only that exists. The path may not exist.
func ThemePath(name string) (string, error) {
	path, err := themeConfigPath(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	alt := strings.TrimSuffix(path, ".yaml") + ".json"
	if _, err := os.Stat(alt); err == nil {
		return alt, nil
	}
	return path, nil
}
