// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/assets.go
// Summary: Theme asset lookup and theme listing.

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framegrace/texelfx/defaults"
)

// ThemeAssets returns the filesystem a theme's relative sprite paths resolve
// against and the directory it represents. Themes without a user file use the
// embedded assets and an empty directory.
func ThemeAssets(name string) (fs.FS, string) {
	if path, err := ThemePath(name); err == nil {
		if _, err := os.Stat(path); err == nil {
			dir := filepath.Dir(path)
			return os.DirFS(dir), dir
		}
	}
	return defaults.Themes(), ""
}

// ThemeNames lists the embedded themes and the user's, sorted and unique.
func ThemeNames() []string {
	seen := make(map[string]bool)
	for _, name := range defaults.ThemeNames() {
		seen[name] = true
	}
	if dir, err := ThemesDir(); err == nil {
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := filepath.Ext(e.Name())
			if ext == ".yaml" || ext == ".json" {
				seen[strings.TrimSuffix(e.Name(), ext)] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
