// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration, themes and sprite sheets.

package defaults

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed texelfx.yaml themes
var files embed.FS

// SystemConfig returns the embedded system config YAML.
func SystemConfig() ([]byte, error) {
	return files.ReadFile("texelfx.yaml")
}

// Theme returns the embedded theme document with the given name.
func Theme(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("theme name is required")
	}
	return files.ReadFile(path.Join("themes", name+".yaml"))
}

// Themes returns the embedded theme directory, where sprite paths resolve.
func Themes() fs.FS {
	sub, err := fs.Sub(files, "themes")
	if err != nil {
		panic(err)
	}
	return sub
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	entries, err := files.ReadDir("themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	return names
}
