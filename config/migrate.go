// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Legacy config migration helpers.
// Notes: Older theme files used flat "<effect>-<property>" keys with an "<effect>-enabled" switch.

package config

import (
	"sort"
	"strings"

	"github.com/framegrace/texelfx/internal/effects"
)

// legacySystemKeys maps old system keys onto their current names.
var legacySystemKeys = map[string]string{
	"activeTheme": "theme",
	"targetFps":   "fps",
	"logLevel":    "log-level",
}

func migrateSystemFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacyCfg, exists, err := readConfig(legacyPath)
	if err != nil {
		return false, err
	}
	if !exists || legacyCfg == nil {
		return false, nil
	}
	migrated := false
	for key, value := range legacyCfg {
		if renamed, ok := legacySystemKeys[key]; ok {
			key = renamed
		}
		if _, ok := cfg[key]; ok {
			continue
		}
		cfg[key] = cloneValue(value)
		migrated = true
	}
	if migrated {
		cfgLog.Infof("Config: Migrated system config from %s", legacyPath)
	}
	return migrated, nil
}

// Migrate rewrites flat "<effect>-<property>" keys, found at the top level or
// inside the backdrop section, into per-effect backdrop sections. A true
// "<effect>-enabled" appends the effect to backdrop.enable. Keys already set
// in the sectioned form win. It reports whether anything moved.
func Migrate(doc Config) bool {
	if doc == nil {
		return false
	}
	backdrop := doc.Section("backdrop")
	migrated := false
	var enable []string
	move := func(src map[string]interface{}, key string) {
		kind, prop, ok := splitLegacyKey(key)
		if !ok {
			return
		}
		value := src[key]
		delete(src, key)
		migrated = true
		if backdrop == nil {
			backdrop = make(Section)
		}
		if prop == "enabled" {
			if on, ok := value.(bool); ok && on {
				enable = append(enable, kind)
			}
			return
		}
		sec := backdrop.Section(kind)
		if sec == nil {
			sec = make(Section)
			backdrop[kind] = sec
		}
		if _, ok := sec[prop]; !ok {
			sec[prop] = value
		}
	}
	for _, key := range sortedKeys(doc) {
		move(doc, key)
	}
	if backdrop != nil {
		for _, key := range sortedKeys(backdrop) {
			move(backdrop, key)
		}
	}
	if !migrated {
		return false
	}
	if len(enable) > 0 {
		backdrop["enable"] = appendEnable(backdrop["enable"], enable)
	}
	doc["backdrop"] = backdrop
	return true
}

// Section returns the nested section name of s, nil if missing.
func (s Section) Section(name string) Section {
	sec, _ := asSection(s[name])
	return sec
}

func splitLegacyKey(key string) (kind, prop string, ok bool) {
	for _, k := range effects.Kinds() {
		name := k.String()
		if rest, found := strings.CutPrefix(key, name+"-"); found && rest != "" {
			return name, rest, true
		}
	}
	return "", "", false
}

// appendEnable adds kinds missing from an existing enable list, keeping
// Kinds() order for the additions.
func appendEnable(existing interface{}, kinds []string) []interface{} {
	var out []interface{}
	have := make(map[string]bool)
	switch v := existing.(type) {
	case []interface{}:
		out = append(out, v...)
	case string:
		for _, name := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, name)
		}
	}
	for _, item := range out {
		if name, ok := item.(string); ok {
			have[name] = true
		} else if sec, ok := asSection(item); ok {
			if id, ok := sec["id"].(string); ok {
				have[id] = true
			}
		}
	}
	rank := make(map[string]int)
	for i, k := range effects.Kinds() {
		rank[k.String()] = i
	}
	sort.SliceStable(kinds, func(i, j int) bool { return rank[kinds[i]] < rank[kinds[j]] })
	for _, k := range kinds {
		if !have[k] {
			out = append(out, k)
			have[k] = true
		}
	}
	return out
}

func sortedKeys[M ~map[string]interface{}](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
