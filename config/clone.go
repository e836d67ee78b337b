// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone helpers for config maps.

package config

// Clone returns a deep copy of the config. Nested maps come back as Section.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for key, value := range cfg {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		return cloneSection(v)
	case Section:
		return cloneSection(v)
	case Config:
		return cloneSection(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneSection(m map[string]interface{}) Section {
	out := make(Section, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}
