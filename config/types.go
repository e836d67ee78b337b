// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.
// Notes: yaml.v3 decodes nested mappings into the outer map type (Config) and
// numbers as int, uint64 or float64; JSON gives map[string]interface{} and
// float64. asSection and the to* coercions accept all of them.

package config

import (
	"encoding/json"
	"strconv"
	"time"
)

// asSection views any decoded mapping as a Section sharing its storage.
func asSection(raw interface{}) (Section, bool) {
	switch v := raw.(type) {
	case Section:
		return v, true
	case Config:
		return Section(v), true
	case map[string]interface{}:
		return Section(v), true
	}
	return nil, false
}

// Section returns the named section or nil if missing. The empty name is
// the top level of the document.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	sec, _ := asSection(c[sectionName])
	return sec
}

// RegisterDefaults ensures a section has defaults without overwriting existing keys.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section)
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) lookup(sectionName, key string) (interface{}, bool) {
	section := c.Section(sectionName)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v interface{}) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	if f, ok := toFloat(v); ok {
		return int(f), true
	}
	return 0, false
}

func toBool(v interface{}) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	if f, ok := toFloat(v); ok {
		return f != 0, true
	}
	return false, false
}

// GetString retrieves a string value from the config.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if v, ok := c.lookup(sectionName, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetFloat retrieves a float value from the config.
func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	if v, ok := c.lookup(sectionName, key); ok {
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value; fractional values are truncated.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	if v, ok := c.lookup(sectionName, key); ok {
		if n, ok := toInt(v); ok {
			return n
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value. Numbers count as true when nonzero.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	if v, ok := c.lookup(sectionName, key); ok {
		if b, ok := toBool(v); ok {
			return b
		}
	}
	return defaultValue
}

// GetDuration reads a millisecond count, as used by the "-ms" keys.
func (c Config) GetDuration(sectionName, key string, defaultValue time.Duration) time.Duration {
	ms := c.GetFloat(sectionName, key, -1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms * float64(time.Millisecond))
}
