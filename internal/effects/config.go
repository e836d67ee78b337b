// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/config.go
// Summary: Effect configuration maps, enable-list parsing and lenient value coercion.
// Usage: Theme parsing builds []Spec; effects consume EffectConfig through their Schema.
// Notes: Keys are normalised so "line_width", "line-width" and "grid-line-width" all resolve.

package effects

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/texelfx/internal/paint"
)

// EffectConfig is a loosely typed property map as decoded from theme documents.
type EffectConfig map[string]interface{}

// Clone returns a shallow copy.
func (c EffectConfig) Clone() EffectConfig {
	if c == nil {
		return nil
	}
	out := make(EffectConfig, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns c overlaid with patch, key by key.
func (c EffectConfig) Merge(patch EffectConfig) EffectConfig {
	out := c.Clone()
	if out == nil {
		out = make(EffectConfig, len(patch))
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Spec is one entry of a theme's ordered enable list.
type Spec struct {
	Kind   Kind
	Config EffectConfig
}

// ParseSpecs decodes an enable list. Entries are either kind names or maps with
// an "id" (or "type") key plus inline properties. Unknown kinds are reported
// and skipped; duplicates keep their first position.
func ParseSpecs(raw interface{}) ([]Spec, []error) {
	var entries []interface{}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		if strings.HasPrefix(strings.TrimSpace(v), "[") {
			if err := json.Unmarshal([]byte(v), &entries); err != nil {
				return nil, []error{err}
			}
		} else {
			for _, name := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
				entries = append(entries, name)
			}
		}
	case []interface{}:
		entries = v
	case []string:
		for _, s := range v {
			entries = append(entries, s)
		}
	case []map[string]interface{}:
		for _, m := range v {
			entries = append(entries, m)
		}
	default:
		return nil, []error{fmt.Errorf("backdrop enable list: unsupported type %T", raw)}
	}

	var errs []error
	seen := make(map[Kind]bool, len(entries))
	specs := make([]Spec, 0, len(entries))
	for _, entry := range entries {
		var name string
		cfg := make(EffectConfig)
		switch e := entry.(type) {
		case string:
			name = e
		case map[string]interface{}:
			name, _ = e["id"].(string)
			if name == "" {
				name, _ = e["type"].(string)
			}
			for k, v := range e {
				if k == "id" || k == "type" {
					continue
				}
				cfg[k] = v
			}
		default:
			errs = append(errs, fmt.Errorf("backdrop enable list: unsupported entry %T", entry))
			continue
		}
		kind, err := ParseKind(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		specs = append(specs, Spec{Kind: kind, Config: cfg})
	}
	return specs, errs
}

// normalizeKey lower-cases, maps '_' to '-', and strips a leading "<kind>-".
func normalizeKey(kind Kind, key string) string {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	return strings.TrimPrefix(key, kind.String()+"-")
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed, true
		}
	case string:
		s := strings.TrimSpace(v)
		s = strings.TrimSuffix(s, "px")
		s = strings.TrimSuffix(s, "ms")
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func toBool(raw interface{}) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "yes":
			return true, true
		case "off", "no":
			return false, true
		}
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed, true
		}
	default:
		if f, ok := toFloat(raw); ok {
			return f != 0, true
		}
	}
	return false, false
}

func toColor(raw interface{}) (paint.Color, bool) {
	switch v := raw.(type) {
	case paint.Color:
		return v, true
	case string:
		if c, err := paint.Parse(v); err == nil {
			return c, true
		}
	}
	return paint.Color{}, false
}

func toString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}
