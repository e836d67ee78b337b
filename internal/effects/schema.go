// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/schema.go
// Summary: Property schema per effect kind and the validated settings store built on it.
// Usage: Each variant declares a Schema; settings.merge coerces and clamps incoming values.
// Notes: The schema is also published to the configuration surface (texelfx schema).

package effects

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/paint"
)

// PropType is the value type of a property.
type PropType uint8

const (
	TypeBool PropType = iota
	TypeInt
	TypeFloat
	TypeColor
	TypeString
	TypeEnum
)

func (t PropType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeColor:
		return "color"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	}
	return "unknown"
}

// Property documents one configurable key.
type Property struct {
	Name    string
	Type    PropType
	Default interface{}
	// Min and Max bound numeric values when Min < Max.
	Min, Max float64
	Values   []string
	Doc      string
}

// Bounded reports whether the property has a numeric domain.
func (p Property) Bounded() bool { return p.Min < p.Max }

// Domain renders the value domain for documentation.
func (p Property) Domain() string {
	switch {
	case p.Type == TypeEnum:
		return strings.Join(p.Values, "|")
	case p.Bounded():
		return formatNum(p.Min) + ".." + formatNum(p.Max)
	}
	return ""
}

// Schema is the property table of one configurable group.
type Schema struct {
	Group string
	Props []Property
}

// Prop looks a property up by normalised name.
func (s *Schema) Prop(name string) (Property, bool) {
	for _, p := range s.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Defaults returns a config holding every property's default.
func (s *Schema) Defaults() EffectConfig {
	cfg := make(EffectConfig, len(s.Props))
	for _, p := range s.Props {
		cfg[p.Name] = p.Default
	}
	return cfg
}

// Normalize validates cfg against the schema. Keys are normalised and values
// coerced and clamped; unknown keys and unusable values are dropped. Every
// adjustment is reported.
func (s *Schema) Normalize(cfg EffectConfig) (EffectConfig, []error) {
	out := make(EffectConfig, len(cfg))
	var errs []error
	for rawKey, raw := range cfg {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(rawKey)), "_", "-")
		key = strings.TrimPrefix(key, s.Group+"-")
		p, ok := s.Prop(key)
		if !ok {
			errs = append(errs, &ConfigError{Kind: s.Group, Key: rawKey, Value: raw, Reason: "unknown property"})
			continue
		}
		v, cerr := coerce(p, raw)
		if cerr != nil {
			cerr.Kind = s.Group
			errs = append(errs, cerr)
		}
		if v != nil {
			out[key] = v
		}
	}
	return out, errs
}

// SchemaFor returns the schema of an effect kind.
func SchemaFor(k Kind) *Schema {
	if f, ok := lookup(k); ok {
		return f.schema
	}
	return nil
}

// Schemas returns every effect schema in canonical kind order.
func Schemas() []*Schema {
	out := make([]*Schema, 0, kindCount)
	for _, k := range Kinds() {
		out = append(out, SchemaFor(k))
	}
	return out
}

// settings holds the validated, complete configuration of one instance.
type settings struct {
	kind   Kind
	schema *Schema
	values EffectConfig
}

func newSettings(kind Kind, s *Schema) settings {
	st := settings{kind: kind, schema: s, values: make(EffectConfig, len(s.Props))}
	for _, p := range s.Props {
		v, _ := coerce(p, p.Default)
		st.values[p.Name] = v
	}
	return st
}

// merge applies the known keys of cfg and returns the names that changed.
func (st *settings) merge(cfg EffectConfig) []string {
	var changed []string
	log := logging.For("effects")
	for rawKey, raw := range cfg {
		key := normalizeKey(st.kind, rawKey)
		p, ok := st.schema.Prop(key)
		if !ok {
			log.Debug("ignoring unknown property", "effect", st.kind, "key", rawKey)
			continue
		}
		v, cerr := coerce(p, raw)
		if cerr != nil {
			cerr.Kind = st.kind.String()
			log.Warn("config", "err", cerr)
			if v == nil {
				continue
			}
		}
		if st.values[key] != v {
			st.values[key] = v
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}

func (st *settings) snapshot() EffectConfig { return st.values.Clone() }

func (st *settings) getFloat(name string) float64 {
	v, _ := st.values[name].(float64)
	return v
}

func (st *settings) getInt(name string) int {
	v, _ := st.values[name].(int)
	return v
}

func (st *settings) getBool(name string) bool {
	v, _ := st.values[name].(bool)
	return v
}

func (st *settings) getColor(name string) paint.Color {
	v, _ := st.values[name].(paint.Color)
	return v
}

func (st *settings) getString(name string) string {
	v, _ := st.values[name].(string)
	return v
}

// coerce converts raw to the property's canonical type. A clamped value is
// returned together with a ConfigError; an unusable value returns nil.
func coerce(p Property, raw interface{}) (interface{}, *ConfigError) {
	bad := func(reason string) *ConfigError {
		return &ConfigError{Key: p.Name, Value: raw, Reason: reason}
	}
	switch p.Type {
	case TypeBool:
		if b, ok := toBool(raw); ok {
			return b, nil
		}
		return nil, bad("not a boolean")
	case TypeInt, TypeFloat:
		f, ok := toFloat(raw)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, bad("not a number")
		}
		var cerr *ConfigError
		if p.Bounded() && (f < p.Min || f > p.Max) {
			f = math.Max(p.Min, math.Min(p.Max, f))
			cerr = bad("clamped to " + formatNum(f))
		}
		if p.Type == TypeInt {
			return int(math.Round(f)), cerr
		}
		return f, cerr
	case TypeColor:
		if c, ok := toColor(raw); ok {
			return c, nil
		}
		return nil, bad("not a colour")
	case TypeString:
		if s, ok := toString(raw); ok {
			return s, nil
		}
		return nil, bad("not a string")
	case TypeEnum:
		s, ok := toString(raw)
		if !ok {
			return nil, bad("not a string")
		}
		s = strings.ToLower(strings.TrimSpace(s))
		for _, v := range p.Values {
			if v == s {
				return s, nil
			}
		}
		return nil, bad("expected one of " + strings.Join(p.Values, "|"))
	}
	return nil, bad("unsupported type")
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
