// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/parse.go
// Summary: Builds a Theme from a decoded theme document.
// Usage: theme, errs := FromConfig(name, dir, doc); errs are non-fatal and already applied as defaults.
// Notes: Sections are "colors", "cursor-glow", "text-shadow", "crt", "backdrop" and "events".

package theming

import (
	"fmt"
	"time"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/paint"
)

// FromConfig parses doc into a Theme. Problems are collected and returned; the
// affected values keep their defaults.
func FromConfig(name, dir string, doc config.Config) (*Theme, []error) {
	t := &Theme{
		Name:   doc.GetString("", "name", name),
		Dir:    dir,
		Base:   DefaultEffective(),
		Events: make(map[EventKey]EventOverride),
	}
	var errs []error
	collect := func(e []error) { errs = append(errs, e...) }

	colors, e := normalizeSection(&colorsSchema, doc.Section("colors"))
	collect(e)
	setColor(&t.Base.BackgroundTop, colors, "background-top")
	setColor(&t.Base.BackgroundBottom, colors, "background-bottom")
	setColor(&t.Base.Foreground, colors, "foreground")
	setColor(&t.Base.Cursor, colors, "cursor")
	setColor(&t.Base.Selection, colors, "selection")
	setValue(&t.Base.CursorShape, colors, "cursor-shape")

	glow, e := normalizeSection(&cursorGlowSchema, doc.Section("cursor-glow"))
	collect(e)
	setValue(&t.Base.CursorGlow.Enabled, glow, "enabled")
	setValue(&t.Base.CursorGlow.Radius, glow, "radius")
	setValue(&t.Base.CursorGlow.Intensity, glow, "intensity")
	setColor(&t.Base.CursorGlow.Color, glow, "color")

	shadow, e := normalizeSection(&textShadowSchema, doc.Section("text-shadow"))
	collect(e)
	setValue(&t.Base.TextShadow.Enabled, shadow, "enabled")
	setColor(&t.Base.TextShadow.Color, shadow, "color")
	setValue(&t.Base.TextShadow.Radius, shadow, "radius")
	setValue(&t.Base.TextShadow.Intensity, shadow, "intensity")

	crt, e := normalizeSection(&crtSchema, doc.Section("crt"))
	collect(e)
	setValue(&t.Base.CRT.Enabled, crt, "enabled")
	setValue(&t.Base.CRT.Scanline, crt, "scanline")
	setValue(&t.Base.CRT.ScanlineFrequency, crt, "scanline-frequency")
	setValue(&t.Base.CRT.Curvature, crt, "curvature")
	setValue(&t.Base.CRT.Vignette, crt, "vignette")
	setValue(&t.Base.CRT.ChromaticAberration, crt, "chromatic-aberration")
	setValue(&t.Base.CRT.Bloom, crt, "bloom")
	setValue(&t.Base.CRT.Flicker, crt, "flicker")

	t.Backdrop, e = parseBackdrop(doc.Section("backdrop"))
	collect(e)

	for rawKey, raw := range doc.Section("events") {
		key, err := ParseEventKey(rawKey)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		blocks, err := asBlocks(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		parsed := make([]EventOverride, 0, len(blocks))
		for _, b := range blocks {
			o, e := ParseOverride(b)
			for _, err := range e {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
			parsed = append(parsed, o)
		}
		t.Events[key] = Merge(parsed...)
	}
	return t, errs
}

// parseBackdrop reads the enable list; per-effect sections under the same
// key supply properties, and inline entry properties win over them.
func parseBackdrop(sec config.Section) ([]effects.Spec, []error) {
	if sec == nil {
		return nil, nil
	}
	specs, errs := effects.ParseSpecs(plainList(sec["enable"]))
	for i := range specs {
		base, _ := asMap(sec[specs[i].Kind.String()])
		specs[i].Config = effects.EffectConfig(base).Merge(specs[i].Config)
	}
	return specs, errs
}

// ParseOverride decodes one override block.
func ParseOverride(block map[string]interface{}) (EventOverride, []error) {
	var o EventOverride
	scalars := make(effects.EffectConfig, len(block))
	var errs []error
	for k, v := range block {
		switch k {
		case "sprite-patch", "sprite_patch":
			m, ok := asMap(v)
			if !ok {
				errs = append(errs, fmt.Errorf("sprite-patch: expected a map, got %T", v))
				continue
			}
			p, e := parseSpritePatch(m)
			errs = append(errs, e...)
			o.SpritePatch = &p
		case "sprite-overlay", "sprite_overlay":
			m, ok := asMap(v)
			if !ok {
				errs = append(errs, fmt.Errorf("sprite-overlay: expected a map, got %T", v))
				continue
			}
			ov, e := parseSpriteOverlay(m)
			errs = append(errs, e...)
			if ov != nil {
				o.SpriteOverlay = ov
			}
		case "patch":
			m, ok := asMap(v)
			if !ok {
				errs = append(errs, fmt.Errorf("patch: expected a map, got %T", v))
				continue
			}
			patches, e := parsePatches(m)
			errs = append(errs, e...)
			o.Patches = patches
		default:
			scalars[k] = v
		}
	}

	vals, e := eventSchema.Normalize(scalars)
	errs = append(errs, e...)
	if ms, ok := vals["duration"].(int); ok {
		o.Duration = time.Duration(ms) * time.Millisecond
	}
	o.Foreground = colorPtr(vals, "foreground")
	o.BackgroundTop = colorPtr(vals, "background-top")
	o.BackgroundBottom = colorPtr(vals, "background-bottom")
	o.CursorColor = colorPtr(vals, "cursor-color")
	o.CursorShape = valuePtr[string](vals, "cursor-shape")
	o.TextShadowColor = colorPtr(vals, "text-shadow-color")
	o.TextShadowRadius = valuePtr[float64](vals, "text-shadow-radius")
	o.TextShadowIntensity = valuePtr[float64](vals, "text-shadow-intensity")
	return o, errs
}

func parseSpritePatch(m map[string]interface{}) (SpritePatch, []error) {
	vals, errs := spritePatchSchema.Normalize(effects.EffectConfig(m))
	return SpritePatch{
		Path:        valuePtr[string](vals, "path"),
		Columns:     valuePtr[int](vals, "columns"),
		Rows:        valuePtr[int](vals, "rows"),
		FPS:         valuePtr[float64](vals, "fps"),
		Opacity:     valuePtr[float64](vals, "opacity"),
		Scale:       valuePtr[float64](vals, "scale"),
		MotionSpeed: valuePtr[float64](vals, "motion-speed"),
	}, errs
}

func parseSpriteOverlay(m map[string]interface{}) (*SpriteOverlay, []error) {
	given, errs := spriteOverlaySchema.Normalize(effects.EffectConfig(m))
	defaults, _ := spriteOverlaySchema.Normalize(spriteOverlaySchema.Defaults())
	vals := defaults.Merge(given)
	path, _ := vals["path"].(string)
	if path == "" {
		return nil, append(errs, fmt.Errorf("sprite-overlay: path is required"))
	}
	pos, _ := effects.ParseOverlayPosition(vals["position"].(string))
	return &SpriteOverlay{
		Path:       path,
		Position:   pos,
		Columns:    vals["columns"].(int),
		Rows:       vals["rows"].(int),
		FrameCount: vals["frame-count"].(int),
		FPS:        vals["fps"].(float64),
		Scale:      vals["scale"].(float64),
		Opacity:    vals["opacity"].(float64),
	}, errs
}

func parsePatches(m map[string]interface{}) (map[effects.Kind]effects.EffectConfig, []error) {
	out := make(map[effects.Kind]effects.EffectConfig, len(m))
	var errs []error
	for name, raw := range m {
		kind, err := effects.ParseKind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("patch: %w", err))
			continue
		}
		cfg, ok := asMap(raw)
		if !ok {
			errs = append(errs, fmt.Errorf("patch.%s: expected a map, got %T", kind, raw))
			continue
		}
		vals, e := effects.SchemaFor(kind).Normalize(effects.EffectConfig(cfg))
		errs = append(errs, e...)
		if len(vals) > 0 {
			out[kind] = vals
		}
	}
	return out, errs
}

func normalizeSection(s *effects.Schema, sec config.Section) (effects.EffectConfig, []error) {
	if sec == nil {
		return nil, nil
	}
	return s.Normalize(effects.EffectConfig(sec))
}

func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v, true
	case config.Section:
		return v, true
	case config.Config:
		return v, true
	case effects.EffectConfig:
		return v, true
	}
	return nil, false
}

// plainList turns map entries of a list into plain maps so ParseSpecs
// recognises cloned sections.
func plainList(raw interface{}) interface{} {
	list, ok := raw.([]interface{})
	if !ok {
		return raw
	}
	out := make([]interface{}, len(list))
	for i, item := range list {
		if m, ok := asMap(item); ok {
			out[i] = m
			continue
		}
		out[i] = item
	}
	return out
}

// asBlocks accepts a single block or an ordered list of blocks.
func asBlocks(raw interface{}) ([]map[string]interface{}, error) {
	if m, ok := asMap(raw); ok {
		return []map[string]interface{}{m}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a map or a list of maps, got %T", raw)
	}
	out := make([]map[string]interface{}, 0, len(list))
	for i, item := range list {
		m, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("block %d: expected a map, got %T", i, item)
		}
		out = append(out, m)
	}
	return out, nil
}

func setColor(dst *paint.Color, vals effects.EffectConfig, key string) {
	if c, ok := vals[key].(paint.Color); ok {
		*dst = c
	}
}

func setValue[T any](dst *T, vals effects.EffectConfig, key string) {
	if v, ok := vals[key].(T); ok {
		*dst = v
	}
}

func colorPtr(vals effects.EffectConfig, key string) *paint.Color {
	return valuePtr[paint.Color](vals, key)
}

func valuePtr[T any](vals effects.EffectConfig, key string) *T {
	if v, ok := vals[key].(T); ok {
		return &v
	}
	return nil
}
