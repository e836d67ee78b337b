// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/override.go
// Summary: Event override values and the ordered merge of override blocks.
// Usage: FromConfig folds every block configured for an event with Merge before storing it.
// Notes: Nil pointers mean "not set"; a set field always wins over the accumulated value.

package theming

import (
	"time"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/paint"
)

// SpritePatch is a partial sprite configuration applied to the live backdrop
// sprite in place.
type SpritePatch struct {
	Path        *string
	Columns     *int
	Rows        *int
	FPS         *float64
	Opacity     *float64
	Scale       *float64
	MotionSpeed *float64
}

// Merge overlays the set fields of next.
func (p SpritePatch) Merge(next SpritePatch) SpritePatch {
	p.Path = pick(p.Path, next.Path)
	p.Columns = pick(p.Columns, next.Columns)
	p.Rows = pick(p.Rows, next.Rows)
	p.FPS = pick(p.FPS, next.FPS)
	p.Opacity = pick(p.Opacity, next.Opacity)
	p.Scale = pick(p.Scale, next.Scale)
	p.MotionSpeed = pick(p.MotionSpeed, next.MotionSpeed)
	return p
}

// Config returns the set fields as a sprite EffectConfig.
func (p SpritePatch) Config() effects.EffectConfig {
	cfg := effects.EffectConfig{}
	put(cfg, "path", p.Path)
	put(cfg, "columns", p.Columns)
	put(cfg, "rows", p.Rows)
	put(cfg, "fps", p.FPS)
	put(cfg, "opacity", p.Opacity)
	put(cfg, "scale", p.Scale)
	put(cfg, "motion-speed", p.MotionSpeed)
	return cfg
}

// SpriteOverlay describes a one-shot sprite spawned by an override.
type SpriteOverlay struct {
	Path       string
	Position   effects.OverlayPosition
	Columns    int
	Rows       int
	FrameCount int
	FPS        float64
	Scale      float64
	Opacity    float64
}

// Config returns the overlay's sprite properties.
func (o SpriteOverlay) Config() effects.EffectConfig {
	return effects.EffectConfig{
		"path":        o.Path,
		"columns":     o.Columns,
		"rows":        o.Rows,
		"frame-count": o.FrameCount,
		"fps":         o.FPS,
		"scale":       o.Scale,
		"opacity":     o.Opacity,
	}
}

// EventOverride is a temporary patch to the theme. A zero Duration persists
// until cleared.
type EventOverride struct {
	Duration time.Duration

	Foreground       *paint.Color
	BackgroundTop    *paint.Color
	BackgroundBottom *paint.Color
	CursorColor      *paint.Color
	CursorShape      *string

	TextShadowColor     *paint.Color
	TextShadowRadius    *float64
	TextShadowIntensity *float64

	SpritePatch   *SpritePatch
	SpriteOverlay *SpriteOverlay

	// Patches holds partial configs for other live backdrop effects.
	Patches map[effects.Kind]effects.EffectConfig
}

// Persistent reports whether the override lasts until cleared.
func (o EventOverride) Persistent() bool { return o.Duration == 0 }

// Merge folds next into o. Set fields replace accumulated ones, Duration only
// when nonzero, sprite patch fields one by one, and a sprite overlay wholesale.
func (o EventOverride) Merge(next EventOverride) EventOverride {
	if next.Duration != 0 {
		o.Duration = next.Duration
	}
	o.Foreground = pick(o.Foreground, next.Foreground)
	o.BackgroundTop = pick(o.BackgroundTop, next.BackgroundTop)
	o.BackgroundBottom = pick(o.BackgroundBottom, next.BackgroundBottom)
	o.CursorColor = pick(o.CursorColor, next.CursorColor)
	o.CursorShape = pick(o.CursorShape, next.CursorShape)
	o.TextShadowColor = pick(o.TextShadowColor, next.TextShadowColor)
	o.TextShadowRadius = pick(o.TextShadowRadius, next.TextShadowRadius)
	o.TextShadowIntensity = pick(o.TextShadowIntensity, next.TextShadowIntensity)

	if next.SpritePatch != nil {
		merged := *next.SpritePatch
		if o.SpritePatch != nil {
			merged = o.SpritePatch.Merge(*next.SpritePatch)
		}
		o.SpritePatch = &merged
	}
	if next.SpriteOverlay != nil {
		ov := *next.SpriteOverlay
		o.SpriteOverlay = &ov
	}
	if len(next.Patches) > 0 {
		patches := make(map[effects.Kind]effects.EffectConfig, len(o.Patches)+len(next.Patches))
		for k, cfg := range o.Patches {
			patches[k] = cfg.Clone()
		}
		for k, cfg := range next.Patches {
			patches[k] = patches[k].Merge(cfg)
		}
		o.Patches = patches
	}
	return o
}

// Merge folds blocks in order.
func Merge(blocks ...EventOverride) EventOverride {
	var out EventOverride
	for _, b := range blocks {
		out = out.Merge(b)
	}
	return out
}

func pick[T any](acc, next *T) *T {
	if next != nil {
		v := *next
		return &v
	}
	return acc
}

func put[T any](cfg effects.EffectConfig, key string, v *T) {
	if v != nil {
		cfg[key] = *v
	}
}
