// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/theme.go
// Summary: Base theme and the per-frame effective theme values.
// Usage: Built from a theme document by FromConfig; the frame loop reads Base through WithOverride.
// Notes: A Theme is immutable once built; hot reload replaces it wholesale.

package theming

import (
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/paint"
)

// Cursor shapes understood by the cursor pass.
const (
	CursorBlock     = "block"
	CursorBar       = "bar"
	CursorUnderline = "underline"
	CursorHollow    = "hollow"
)

var cursorShapes = []string{CursorBlock, CursorBar, CursorUnderline, CursorHollow}

// CursorGlow routes the cursor layer through the glow pass when enabled.
type CursorGlow struct {
	Enabled   bool
	Radius    float64
	Intensity float64
	Color     paint.Color
}

// TextShadow is a soft halo drawn behind glyphs.
type TextShadow struct {
	Enabled   bool
	Color     paint.Color
	Radius    float64
	Intensity float64
}

// CRT holds the post-process parameters.
type CRT struct {
	Enabled             bool
	Scanline            float64
	ScanlineFrequency   float64
	Curvature           float64
	Vignette            float64
	ChromaticAberration float64
	Bloom               float64
	Flicker             float64
}

// EffectiveTheme is the resolved set of values one frame renders with.
type EffectiveTheme struct {
	BackgroundTop    paint.Color
	BackgroundBottom paint.Color
	Foreground       paint.Color
	Cursor           paint.Color
	CursorShape      string
	CursorGlow       CursorGlow
	TextShadow       TextShadow
	Selection        paint.Color
	CRT              CRT
}

// Background returns the background gradient.
func (e EffectiveTheme) Background() paint.Gradient {
	return paint.Gradient{Top: e.BackgroundTop, Bottom: e.BackgroundBottom}
}

// Theme is a parsed theme document.
type Theme struct {
	Name string
	// Dir is the directory relative sprite paths resolve against. Empty means
	// the embedded assets.
	Dir      string
	Base     EffectiveTheme
	Backdrop []effects.Spec
	Events   map[EventKey]EventOverride
}

// DefaultEffective returns the stock values used for anything a theme omits.
func DefaultEffective() EffectiveTheme {
	return EffectiveTheme{
		BackgroundTop:    paint.Hex(0x1a0a2e),
		BackgroundBottom: paint.Hex(0x16213e),
		Foreground:       paint.Hex(0xc8c8c8),
		Cursor:           paint.Hex(0x00ffff),
		CursorShape:      CursorBlock,
		CursorGlow:       CursorGlow{Radius: 6, Intensity: 0.8, Color: paint.Hex(0x00ffff)},
		TextShadow:       TextShadow{Color: paint.RGBA(0, 255, 255, 153), Radius: 8, Intensity: 0.6},
		Selection:        paint.RGBA(80, 120, 200, 115),
		CRT: CRT{
			Scanline:          0.15,
			ScanlineFrequency: 2,
			Curvature:         0.02,
			Vignette:          0.3,
		},
	}
}

// Default returns a theme with stock values and no backdrop or events.
func Default() *Theme {
	return &Theme{Name: "default", Base: DefaultEffective(), Events: map[EventKey]EventOverride{}}
}

// Override returns the merged override configured for key.
func (t *Theme) Override(key EventKey) (EventOverride, bool) {
	if t == nil {
		return EventOverride{}, false
	}
	o, ok := t.Events[key]
	return o, ok
}
