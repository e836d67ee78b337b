// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/interfaces.go
// Summary: Contract shared by every backdrop effect variant.
// Usage: The Renderer drives instances through Resize, Update and Render once per frame.
// Notes: Update(0, t) must leave state untouched; Render only appends to the scene.

package effects

import (
	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/scene"
)

// Effect is one backdrop effect instance.
type Effect interface {
	Kind() Kind
	// Configure applies the keys present in cfg, clamping out-of-range values.
	// Keys not present keep their current value.
	Configure(cfg EffectConfig)
	// Snapshot returns the complete current configuration.
	Snapshot() EffectConfig
	// Resize informs the effect of the viewport it renders into.
	Resize(bounds geom.Rect)
	// Update advances animation by dt seconds; t is seconds since start.
	Update(dt, t float64)
	// Render appends primitives for the current state.
	Render(sc *scene.Scene, bounds geom.Rect)
	// Enabled reports whether the instance can render. A failed asset load disables it.
	Enabled() bool
}

// Positioned is implemented by effects that expose a live anchor position.
type Positioned interface {
	Position() (geom.Vec2, bool)
}
