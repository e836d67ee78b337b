// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/overlay.go
// Summary: One-shot sprite overlay modelled as a Playing/Done state object.
// Usage: The frame loop seeks an overlay to the override's elapsed time once per frame, then renders it.
// Notes: Lifetime is the shorter of one animation cycle and the override duration.

package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/scene"
)

// OverlayPosition selects how an overlay is placed each frame.
type OverlayPosition uint8

const (
	OverlayCenter OverlayPosition = iota
	OverlayCursor
	OverlaySprite
	OverlayRandom
)

var overlayPositionNames = []string{"center", "cursor", "sprite", "random"}

func (p OverlayPosition) String() string {
	if int(p) < len(overlayPositionNames) {
		return overlayPositionNames[p]
	}
	return fmt.Sprintf("OverlayPosition(%d)", p)
}

// ParseOverlayPosition maps a config value to a position policy.
func ParseOverlayPosition(s string) (OverlayPosition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range overlayPositionNames {
		if s == name {
			return OverlayPosition(i), nil
		}
	}
	return OverlayCenter, fmt.Errorf("unknown overlay position %q", s)
}

// OverlayPhase is the lifecycle state of an overlay.
type OverlayPhase uint8

const (
	OverlayPlaying OverlayPhase = iota
	OverlayDone
)

// OverlayAnchors carries the live positions an overlay may track.
type OverlayAnchors struct {
	Cursor    geom.Vec2
	Sprite    geom.Vec2
	HasSprite bool
}

// Overlay plays a sprite sheet once on top of the backdrop.
type Overlay struct {
	sprite   *Sprite
	policy   OverlayPosition
	unit     geom.Vec2
	lifetime float64
	elapsed  float64
	phase    OverlayPhase
	last     geom.Vec2
}

// NewOverlay builds an overlay from sprite properties. duration is the owning
// override's duration in seconds; zero means the overlay runs one cycle.
// seed drives the Random placement.
func NewOverlay(cfg EffectConfig, policy OverlayPosition, duration float64, sheets *SheetCache, seed uint64) (*Overlay, error) {
	sp := NewSprite(sheets)
	patch := cfg.Clone()
	delete(patch, "motion")
	delete(patch, "position")
	sp.Configure(patch)
	if err := sp.Err(); err != nil {
		return nil, &InstantiationError{Kind: KindSprite, Err: err}
	}
	cycle := float64(sp.geo.frames) / sp.fps
	lifetime := cycle
	if duration > 0 {
		lifetime = math.Min(cycle, duration)
	}
	return &Overlay{
		sprite:   sp,
		policy:   policy,
		unit:     geom.V(hash01(seed, 0, 0x6f76), hash01(seed, 1, 0x6f76)),
		lifetime: lifetime,
	}, nil
}

// Policy returns the placement policy.
func (o *Overlay) Policy() OverlayPosition { return o.policy }

// Lifetime returns how long the overlay plays, in seconds.
func (o *Overlay) Lifetime() float64 { return o.lifetime }

// Phase reports Playing or Done.
func (o *Overlay) Phase() OverlayPhase { return o.phase }

// Done reports whether the overlay finished.
func (o *Overlay) Done() bool { return o.phase == OverlayDone }

// Frame returns the sheet frame currently shown.
func (o *Overlay) Frame() int { return o.sprite.frame }

// Elapsed returns the seconds played so far.
func (o *Overlay) Elapsed() float64 { return o.elapsed }

// Seek moves the overlay to elapsed seconds since spawn. Done is terminal.
func (o *Overlay) Seek(elapsed float64) OverlayPhase {
	if o.phase == OverlayDone {
		return o.phase
	}
	if elapsed < 0 {
		elapsed = 0
	}
	o.elapsed = elapsed
	if elapsed >= o.lifetime {
		o.phase = OverlayDone
		return o.phase
	}
	o.sprite.elapsed = elapsed
	o.sprite.frame = o.sprite.geo.frameAt(elapsed, o.sprite.fps)
	return o.phase
}

// Stop ends the overlay immediately.
func (o *Overlay) Stop() { o.phase = OverlayDone }

// Anchor resolves the overlay centre for this frame.
func (o *Overlay) Anchor(b geom.Rect, a OverlayAnchors) geom.Vec2 {
	switch o.policy {
	case OverlayCursor:
		return a.Cursor
	case OverlaySprite:
		if a.HasSprite {
			return a.Sprite
		}
	case OverlayRandom:
		return travelBounds(b, o.sprite.size()).Lerp(o.unit)
	}
	return b.Center()
}

// Position returns the centre used by the last Render.
func (o *Overlay) Position() geom.Vec2 { return o.last }

// Render draws the current frame. Done overlays draw nothing.
func (o *Overlay) Render(sc *scene.Scene, b geom.Rect, a OverlayAnchors) {
	if o.phase == OverlayDone {
		return
	}
	o.last = o.Anchor(b, a)
	o.sprite.motion.Position = o.last
	o.sprite.placed = true
	o.sprite.Render(sc, b)
}
