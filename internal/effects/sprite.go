// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/sprite.go
// Summary: Animated sprite-sheet backdrop with anchors and optional motion.
// Usage: Event overrides patch a live Sprite in place through Configure; position and phase carry over.
// Notes: A sheet that fails to load or validate disables only this instance.

package effects

import (
	"image"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/scene"
)

var spriteSchema = Schema{
	Group: "sprite",
	Props: []Property{
		{Name: "path", Type: TypeString, Default: "", Doc: "sheet path, relative to the theme directory"},
		{Name: "frame-width", Type: TypeInt, Default: 0, Min: 0, Max: 4096, Doc: "px; 0 derives from the sheet"},
		{Name: "frame-height", Type: TypeInt, Default: 0, Min: 0, Max: 4096, Doc: "px; 0 derives from the sheet"},
		{Name: "columns", Type: TypeInt, Default: 1, Min: 1, Max: 64},
		{Name: "rows", Type: TypeInt, Default: 1, Min: 1, Max: 64},
		{Name: "frame-count", Type: TypeInt, Default: 0, Min: 0, Max: 4096, Doc: "0 means columns*rows"},
		{Name: "fps", Type: TypeFloat, Default: 12.0, Min: 0.1, Max: 120},
		{Name: "scale", Type: TypeFloat, Default: 1.0, Min: 0.1, Max: 10},
		{Name: "opacity", Type: TypeFloat, Default: 1.0, Min: 0, Max: 1},
		{Name: "position", Type: TypeEnum, Default: "center", Values: anchorValues},
		{Name: "motion", Type: TypeEnum, Default: "none", Values: motionNames},
		{Name: "motion-speed", Type: TypeFloat, Default: 1.0, Min: 0, Max: 20},
	},
}

// Sprite plays a frame sheet, optionally moving around the viewport.
type Sprite struct {
	settings
	sheets *SheetCache

	img      image.Image
	geo      sheetGeom
	err      error
	fps      float64
	scale    float64
	opacity  float64
	anchor   string
	behavior MotionBehavior

	elapsed float64
	frame   int
	motion  MotionState
	bounds  geom.Rect
	placed  bool
}

// NewSprite returns a sprite that loads sheets through sheets.
func NewSprite(sheets *SheetCache) *Sprite {
	s := &Sprite{settings: newSettings(KindSprite, &spriteSchema), sheets: sheets}
	s.apply()
	s.load()
	return s
}

func (s *Sprite) Kind() Kind { return KindSprite }
func (s *Sprite) Snapshot() EffectConfig { return s.snapshot() }

// Enabled reports whether a valid sheet is loaded.
func (s *Sprite) Enabled() bool { return s.err == nil && s.img != nil }

// Err returns the last sheet load or validation error.
func (s *Sprite) Err() error { return s.err }

// Frame returns the current frame index.
func (s *Sprite) Frame() int { return s.frame }

func (s *Sprite) Configure(cfg EffectConfig) {
	changed := s.merge(cfg)
	if len(changed) == 0 {
		return
	}
	s.apply()
	reload, retune, reanchor := false, false, false
	for _, key := range changed {
		switch key {
		case "path", "columns", "rows", "frame-width", "frame-height", "frame-count":
			reload = true
		case "motion", "motion-speed":
			retune = true
		case "position", "scale":
			reanchor = true
		}
	}
	if reload {
		s.load()
	}
	if !s.placed {
		return
	}
	if retune {
		s.motion = s.motion.Retune(s.behavior, s.travel())
	}
	if (reanchor || reload) && s.behavior.Kind == MotionNone {
		s.motion.Position = anchorPoint(s.anchor, s.bounds, s.size())
	}
}

func (s *Sprite) apply() {
	s.fps = s.getFloat("fps")
	s.scale = s.getFloat("scale")
	s.opacity = s.getFloat("opacity")
	s.anchor = s.getString("position")
	kind, _ := ParseMotionKind(s.getString("motion"))
	s.behavior = DefaultMotion(kind, s.getFloat("motion-speed"))
}

func (s *Sprite) load() {
	s.img, s.err = nil, nil
	path := s.getString("path")
	if path == "" {
		s.err = ErrNoSheetPath
		return
	}
	img, err := s.sheets.Load(path)
	if err != nil {
		s.err = err
		return
	}
	geo, err := layoutSheet(img, s.getInt("columns"), s.getInt("rows"),
		s.getInt("frame-width"), s.getInt("frame-height"), s.getInt("frame-count"))
	if err != nil {
		s.err = err
		return
	}
	s.img, s.geo = img, geo
	s.frame = geo.frameAt(s.elapsed, s.fps)
}

func (s *Sprite) size() geom.Vec2 {
	return geom.V(float64(s.geo.frameW)*s.scale, float64(s.geo.frameH)*s.scale)
}

func (s *Sprite) travel() geom.Rect { return travelBounds(s.bounds, s.size()) }

func (s *Sprite) Resize(b geom.Rect) {
	if b == s.bounds {
		return
	}
	s.bounds = b
	if b.Empty() {
		return
	}
	if !s.placed || s.behavior.Kind == MotionNone {
		s.motion = NewMotionState(s.behavior, anchorPoint(s.anchor, b, s.size()), s.travel())
		s.placed = true
		return
	}
	tb := s.travel()
	s.motion.Position.X = geom.Clamp(s.motion.Position.X, tb.Min.X, tb.Max.X)
	s.motion.Position.Y = geom.Clamp(s.motion.Position.Y, tb.Min.Y, tb.Max.Y)
}

// Update advances the frame clock and motion.
func (s *Sprite) Update(dt, _ float64) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	s.frame = s.geo.frameAt(s.elapsed, s.fps)
	if s.placed {
		s.motion = s.motion.Step(s.travel(), dt)
	}
}

// Position reports the sprite's live centre.
func (s *Sprite) Position() (geom.Vec2, bool) {
	return s.motion.Position, s.placed && s.Enabled()
}

func (s *Sprite) Render(sc *scene.Scene, _ geom.Rect) {
	if !s.Enabled() || !s.placed {
		return
	}
	size := s.size()
	tl := s.motion.Position.Sub(size.Scale(0.5))
	sc.Add(scene.Image{
		Src:     s.img,
		SrcRect: s.geo.frameRect(s.img.Bounds().Min, s.frame),
		Dst:     geom.Rect{Min: tl, Max: tl.Add(size)},
		Opacity: s.opacity,
	})
}
