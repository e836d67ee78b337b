// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/scene/scene.go
// Summary: Retained list of drawing primitives built by backdrop effects each frame.
// Usage: Effects append Fill, Stroke, Glyph and Image primitives; the compositor rasterizes them in order.
// Notes: A Scene never references compositor textures, only source images such as sprite sheets.

package scene

import (
	"image"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
)

// Primitive is one drawable item. The set is closed.
type Primitive interface {
	primitive()
}

// Fill paints the interior of a path (non-zero winding).
type Fill struct {
	Path  Path
	Color paint.Color
}

// Stroke paints a path outline with the given width.
type Stroke struct {
	Path  Path
	Color paint.Color
	Width float64
}

// Glyph draws one character with its baseline-left corner at Origin.
type Glyph struct {
	Rune   rune
	Origin geom.Vec2
	Size   float64
	Color  paint.Color
}

// Image draws Src[SrcRect] scaled into Dst.
type Image struct {
	Src     image.Image
	SrcRect image.Rectangle
	Dst     geom.Rect
	Opacity float64
}

func (Fill) primitive()   {}
func (Stroke) primitive() {}
func (Glyph) primitive()  {}
func (Image) primitive()  {}

// Scene is an ordered primitive list; later items draw on top.
type Scene struct {
	items []Primitive
}

// New returns an empty scene with room for n primitives.
func New(n int) *Scene {
	return &Scene{items: make([]Primitive, 0, n)}
}

// Reset empties the scene keeping its storage.
func (s *Scene) Reset() { s.items = s.items[:0] }

// Len reports the number of primitives.
func (s *Scene) Len() int { return len(s.items) }

// Items exposes the primitives in draw order. Callers must not modify the slice.
func (s *Scene) Items() []Primitive { return s.items }

// Add appends one primitive. Degenerate primitives are dropped.
func (s *Scene) Add(p Primitive) {
	switch v := p.(type) {
	case Fill:
		if v.Color.IsTransparent() || v.Path.Empty() {
			return
		}
	case Stroke:
		if v.Color.IsTransparent() || v.Path.Empty() || v.Width <= 0 {
			return
		}
	case Glyph:
		if v.Color.IsTransparent() || v.Size <= 0 {
			return
		}
	case Image:
		if v.Src == nil || v.Opacity <= 0 || v.Dst.Empty() || v.SrcRect.Empty() {
			return
		}
	}
	s.items = append(s.items, p)
}

// FillPath is shorthand for Add(Fill{...}).
func (s *Scene) FillPath(p Path, c paint.Color) { s.Add(Fill{Path: p, Color: c}) }

// StrokePath is shorthand for Add(Stroke{...}).
func (s *Scene) StrokePath(p Path, c paint.Color, width float64) {
	s.Add(Stroke{Path: p, Color: c, Width: width})
}

// Line strokes a single segment.
func (s *Scene) Line(a, b geom.Vec2, c paint.Color, width float64) {
	var p Path
	p.MoveTo(a)
	p.LineTo(b)
	s.StrokePath(p, c, width)
}

// Append copies other's primitives after s's own.
func (s *Scene) Append(other *Scene) {
	if other == nil {
		return
	}
	s.items = append(s.items, other.items...)
}
