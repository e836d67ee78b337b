// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/raster.go
// Summary: Rasterizes a scene's primitives into an RGBA texture.
// Usage: Used by the backdrop pass; glyph drawing is shared with the text pass.
// Notes: Fills use non-zero winding via x/image/vector; strokes are expanded into segment quads.

package compositor

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
)

// Rasterizer draws scenes. It is not safe for concurrent use.
type Rasterizer struct {
	z      *vector.Rasterizer
	glyphs *glyphCache
}

// NewRasterizer returns a rasterizer with an empty glyph cache.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{z: vector.NewRasterizer(1, 1), glyphs: newGlyphCache()}
}

// Draw renders every primitive of sc onto dst in order.
func (r *Rasterizer) Draw(dst *image.RGBA, sc *scene.Scene) {
	for _, p := range sc.Items() {
		switch p := p.(type) {
		case scene.Fill:
			r.fill(dst, p.Path, p.Color)
		case scene.Stroke:
			r.stroke(dst, p.Path, p.Color, p.Width)
		case scene.Glyph:
			r.glyph(dst, p)
		case scene.Image:
			r.image(dst, p)
		}
	}
}

func (r *Rasterizer) begin(dst *image.RGBA) {
	b := dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = xdraw.Over
}

func (r *Rasterizer) fill(dst *image.RGBA, p scene.Path, c paint.Color) {
	r.begin(dst)
	open := false
	for _, s := range p.Segs {
		switch s.Verb {
		case scene.MoveTo:
			if open {
				r.z.ClosePath()
			}
			r.z.MoveTo(f32(s.P[0]))
			open = true
		case scene.LineTo:
			r.z.LineTo(f32(s.P[0]))
		case scene.QuadTo:
			bx, by := f32(s.P[0])
			cx, cy := f32(s.P[1])
			r.z.QuadTo(bx, by, cx, cy)
		case scene.CubeTo:
			bx, by := f32(s.P[0])
			cx, cy := f32(s.P[1])
			dx, dy := f32(s.P[2])
			r.z.CubeTo(bx, by, cx, cy, dx, dy)
		case scene.Close:
			r.z.ClosePath()
			open = false
		}
	}
	if open {
		r.z.ClosePath()
	}
	r.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Rasterizer) stroke(dst *image.RGBA, p scene.Path, c paint.Color, width float64) {
	half := math.Max(width, 0.5) / 2
	r.begin(dst)
	drawn := false
	for _, run := range p.Polyline(1) {
		for i := 1; i < len(run); i++ {
			a, b := run[i-1], run[i]
			d := b.Sub(a)
			l := d.Len()
			if l == 0 {
				continue
			}
			// Extend each segment by half the width so joints overlap.
			u := d.Scale(1 / l)
			n := geom.V(-u.Y, u.X).Scale(half)
			a = a.Sub(u.Scale(half))
			b = b.Add(u.Scale(half))
			r.quad(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
			drawn = true
		}
	}
	if drawn {
		r.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	}
}

// quad adds a closed quadrilateral wound consistently with other quads.
func (r *Rasterizer) quad(a, b, c, d geom.Vec2) {
	r.z.MoveTo(f32(a))
	r.z.LineTo(f32(b))
	r.z.LineTo(f32(c))
	r.z.LineTo(f32(d))
	r.z.ClosePath()
}

func (r *Rasterizer) glyph(dst *image.RGBA, g scene.Glyph) {
	h := int(math.Round(g.Size))
	w := int(math.Round(g.Size * float64(r.glyphs.cellW) / float64(r.glyphs.cellH)))
	top := image.Pt(int(math.Round(g.Origin.X)), int(math.Round(g.Origin.Y))-h)
	r.drawGlyph(dst, g.Rune, image.Rectangle{Min: top, Max: top.Add(image.Pt(w, h))}, g.Color)
}

// drawGlyph paints r scaled into cell with colour c.
func (r *Rasterizer) drawGlyph(dst *image.RGBA, ch rune, cell image.Rectangle, c paint.Color) {
	m := r.glyphs.mask(ch, cell.Dx(), cell.Dy())
	if m == nil || c.IsTransparent() {
		return
	}
	xdraw.DrawMask(dst, cell, image.NewUniform(c), image.Point{}, m, image.Point{}, xdraw.Over)
}

func (r *Rasterizer) image(dst *image.RGBA, im scene.Image) {
	dr := image.Rect(
		int(math.Round(im.Dst.Min.X)), int(math.Round(im.Dst.Min.Y)),
		int(math.Round(im.Dst.Max.X)), int(math.Round(im.Dst.Max.Y)),
	)
	if dr.Empty() || !dr.Overlaps(dst.Bounds()) {
		return
	}
	var opts *xdraw.Options
	if im.Opacity < 1 {
		a := uint8(geom.Clamp(im.Opacity, 0, 1) * 255)
		opts = &xdraw.Options{DstMask: image.NewUniform(color.Alpha{A: a})}
	}
	xdraw.NearestNeighbor.Scale(dst, dr, im.Src, im.SrcRect, xdraw.Over, opts)
}

func f32(v geom.Vec2) (float32, float32) { return float32(v.X), float32(v.Y) }
