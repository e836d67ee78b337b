// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/glyphs.go
// Summary: Scaled glyph masks cut from the built-in bitmap face.
// Notes: Masks are cached per rune and pixel size; the cache is bounded and reset when full.

package compositor

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const glyphCacheLimit = 4096

type glyphKey struct {
	r    rune
	w, h int
}

type glyphCache struct {
	face  font.Face
	cellW int
	cellH int
	masks map[glyphKey]*image.Alpha
}

func newGlyphCache() *glyphCache {
	face := basicfont.Face7x13
	m := face.Metrics()
	return &glyphCache{
		face:  face,
		cellW: face.Advance,
		cellH: (m.Ascent + m.Descent).Ceil(),
		masks: make(map[glyphKey]*image.Alpha),
	}
}

// mask returns the coverage of r scaled to w x h, or nil when the face has
// no glyph for it.
func (c *glyphCache) mask(r rune, w, h int) *image.Alpha {
	if w <= 0 || h <= 0 {
		return nil
	}
	key := glyphKey{r: r, w: w, h: h}
	if m, ok := c.masks[key]; ok {
		return m
	}
	base := c.native(r)
	if base == nil {
		return nil
	}
	out := base
	if w != base.Rect.Dx() || h != base.Rect.Dy() {
		out = image.NewAlpha(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(out, out.Rect, base, base.Rect, xdraw.Src, nil)
	}
	if len(c.masks) >= glyphCacheLimit {
		c.masks = make(map[glyphKey]*image.Alpha)
	}
	c.masks[key] = out
	return out
}

// native renders r at the face's own size into a cell-sized mask.
func (c *glyphCache) native(r rune) *image.Alpha {
	dot := fixed.P(0, c.face.Metrics().Ascent.Ceil())
	dr, src, sp, _, ok := c.face.Glyph(dot, r)
	if !ok {
		return nil
	}
	out := image.NewAlpha(image.Rect(0, 0, c.cellW, c.cellH))
	draw.Draw(out, dr.Intersect(out.Rect), src, sp, draw.Src)
	return out
}
