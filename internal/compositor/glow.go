// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/glow.go
// Summary: Cursor glow, recomputed only when its inputs change.

package compositor

import (
	"image"

	"github.com/framegrace/texelfx/internal/paint"
)

// glowKey captures everything that determines the glow texture.
type glowKey struct {
	size      image.Point
	cursor    image.Rectangle
	shape     string
	color     paint.Color
	radius    int
	intensity float64
	gen       uint64
}

type glowCache struct {
	key   glowKey
	valid bool
	runs  int
}

// stale reports whether the cached glow must be rebuilt for k.
func (g *glowCache) stale(k glowKey) bool { return !g.valid || g.key != k }

func (g *glowCache) store(k glowKey) {
	g.key = k
	g.valid = true
	g.runs++
}

func (g *glowCache) invalidate() { g.valid = false }

// scaleAlpha multiplies every pixel of a premultiplied image by k.
func scaleAlpha(img *image.RGBA, k float64) {
	if k >= 1 {
		return
	}
	f := int(k * 256)
	for i := range img.Pix {
		img.Pix[i] = uint8(int(img.Pix[i]) * f >> 8)
	}
}
