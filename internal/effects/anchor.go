// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/anchor.go
// Summary: Named screen anchors for stationary shapes and sprites.

package effects

import "github.com/framegrace/texelfx/internal/geom"

// anchorPadding keeps anchored content off the viewport edge.
const anchorPadding = 20

var anchorValues = []string{"center", "top-left", "top", "top-right", "left", "right", "bottom-left", "bottom", "bottom-right"}

// anchorPoint returns the centre of an item of the given size placed at anchor.
func anchorPoint(anchor string, b geom.Rect, size geom.Vec2) geom.Vec2 {
	c := b.Center()
	left := b.Min.X + anchorPadding + size.X/2
	right := b.Max.X - anchorPadding - size.X/2
	top := b.Min.Y + anchorPadding + size.Y/2
	bottom := b.Max.Y - anchorPadding - size.Y/2
	switch anchor {
	case "top-left":
		return geom.V(left, top)
	case "top":
		return geom.V(c.X, top)
	case "top-right":
		return geom.V(right, top)
	case "left":
		return geom.V(left, c.Y)
	case "right":
		return geom.V(right, c.Y)
	case "bottom-left":
		return geom.V(left, bottom)
	case "bottom":
		return geom.V(c.X, bottom)
	case "bottom-right":
		return geom.V(right, bottom)
	}
	return c
}

// travelBounds is the region an item's centre may occupy while staying fully visible.
func travelBounds(b geom.Rect, size geom.Vec2) geom.Rect {
	return b.Inset(size.X/2, size.Y/2)
}
