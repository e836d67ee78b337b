// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/geom/geom.go
// Summary: Pixel-space vector and rectangle types shared by effects and passes.

package geom

import "math"

// Vec2 is a point or displacement in pixel space.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Eq(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Rotate returns v rotated by theta radians around the origin.
func (v Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Rect is an axis-aligned rectangle. Max is exclusive.
type Rect struct {
	Min, Max Vec2
}

// R builds a rectangle from origin and size.
func R(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

func (r Rect) W() float64 { return r.Max.X - r.Min.X }
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec2 { return Vec2{r.W(), r.H()} }
func (r Rect) Center() Vec2 { return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2} }
func (r Rect) Empty() bool { return r.W() <= 0 || r.H() <= 0 }
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Inset shrinks the rectangle by dx, dy on each side. The result never inverts;
// an over-inset axis collapses to its midpoint.
func (r Rect) Inset(dx, dy float64) Rect {
	out := Rect{Min: Vec2{r.Min.X + dx, r.Min.Y + dy}, Max: Vec2{r.Max.X - dx, r.Max.Y - dy}}
	if out.Min.X > out.Max.X {
		mid := (r.Min.X + r.Max.X) / 2
		out.Min.X, out.Max.X = mid, mid
	}
	if out.Min.Y > out.Max.Y {
		mid := (r.Min.Y + r.Max.Y) / 2
		out.Min.Y, out.Max.Y = mid, mid
	}
	return out
}

// Lerp maps unit coordinates u (0..1 per axis) into the rectangle.
func (r Rect) Lerp(u Vec2) Vec2 {
	return Vec2{r.Min.X + u.X*r.W(), r.Min.Y + u.Y*r.H()}
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap returns v folded into [lo, lo+extent). A non-positive extent yields lo.
func Wrap(v, lo, extent float64) float64 {
	if extent <= 0 {
		return lo
	}
	m := math.Mod(v-lo, extent)
	if m < 0 {
		m += extent
	}
	// math.Mod can return extent itself for tiny negative inputs after the add.
	if m >= extent {
		m = 0
	}
	return lo + m
}

// Smoothstep is the Hermite step between edge0 and edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
