// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/grid.go
// Summary: Perspective "synthwave" floor grid below a horizon line.
// Usage: Horizontal lines scroll toward the viewer; vertical lines fan out from the vanishing point.

package effects

import (
	"math"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
)

var gridSchema = Schema{
	Group: "grid",
	Props: []Property{
		{Name: "color", Type: TypeColor, Default: "rgba(0,255,255,40)", Doc: "line colour"},
		{Name: "spacing", Type: TypeFloat, Default: 8.0, Min: 2, Max: 100, Doc: "line density; 2*spacing lines per axis"},
		{Name: "line-width", Type: TypeFloat, Default: 1.0, Min: 0.5, Max: 10, Doc: "base stroke width, px"},
		{Name: "perspective", Type: TypeFloat, Default: 2.0, Min: 0.5, Max: 5, Doc: "power-law depth exponent"},
		{Name: "horizon", Type: TypeFloat, Default: 0.3, Min: 0, Max: 1, Doc: "horizon height as a fraction of the viewport"},
		{Name: "animation-speed", Type: TypeFloat, Default: 0.5, Min: 0, Max: 10, Doc: "scroll speed multiplier"},
		{Name: "intensity", Type: TypeFloat, Default: 1.0, Min: 0, Max: 1, Doc: "overall opacity"},
	},
}

// Grid draws a perspective-mapped line grid.
type Grid struct {
	settings
	color       paint.Color
	spacing     float64
	lineWidth   float64
	perspective float64
	horizon     float64
	speed       float64
	intensity   float64

	offset float64
}

// NewGrid returns a grid with default settings.
func NewGrid() *Grid {
	g := &Grid{settings: newSettings(KindGrid, &gridSchema)}
	g.apply()
	return g
}

func (g *Grid) Kind() Kind { return KindGrid }
func (g *Grid) Enabled() bool { return true }
func (g *Grid) Snapshot() EffectConfig { return g.snapshot() }
func (g *Grid) Resize(geom.Rect) {}

func (g *Grid) Configure(cfg EffectConfig) {
	if len(g.merge(cfg)) > 0 {
		g.apply()
	}
}

func (g *Grid) apply() {
	g.color = g.getColor("color")
	g.spacing = g.getFloat("spacing")
	g.lineWidth = g.getFloat("line-width")
	g.perspective = g.getFloat("perspective")
	g.horizon = g.getFloat("horizon")
	g.speed = g.getFloat("animation-speed")
	g.intensity = g.getFloat("intensity")
}

// Update derives the scroll offset from absolute time, so it is stable for dt == 0.
func (g *Grid) Update(_, t float64) {
	g.offset = t * g.speed
}

// distanceFade fades in over the first ~15% below the horizon and slightly
// toward the viewer.
func (g *Grid) distanceFade(t float64) float64 {
	return math.Min(t*6.67, 1) * (1 - 0.3*t) * g.intensity
}

func (g *Grid) Render(sc *scene.Scene, b geom.Rect) {
	if g.intensity <= 0 || b.Empty() {
		return
	}
	horizonY := b.Min.Y + b.H()*g.horizon
	floor := b.Max.Y - horizonY
	if floor <= 0 {
		return
	}
	n := int(g.spacing * 2)
	phase := g.offset * 0.1

	for i := 0; i < n; i++ {
		base := math.Mod(float64(i)/float64(n)+phase, 1)
		y := horizonY + math.Pow(base, g.perspective)*floor
		t := (y - horizonY) / floor
		fade := geom.Smoothstep(0, 0.15, t) * g.distanceFade(t)
		if fade <= 0.01 {
			continue
		}
		sc.Line(geom.V(b.Min.X, y), geom.V(b.Max.X, y), g.color.Fade(fade), g.lineWidth*(0.5+1.5*t))
	}

	half := n / 2
	if half == 0 {
		return
	}
	cx := b.Min.X + b.W()/2
	for i := 0; i <= n; i++ {
		x := float64(i-half) / float64(half)
		bottom := cx + x*b.W()*0.5
		top := cx + x*b.W()*0.1*math.Sqrt(math.Abs(x))
		alpha := g.intensity * (1 - 0.3*math.Abs(x))
		sc.Line(geom.V(top, horizonY), geom.V(bottom, b.Max.Y), g.color.Fade(alpha), g.lineWidth)
	}
}
