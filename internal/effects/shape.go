// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/shape.go
// Summary: A single geometric primitive with fill, stroke, glow, rotation and motion.

package effects

import (
	"math"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
)

var shapeSchema = Schema{
	Group: "shape",
	Props: []Property{
		{Name: "type", Type: TypeEnum, Default: "rect", Values: []string{"rect", "circle", "ellipse", "triangle", "star", "heart", "polygon"}},
		{Name: "size", Type: TypeFloat, Default: 100.0, Min: 10, Max: 1000, Doc: "px"},
		{Name: "fill", Type: TypeColor, Default: "rgba(255,0,255,60)", Doc: "\"none\" disables the fill"},
		{Name: "stroke", Type: TypeColor, Default: "#ff00ff"},
		{Name: "stroke-width", Type: TypeFloat, Default: 2.0, Min: 0.5, Max: 20, Doc: "px"},
		{Name: "glow-radius", Type: TypeFloat, Default: 0.0, Min: 0, Max: 200, Doc: "px"},
		{Name: "glow-color", Type: TypeColor, Default: "transparent", Doc: "defaults to the fill colour"},
		{Name: "rotation", Type: TypeEnum, Default: "none", Values: []string{"none", "spin", "wobble"}},
		{Name: "rotation-speed", Type: TypeFloat, Default: 1.0, Min: 0, Max: 20, Doc: "rad/s"},
		{Name: "motion", Type: TypeEnum, Default: "none", Values: motionNames},
		{Name: "motion-speed", Type: TypeFloat, Default: 1.0, Min: 0, Max: 20},
		{Name: "polygon-sides", Type: TypeInt, Default: 6, Min: 3, Max: 12},
		{Name: "position", Type: TypeEnum, Default: "center", Values: anchorValues},
	},
}

// Shape renders one moving, optionally rotating primitive.
type Shape struct {
	settings
	typ         string
	size        float64
	fill        paint.Color
	stroke      paint.Color
	strokeWidth float64
	glowRadius  float64
	glowColor   paint.Color
	rotation    string
	rotSpeed    float64
	sides       int
	anchor      string
	behavior    MotionBehavior

	motion MotionState
	bounds geom.Rect
	placed bool
	time   float64
}

// NewShape returns a shape with default settings.
func NewShape() *Shape {
	s := &Shape{settings: newSettings(KindShape, &shapeSchema)}
	s.apply()
	return s
}

func (s *Shape) Kind() Kind { return KindShape }
func (s *Shape) Enabled() bool { return true }
func (s *Shape) Snapshot() EffectConfig { return s.snapshot() }

func (s *Shape) Configure(cfg EffectConfig) {
	changed := s.merge(cfg)
	if len(changed) == 0 {
		return
	}
	s.apply()
	for _, key := range changed {
		switch key {
		case "motion", "motion-speed":
			if s.placed {
				s.motion = s.motion.Retune(s.behavior, s.travel())
			}
		case "position", "size":
			if s.placed && s.behavior.Kind == MotionNone {
				s.motion.Position = anchorPoint(s.anchor, s.bounds, geom.V(s.size, s.size))
			}
		}
	}
}

func (s *Shape) apply() {
	s.typ = s.getString("type")
	s.size = s.getFloat("size")
	s.fill = s.getColor("fill")
	s.stroke = s.getColor("stroke")
	s.strokeWidth = s.getFloat("stroke-width")
	s.glowRadius = s.getFloat("glow-radius")
	s.glowColor = s.getColor("glow-color")
	s.rotation = s.getString("rotation")
	s.rotSpeed = s.getFloat("rotation-speed")
	s.sides = s.getInt("polygon-sides")
	s.anchor = s.getString("position")
	kind, _ := ParseMotionKind(s.getString("motion"))
	s.behavior = DefaultMotion(kind, s.getFloat("motion-speed"))
}

func (s *Shape) travel() geom.Rect {
	return travelBounds(s.bounds, geom.V(s.size, s.size))
}

func (s *Shape) Resize(b geom.Rect) {
	if b == s.bounds {
		return
	}
	s.bounds = b
	if b.Empty() {
		return
	}
	start := anchorPoint(s.anchor, b, geom.V(s.size, s.size))
	if !s.placed || s.behavior.Kind == MotionNone {
		s.motion = NewMotionState(s.behavior, start, s.travel())
		s.placed = true
		return
	}
	tb := s.travel()
	s.motion.Position.X = geom.Clamp(s.motion.Position.X, tb.Min.X, tb.Max.X)
	s.motion.Position.Y = geom.Clamp(s.motion.Position.Y, tb.Min.Y, tb.Max.Y)
}

func (s *Shape) Update(dt, t float64) {
	s.time = t
	if dt <= 0 || !s.placed {
		return
	}
	s.motion = s.motion.Step(s.travel(), dt)
}

// Position reports the shape's current centre.
func (s *Shape) Position() (geom.Vec2, bool) { return s.motion.Position, s.placed }

func (s *Shape) angle() float64 {
	switch s.rotation {
	case "spin":
		return s.time * s.rotSpeed
	case "wobble":
		return math.Sin(s.time*s.rotSpeed) * math.Pi / 4
	}
	return 0
}

func (s *Shape) path(c geom.Vec2, scale, rot float64) scene.Path {
	r := s.size / 2 * scale
	switch s.typ {
	case "circle":
		return scene.Circle(c, r)
	case "ellipse":
		return scene.Ellipse(c, r, r/2).Transform(func(p geom.Vec2) geom.Vec2 {
			return p.Sub(c).Rotate(rot).Add(c)
		})
	case "triangle":
		return scene.Triangle(c, r, rot)
	case "star":
		return scene.Star(c, r, 5, 0.4, rot)
	case "heart":
		return scene.Heart(c, r, rot)
	case "polygon":
		return scene.Polygon(c, r, s.sides, rot)
	}
	return scene.Polygon(c, r*math.Sqrt2, 4, rot+math.Pi/4)
}

func (s *Shape) Render(sc *scene.Scene, b geom.Rect) {
	if !s.placed || b.Empty() {
		return
	}
	c, rot := s.motion.Position, s.angle()
	if s.glowRadius > 0 {
		glow := s.glowColor
		if glow.IsTransparent() {
			glow = s.fill
			if glow.IsTransparent() {
				glow = s.stroke
			}
		}
		const layers = 4
		for i := layers; i >= 1; i-- {
			t := float64(i) / layers
			sc.FillPath(s.path(c, 1+s.glowRadius/s.size*t, rot), glow.Fade((1-t)*0.3))
		}
	}
	p := s.path(c, 1, rot)
	sc.FillPath(p, s.fill)
	sc.StrokePath(p, s.stroke, s.strokeWidth)
}
