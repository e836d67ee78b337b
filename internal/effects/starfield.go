// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/starfield.go
// Summary: Parallax starfield with per-layer speed and sinusoidal twinkle.
// Usage: Star attributes are hashed from the seed, positions are a function of time.

package effects

import (
	"math"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
)

var starfieldSchema = Schema{
	Group: "starfield",
	Props: []Property{
		{Name: "color", Type: TypeColor, Default: "#ffffff"},
		{Name: "density", Type: TypeInt, Default: 100, Min: 10, Max: 1000, Doc: "stars per layer"},
		{Name: "layers", Type: TypeInt, Default: 3, Min: 1, Max: 5, Doc: "parallax layers"},
		{Name: "speed", Type: TypeFloat, Default: 0.3, Min: 0, Max: 10},
		{Name: "direction", Type: TypeEnum, Default: "down", Values: []string{"static", "up", "down", "left", "right"}},
		{Name: "twinkle", Type: TypeBool, Default: true},
		{Name: "twinkle-speed", Type: TypeFloat, Default: 2.0, Min: 0, Max: 20},
		{Name: "min-size", Type: TypeFloat, Default: 1.0, Min: 0.5, Max: 10, Doc: "px"},
		{Name: "max-size", Type: TypeFloat, Default: 3.0, Min: 0.5, Max: 10, Doc: "px"},
		{Name: "glow-radius", Type: TypeFloat, Default: 0.0, Min: 0, Max: 20, Doc: "px"},
		{Name: "glow-intensity", Type: TypeFloat, Default: 0.0, Min: 0, Max: 1},
		{Name: "seed", Type: TypeInt, Default: 12345, Min: 0, Max: math.MaxInt32},
	},
}

type star struct {
	x, y       float64
	size       float64
	brightness float64
	layer      int
	phase      float64
}

// Starfield renders layered, optionally twinkling stars.
type Starfield struct {
	settings
	color         paint.Color
	layers        int
	speed         float64
	dir           geom.Vec2
	twinkle       bool
	twinkleSpeed  float64
	minSize       float64
	maxSize       float64
	glowRadius    float64
	glowIntensity float64

	stars []star
	time  float64
}

// NewStarfield returns a starfield with default settings.
func NewStarfield() *Starfield {
	s := &Starfield{settings: newSettings(KindStarfield, &starfieldSchema)}
	s.apply()
	s.generate()
	return s
}

func (s *Starfield) Kind() Kind { return KindStarfield }
func (s *Starfield) Enabled() bool { return true }
func (s *Starfield) Snapshot() EffectConfig { return s.snapshot() }
func (s *Starfield) Resize(geom.Rect) {}

func (s *Starfield) Configure(cfg EffectConfig) {
	changed := s.merge(cfg)
	if len(changed) == 0 {
		return
	}
	s.apply()
	for _, key := range changed {
		if key == "density" || key == "layers" || key == "seed" {
			s.generate()
			break
		}
	}
}

func (s *Starfield) apply() {
	s.color = s.getColor("color")
	s.layers = s.getInt("layers")
	s.speed = s.getFloat("speed")
	s.twinkle = s.getBool("twinkle")
	s.twinkleSpeed = s.getFloat("twinkle-speed")
	s.minSize = s.getFloat("min-size")
	s.maxSize = math.Max(s.getFloat("max-size"), s.minSize)
	s.glowRadius = s.getFloat("glow-radius")
	s.glowIntensity = s.getFloat("glow-intensity")
	switch s.getString("direction") {
	case "up":
		s.dir = geom.V(0, -1)
	case "down":
		s.dir = geom.V(0, 1)
	case "left":
		s.dir = geom.V(-1, 0)
	case "right":
		s.dir = geom.V(1, 0)
	default:
		s.dir = geom.Vec2{}
	}
}

func (s *Starfield) generate() {
	seed := uint64(s.getInt("seed"))
	total := s.getInt("density") * s.layers
	s.stars = s.stars[:0]
	for i := 0; i < total; i++ {
		s.stars = append(s.stars, star{
			x:          hash01(seed, i*5, 0),
			y:          hash01(seed, i*5+1, 0),
			size:       hash01(seed, i*5+2, 0),
			brightness: 0.5 + 0.5*hash01(seed, i*5+3, 0),
			layer:      i % s.layers,
			phase:      2 * math.Pi * hash01(seed, i*5+4, 0),
		})
	}
}

// Update records absolute time; star positions and twinkle derive from it.
func (s *Starfield) Update(_, t float64) {
	s.time = t
}

func (s *Starfield) position(st star, b geom.Rect) geom.Vec2 {
	layerSpeed := 0.2 + float64(st.layer)/float64(s.layers)*0.8
	travel := s.time * s.speed * layerSpeed * 50
	x := st.x*b.W() + s.dir.X*travel
	y := st.y*b.H() + s.dir.Y*travel
	return geom.V(geom.Wrap(x, 0, b.W())+b.Min.X, geom.Wrap(y, 0, b.H())+b.Min.Y)
}

func (s *Starfield) Render(sc *scene.Scene, b geom.Rect) {
	if b.Empty() || len(s.stars) == 0 {
		return
	}
	// Back layers first so nearer stars draw on top.
	for layer := 0; layer < s.layers; layer++ {
		depth := float64(layer) / float64(s.layers)
		for _, st := range s.stars {
			if st.layer != layer {
				continue
			}
			brightness := st.brightness * (0.3 + depth*0.7)
			if s.twinkle {
				brightness *= 0.6 + 0.4*math.Sin(s.time*s.twinkleSpeed+st.phase)
			}
			c := s.color.Fade(brightness)
			if c.A < 5 {
				continue
			}
			radius := (s.minSize + st.size*(s.maxSize-s.minSize)) * (0.4 + depth*0.6)
			s.drawStar(sc, s.position(st, b), radius, c)
		}
	}
}

func (s *Starfield) drawStar(sc *scene.Scene, at geom.Vec2, r float64, c paint.Color) {
	if s.glowRadius > 0 && s.glowIntensity > 0 {
		const layers = 3
		for i := layers - 1; i >= 0; i-- {
			t := float64(i+1) / layers
			sc.FillPath(scene.Circle(at, r+s.glowRadius*t), c.Fade(s.glowIntensity*(1-t)*0.4))
		}
	}
	sc.FillPath(scene.Circle(at, r), c)
}
