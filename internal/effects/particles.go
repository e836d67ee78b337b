// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/particles.go
// Summary: Independently moving particles, each driven by its own MotionState.
// Usage: behavior selects the motion model; rise/fall/drift are scrolls in fixed directions.

package effects

import (
	"math"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
)

var particlesSchema = Schema{
	Group: "particles",
	Props: []Property{
		{Name: "color", Type: TypeColor, Default: "rgba(255,255,255,200)"},
		{Name: "count", Type: TypeInt, Default: 50, Min: 1, Max: 500},
		{Name: "shape", Type: TypeEnum, Default: "dot", Values: []string{"dot", "circle", "star", "heart", "sparkle"}},
		{Name: "behavior", Type: TypeEnum, Default: "float", Values: []string{"float", "drift", "rise", "fall", "bounce", "orbit"}},
		{Name: "size", Type: TypeFloat, Default: 4.0, Min: 1, Max: 50, Doc: "px"},
		{Name: "speed", Type: TypeFloat, Default: 1.0, Min: 0, Max: 10},
		{Name: "glow-radius", Type: TypeFloat, Default: 0.0, Min: 0, Max: 30, Doc: "px"},
		{Name: "glow-intensity", Type: TypeFloat, Default: 0.0, Min: 0, Max: 1},
		{Name: "seed", Type: TypeInt, Default: 98765, Min: 0, Max: math.MaxInt32},
	},
}

type particle struct {
	home       geom.Vec2 // unit coordinates
	scale      float64
	speed      float64
	brightness float64
	phase      float64
	rotation   float64
	spin       float64
	motion     MotionState
}

// Particles renders a swarm of small shapes.
type Particles struct {
	settings
	color         paint.Color
	shape         string
	behavior      string
	size          float64
	speed         float64
	glowRadius    float64
	glowIntensity float64
	seed          uint64

	items  []particle
	bounds geom.Rect
	placed bool
	time   float64
}

// NewParticles returns particles with default settings.
func NewParticles() *Particles {
	p := &Particles{settings: newSettings(KindParticles, &particlesSchema)}
	p.apply()
	p.generate()
	return p
}

func (p *Particles) Kind() Kind { return KindParticles }
func (p *Particles) Enabled() bool { return true }
func (p *Particles) Snapshot() EffectConfig { return p.snapshot() }

func (p *Particles) Configure(cfg EffectConfig) {
	changed := p.merge(cfg)
	if len(changed) == 0 {
		return
	}
	p.apply()
	regen, retune := false, false
	for _, key := range changed {
		switch key {
		case "count", "seed":
			regen = true
		case "behavior", "speed":
			retune = true
		}
	}
	switch {
	case regen:
		p.generate()
	case retune:
		for i := range p.items {
			p.items[i].motion = p.items[i].motion.Retune(p.behaviorFor(i, p.items[i]), p.bounds)
		}
	}
}

func (p *Particles) apply() {
	p.color = p.getColor("color")
	p.shape = p.getString("shape")
	p.behavior = p.getString("behavior")
	p.size = p.getFloat("size")
	p.speed = p.getFloat("speed")
	p.glowRadius = p.getFloat("glow-radius")
	p.glowIntensity = p.getFloat("glow-intensity")
	p.seed = uint64(p.getInt("seed"))
}

func (p *Particles) generate() {
	n := p.getInt("count")
	p.items = make([]particle, n)
	for i := range p.items {
		it := &p.items[i]
		it.home = geom.V(hash01(p.seed, i*8, 0), hash01(p.seed, i*8+1, 0))
		it.scale = 0.5 + hash01(p.seed, i*8+2, 0)
		it.speed = 0.5 + hash01(p.seed, i*8+3, 0)
		it.brightness = 0.5 + 0.5*hash01(p.seed, i*8+4, 0)
		it.phase = 2 * math.Pi * hash01(p.seed, i*8+5, 0)
		it.rotation = 2 * math.Pi * hash01(p.seed, i*8+6, 0)
		it.spin = (hash01(p.seed, i*8+7, 0) - 0.5) * 0.6
	}
	p.placed = false
	p.place()
}

// behaviorFor maps the configured behaviour onto a MotionBehavior for particle i.
func (p *Particles) behaviorFor(i int, it particle) MotionBehavior {
	v := p.speed * it.speed
	switch p.behavior {
	case "drift":
		return MotionBehavior{Kind: MotionScroll, Velocity: geom.V(40*v, 0)}
	case "rise":
		return MotionBehavior{Kind: MotionScroll, Velocity: geom.V(0, -50*v)}
	case "fall":
		return MotionBehavior{Kind: MotionScroll, Velocity: geom.V(0, 50*v)}
	case "bounce":
		dir := geom.V(1, 0).Rotate(it.phase)
		return MotionBehavior{Kind: MotionBounce, Velocity: dir.Scale(60 * v)}
	case "orbit":
		sign := 1.0
		if i%2 == 1 {
			sign = -1
		}
		return MotionBehavior{Kind: MotionOrbit, Center: it.home, Radius: 20 + 60*hash01(p.seed, i, 9), Speed: sign * 0.5 * v}
	}
	return MotionBehavior{
		Kind:      MotionFloat,
		Amplitude: 30 * v,
		Frequency: 0.3 * math.Max(v, 0.05),
		Damping:   1.5,
		Seed:      p.seed + uint64(i),
		Center:    it.home,
	}
}

// place seeds motion states once bounds are known.
func (p *Particles) place() {
	if p.bounds.Empty() || p.placed {
		return
	}
	for i := range p.items {
		it := &p.items[i]
		it.motion = NewMotionState(p.behaviorFor(i, *it), p.bounds.Lerp(it.home), p.bounds)
	}
	p.placed = true
}

// Resize rescales particle positions proportionally into the new bounds.
func (p *Particles) Resize(b geom.Rect) {
	if b == p.bounds {
		return
	}
	old := p.bounds
	p.bounds = b
	if !p.placed {
		p.place()
		return
	}
	for i := range p.items {
		m := &p.items[i].motion
		u := geom.V(0.5, 0.5)
		if !old.Empty() {
			u = geom.V((m.Position.X-old.Min.X)/old.W(), (m.Position.Y-old.Min.Y)/old.H())
		}
		m.Position = b.Lerp(u)
	}
}

func (p *Particles) Update(dt, t float64) {
	p.time = t
	if dt <= 0 || !p.placed {
		return
	}
	for i := range p.items {
		it := &p.items[i]
		it.motion = it.motion.Step(p.bounds, dt)
		it.rotation += it.spin * p.speed * dt
	}
}

func (p *Particles) Render(sc *scene.Scene, b geom.Rect) {
	if !p.placed || b.Empty() {
		return
	}
	for _, it := range p.items {
		pos := it.motion.Position
		// Scrolling particles sway sideways around their lane.
		if p.behavior == "rise" || p.behavior == "fall" {
			pos.X += math.Sin(p.time*p.speed*it.speed*0.5+it.phase) * 20
		} else if p.behavior == "drift" {
			pos.Y += math.Sin(p.time*p.speed*it.speed+it.phase) * 15
		}
		c := p.color.Fade(it.brightness * (0.75 + 0.25*math.Sin(p.time*1.5+it.phase)))
		r := p.size * it.scale
		if p.glowRadius > 0 && p.glowIntensity > 0 {
			for i := 2; i >= 0; i-- {
				t := float64(i+1) / 3
				sc.FillPath(scene.Circle(pos, r+p.glowRadius*t), c.Fade(p.glowIntensity*(1-t)*0.5))
			}
		}
		p.drawShape(sc, pos, r, it.rotation, c)
	}
}

func (p *Particles) drawShape(sc *scene.Scene, at geom.Vec2, r, rot float64, c paint.Color) {
	switch p.shape {
	case "circle":
		sc.StrokePath(scene.Circle(at, r), c, math.Max(1, r*0.25))
	case "star":
		sc.FillPath(scene.Star(at, r, 5, 0.45, rot), c)
	case "heart":
		sc.FillPath(scene.Heart(at, r, rot), c)
	case "sparkle":
		sc.FillPath(scene.Sparkle(at, r*1.4, rot), c)
	default:
		sc.FillPath(scene.Circle(at, r*0.5), c)
	}
}

// Positions returns the live particle positions.
func (p *Particles) Positions() []geom.Vec2 {
	out := make([]geom.Vec2, len(p.items))
	for i, it := range p.items {
		out[i] = it.motion.Position
	}
	return out
}
