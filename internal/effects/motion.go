// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/motion.go
// Summary: Movement model shared by positional effects (bounce, scroll, float, orbit).
// Usage: Effects own a MotionState and replace it with Step(bounds, dt) every frame.
// Notes: Step is a pure value transform; dt <= 0 returns the state unchanged.

package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/framegrace/texelfx/internal/geom"
)

// MotionKind selects a movement model.
type MotionKind uint8

const (
	MotionNone MotionKind = iota
	MotionBounce
	MotionScroll
	MotionFloat
	MotionOrbit
)

var motionNames = []string{"none", "bounce", "scroll", "float", "orbit"}

func (m MotionKind) String() string {
	if int(m) < len(motionNames) {
		return motionNames[m]
	}
	return fmt.Sprintf("motion(%d)", uint8(m))
}

// ParseMotionKind resolves a motion name; "" means none.
func ParseMotionKind(s string) (MotionKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MotionNone, nil
	}
	for i, n := range motionNames {
		if n == s {
			return MotionKind(i), nil
		}
	}
	return MotionNone, fmt.Errorf("unknown motion %q", s)
}

// MotionBehavior holds the parameters of one movement model. Fields that do not
// apply to Kind are ignored.
type MotionBehavior struct {
	Kind MotionKind
	// Velocity is the bounce velocity or the scroll direction, px/s.
	Velocity geom.Vec2
	// Float: perturbation strength (px/s), band speed, damping (1/s) and seed.
	Amplitude float64
	Frequency float64
	Damping   float64
	Seed      uint64
	// Center is in unit bounds coordinates: the orbit centre, or the home a
	// floating entity drifts around.
	Center geom.Vec2
	// Orbit: Radius in px, Speed in rad/s.
	Radius float64
	Speed  float64
}

// DefaultMotion returns the stock parameters of kind scaled by speed.
func DefaultMotion(kind MotionKind, speed float64) MotionBehavior {
	switch kind {
	case MotionBounce:
		return MotionBehavior{Kind: kind, Velocity: geom.V(100*speed, 75*speed)}
	case MotionScroll:
		return MotionBehavior{Kind: kind, Velocity: geom.V(50*speed, 0)}
	case MotionFloat:
		return MotionBehavior{Kind: kind, Amplitude: 50 * speed, Frequency: 0.5 * math.Max(speed, 0.05), Damping: 2, Seed: 42, Center: geom.V(0.5, 0.5)}
	case MotionOrbit:
		return MotionBehavior{Kind: kind, Center: geom.V(0.5, 0.5), Radius: 100, Speed: speed}
	}
	return MotionBehavior{}
}

// MotionState is the per-entity movement state.
type MotionState struct {
	Position geom.Vec2
	Velocity geom.Vec2
	Behavior MotionBehavior
	// Phase is the orbit angle or the float noise clock.
	Phase float64
}

// NewMotionState places an entity at start and primes its velocity. Orbiting
// entities start at angle 0 on their circle.
func NewMotionState(b MotionBehavior, start geom.Vec2, bounds geom.Rect) MotionState {
	s := MotionState{Position: start, Behavior: b}
	switch b.Kind {
	case MotionBounce, MotionScroll:
		s.Velocity = b.Velocity
	case MotionOrbit:
		s.Position = orbitPoint(b, bounds, 0)
	}
	return s
}

// Retune swaps in a new behaviour while keeping position and travel direction.
func (s MotionState) Retune(b MotionBehavior, bounds geom.Rect) MotionState {
	if b.Kind != s.Behavior.Kind {
		return NewMotionState(b, s.Position, bounds)
	}
	s.Behavior = b
	switch b.Kind {
	case MotionBounce:
		s.Velocity = geom.V(withSign(b.Velocity.X, s.Velocity.X), withSign(b.Velocity.Y, s.Velocity.Y))
	case MotionScroll:
		s.Velocity = b.Velocity
	}
	return s
}

func withSign(mag, sign float64) float64 {
	if sign < 0 {
		return -math.Abs(mag)
	}
	return math.Abs(mag)
}

// Step advances the state by dt seconds inside bounds.
func (s MotionState) Step(bounds geom.Rect, dt float64) MotionState {
	if dt <= 0 {
		return s
	}
	switch s.Behavior.Kind {
	case MotionBounce:
		return s.bounce(bounds, dt)
	case MotionScroll:
		s.Position = s.Position.Add(s.Velocity.Scale(dt))
		s.Position.X = geom.Wrap(s.Position.X, bounds.Min.X, bounds.W())
		s.Position.Y = geom.Wrap(s.Position.Y, bounds.Min.Y, bounds.H())
		return s
	case MotionFloat:
		return s.float(bounds, dt)
	case MotionOrbit:
		s.Phase = math.Mod(s.Phase+s.Behavior.Speed*dt, 2*math.Pi)
		s.Position = orbitPoint(s.Behavior, bounds, s.Phase)
		return s
	}
	return s
}

func (s MotionState) bounce(bounds geom.Rect, dt float64) MotionState {
	p := s.Position.Add(s.Velocity.Scale(dt))
	v := s.Velocity
	if p.X < bounds.Min.X {
		p.X, v.X = bounds.Min.X, math.Abs(v.X)
	} else if p.X > bounds.Max.X {
		p.X, v.X = bounds.Max.X, -math.Abs(v.X)
	}
	if p.Y < bounds.Min.Y {
		p.Y, v.Y = bounds.Min.Y, math.Abs(v.Y)
	} else if p.Y > bounds.Max.Y {
		p.Y, v.Y = bounds.Max.Y, -math.Abs(v.Y)
	}
	s.Position, s.Velocity = p, v
	return s
}

// floatRestore pulls a floating entity back toward its home (1/s).
const floatRestore = 0.5

func (s MotionState) float(bounds geom.Rect, dt float64) MotionState {
	b := s.Behavior
	s.Phase += dt * b.Frequency
	target := b.Velocity.
		Add(geom.V(bandNoise(b.Seed, 0, s.Phase), bandNoise(b.Seed, 1, s.Phase)).Scale(b.Amplitude)).
		Add(bounds.Lerp(b.Center).Sub(s.Position).Scale(floatRestore))
	k := 1.0
	if b.Damping > 0 {
		k = 1 - math.Exp(-b.Damping*dt)
	}
	s.Velocity = s.Velocity.Add(target.Sub(s.Velocity).Scale(k))
	return s.bounce(bounds, dt)
}

// bandNoise sums three seeded sinusoids; the result is smooth in phase and
// bounded to [-1, 1].
func bandNoise(seed uint64, axis int, phase float64) float64 {
	var sum, norm float64
	for i, base := range [...]float64{1, 1.7, 2.9} {
		freq := base * (0.75 + 0.5*hash01(seed, axis*8+i, 1))
		shift := 2 * math.Pi * hash01(seed, axis*8+i, 2)
		amp := 1 / base
		sum += amp * math.Sin(2*math.Pi*freq*phase+shift)
		norm += amp
	}
	return sum / norm
}

func orbitPoint(b MotionBehavior, bounds geom.Rect, angle float64) geom.Vec2 {
	c := bounds.Lerp(b.Center)
	return geom.V(c.X+b.Radius*math.Cos(angle), c.Y+b.Radius*math.Sin(angle))
}
