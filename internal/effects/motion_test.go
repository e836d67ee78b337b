// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelfx/internal/geom"
)

var testBounds = geom.R(0, 0, 200, 100)

func TestBounceReflectsPerpendicularComponent(t *testing.T) {
	b := MotionBehavior{Kind: MotionBounce, Velocity: geom.V(100, 40)}
	s := NewMotionState(b, geom.V(195, 50), testBounds)

	s = s.Step(testBounds, 0.1)

	assert.Equal(t, 200.0, s.Position.X)
	assert.Equal(t, -100.0, s.Velocity.X, "x flips with magnitude preserved")
	assert.Equal(t, 40.0, s.Velocity.Y, "y untouched")

	s = NewMotionState(b, geom.V(50, 98), testBounds)
	s = s.Step(testBounds, 0.1)
	assert.Equal(t, 100.0, s.Position.Y)
	assert.Equal(t, -40.0, s.Velocity.Y)
	assert.Equal(t, 100.0, s.Velocity.X)
}

func TestBounceStaysInBounds(t *testing.T) {
	s := NewMotionState(DefaultMotion(MotionBounce, 7), testBounds.Center(), testBounds)
	for i := 0; i < 2000; i++ {
		prev := s.Velocity
		s = s.Step(testBounds, 1.0/60)
		require.True(t, s.Position.X >= 0 && s.Position.X <= 200, "x=%v", s.Position.X)
		require.True(t, s.Position.Y >= 0 && s.Position.Y <= 100, "y=%v", s.Position.Y)
		assert.Equal(t, math.Abs(prev.X), math.Abs(s.Velocity.X))
		assert.Equal(t, math.Abs(prev.Y), math.Abs(s.Velocity.Y))
	}
}

func TestScrollWrapsToroidally(t *testing.T) {
	s := NewMotionState(MotionBehavior{Kind: MotionScroll, Velocity: geom.V(330, -170)}, geom.V(10, 10), testBounds)
	for i := 0; i < 500; i++ {
		s = s.Step(testBounds, 1.0/30)
		require.True(t, testBounds.Contains(s.Position), "step %d: %v", i, s.Position)
		assert.Equal(t, geom.Wrap(s.Position.X, 0, 200), s.Position.X)
		assert.Equal(t, geom.Wrap(s.Position.Y, 0, 100), s.Position.Y)
	}
}

func TestStepWithZeroDtIsIdentity(t *testing.T) {
	for _, k := range []MotionKind{MotionNone, MotionBounce, MotionScroll, MotionFloat, MotionOrbit} {
		s := NewMotionState(DefaultMotion(k, 1), geom.V(40, 40), testBounds)
		s = s.Step(testBounds, 0.25)
		assert.Equal(t, s, s.Step(testBounds, 0), k.String())
		assert.Equal(t, s, s.Step(testBounds, -1), k.String())
	}
}

func TestNoneNeverMoves(t *testing.T) {
	s := NewMotionState(DefaultMotion(MotionNone, 3), geom.V(12, 34), testBounds)
	for i := 0; i < 10; i++ {
		s = s.Step(testBounds, 0.5)
	}
	assert.Equal(t, geom.V(12, 34), s.Position)
}

func TestOrbitTracksCircle(t *testing.T) {
	b := geom.R(0, 0, 400, 400)
	s := NewMotionState(DefaultMotion(MotionOrbit, 1), geom.Vec2{}, b)
	assert.True(t, s.Position.Eq(geom.V(300, 200), 1e-9))

	s = s.Step(b, 1)
	want := geom.V(200+100*math.Cos(1), 200+100*math.Sin(1))
	assert.True(t, s.Position.Eq(want, 1e-9), "got %v want %v", s.Position, want)
	assert.InDelta(t, 100, s.Position.Sub(b.Center()).Len(), 1e-9)
}

func TestFloatIsSmoothAndBounded(t *testing.T) {
	s := NewMotionState(DefaultMotion(MotionFloat, 1), testBounds.Center(), testBounds)
	dt := 1.0 / 60
	var prev geom.Vec2
	for i := 0; i < 3000; i++ {
		s = s.Step(testBounds, dt)
		require.True(t, s.Position.X >= 0 && s.Position.X <= 200)
		require.True(t, s.Position.Y >= 0 && s.Position.Y <= 100)
		if i > 0 {
			jump := s.Velocity.Sub(prev).Len()
			if s.Position.X > 0 && s.Position.X < 200 && s.Position.Y > 0 && s.Position.Y < 100 {
				assert.Less(t, jump, 10.0, "velocity jump at step %d", i)
			}
		}
		prev = s.Velocity
	}
}

func TestFloatIsDeterministic(t *testing.T) {
	a := NewMotionState(DefaultMotion(MotionFloat, 2), geom.V(50, 50), testBounds)
	b := a
	for i := 0; i < 100; i++ {
		a = a.Step(testBounds, 0.02)
		b = b.Step(testBounds, 0.02)
	}
	assert.Equal(t, a, b)
}

func TestRetuneKeepsPositionAndDirection(t *testing.T) {
	s := NewMotionState(DefaultMotion(MotionBounce, 1), geom.V(50, 50), testBounds)
	s.Velocity = geom.V(-100, 75)

	r := s.Retune(DefaultMotion(MotionBounce, 2), testBounds)
	assert.Equal(t, s.Position, r.Position)
	assert.Equal(t, geom.V(-200, 150), r.Velocity)

	r = s.Retune(DefaultMotion(MotionScroll, 1), testBounds)
	assert.Equal(t, s.Position, r.Position)
	assert.Equal(t, MotionScroll, r.Behavior.Kind)
}

func TestParseMotionKind(t *testing.T) {
	k, err := ParseMotionKind(" Orbit ")
	require.NoError(t, err)
	assert.Equal(t, MotionOrbit, k)

	_, err = ParseMotionKind("zigzag")
	assert.Error(t, err)
}
