// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/matrix.go
// Summary: Falling columns of glyphs with a bright head and a fading trail.
// Usage: Column heads advance by dt; glyph churn and respawn are hashed from time so replays match.
// Notes: No state changes when dt == 0.

package effects

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
)

const (
	matrixTrailGlyphs = 20
	matrixDefaultSet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ@#$%&*+=<>"
)

var matrixSchema = Schema{
	Group: "matrix",
	Props: []Property{
		{Name: "color", Type: TypeColor, Default: "#00ff46"},
		{Name: "charset", Type: TypeString, Default: matrixDefaultSet},
		{Name: "density", Type: TypeFloat, Default: 1.0, Min: 0.1, Max: 3, Doc: "100*density columns"},
		{Name: "speed", Type: TypeFloat, Default: 0.3, Min: 0.05, Max: 1, Doc: "screen heights per second"},
		{Name: "font-size", Type: TypeFloat, Default: 14.0, Min: 8, Max: 32, Doc: "glyph height, px"},
		{Name: "seed", Type: TypeInt, Default: 424242, Min: 0, Max: math.MaxInt32},
	},
}

type column struct {
	x      float64
	headY  float64
	trail  float64
	speed  float64
	active bool
	delay  float64
	glyphs [matrixTrailGlyphs]int
}

// Matrix renders the falling-code effect.
type Matrix struct {
	settings
	color    paint.Color
	charset  []rune
	speed    float64
	fontSize float64
	seed     uint64

	columns []column
}

// NewMatrix returns the effect with default settings.
func NewMatrix() *Matrix {
	m := &Matrix{settings: newSettings(KindMatrix, &matrixSchema)}
	m.apply()
	m.generate()
	return m
}

func (m *Matrix) Kind() Kind { return KindMatrix }
func (m *Matrix) Enabled() bool { return true }
func (m *Matrix) Snapshot() EffectConfig { return m.snapshot() }
func (m *Matrix) Resize(geom.Rect) {}

func (m *Matrix) Configure(cfg EffectConfig) {
	changed := m.merge(cfg)
	if len(changed) == 0 {
		return
	}
	m.apply()
	for _, key := range changed {
		if key == "density" || key == "seed" || key == "charset" {
			m.generate()
			break
		}
	}
}

func (m *Matrix) apply() {
	m.color = m.getColor("color")
	m.charset = []rune(m.getString("charset"))
	if len(m.charset) == 0 {
		m.charset = []rune(matrixDefaultSet)
	}
	m.speed = m.getFloat("speed")
	m.fontSize = m.getFloat("font-size")
	m.seed = uint64(m.getInt("seed"))
}

func (m *Matrix) generate() {
	n := int(math.Round(100 * m.getFloat("density")))
	m.columns = make([]column, n)
	for i := range m.columns {
		c := &m.columns[i]
		c.x = float64(i) / float64(n)
		c.respawn(m, i, 0, -0.5*hash01(m.seed, i, 0))
	}
}

func (c *column) respawn(m *Matrix, idx int, salt uint64, headY float64) {
	c.headY = headY
	c.trail = 0.15 + 0.25*hash01(m.seed, idx, salt+1)
	c.speed = 0.7 + 0.6*hash01(m.seed, idx, salt+2)
	c.active = true
	c.delay = 0
	for j := range c.glyphs {
		c.glyphs[j] = int(hash01(m.seed, idx*matrixTrailGlyphs+j, salt+3) * float64(len(m.charset)))
	}
}

// Update advances heads by dt and churns glyphs. Churn and respawn draw their
// randomness from the millisecond clock so equal inputs give equal states.
func (m *Matrix) Update(dt, t float64) {
	if dt <= 0 {
		return
	}
	tick := uint64(t * 1000)
	for i := range m.columns {
		c := &m.columns[i]
		if !c.active {
			c.delay -= dt
			if c.delay <= 0 {
				c.respawn(m, i, tick<<8, -0.2*hash01(m.seed, i, tick<<8))
			}
			continue
		}
		c.headY += m.speed * c.speed * dt
		if hash01(m.seed, i, tick*4+1) < 0.1 {
			j := int(hash01(m.seed, i, tick*4+2) * matrixTrailGlyphs)
			c.glyphs[j] = int(hash01(m.seed, i, tick*4+3) * float64(len(m.charset)))
		}
		if c.headY > 1+c.trail {
			c.active = false
			c.delay = 2 * hash01(m.seed, i, tick*4+4)
		}
	}
}

func (m *Matrix) Render(sc *scene.Scene, b geom.Rect) {
	if b.Empty() || len(m.columns) == 0 {
		return
	}
	h := b.H()
	step := m.fontSize
	head := paint.Color{
		R: uint8(math.Min(255, 200+float64(m.color.R)*0.22)),
		G: 255,
		B: uint8(math.Min(255, 200+float64(m.color.B)*0.22)),
		A: 255,
	}
	for _, c := range m.columns {
		if !c.active && c.delay > 0.5 {
			continue
		}
		x := b.Min.X + c.x*b.W()
		headY := b.Min.Y + c.headY*h
		n := int(c.trail * h / step)
		if n > matrixTrailGlyphs {
			n = matrixTrailGlyphs
		}
		for i := 0; i < n; i++ {
			y := headY - float64(i)*step
			if y < b.Min.Y-step || y > b.Max.Y+step {
				continue
			}
			col := head
			if i > 0 {
				fade := 1 - float64(i)/float64(n)
				col = m.color.WithAlpha(fade * fade * 200 / 255)
			}
			r := m.charset[c.glyphs[i]%len(m.charset)]
			// Wide runes are centred over two narrow cells.
			w := float64(runewidth.RuneWidth(r)) * step * 0.35
			sc.Add(scene.Glyph{Rune: r, Origin: geom.V(x-w, y+step), Size: step, Color: col})
		}
	}
}
