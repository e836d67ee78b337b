// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package paint

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForms(t *testing.T) {
	cases := map[string]Color{
		"#fff":                  RGB(255, 255, 255),
		"#1a0a2e":               RGB(0x1a, 0x0a, 0x2e),
		"#00ffff80":             RGBA(0, 255, 255, 0x80),
		"rgb(10, 20, 30)":       RGB(10, 20, 30),
		"rgba(0, 255, 255, 1)":  RGBA(0, 255, 255, 255),
		"rgba(150,180,220,180)": RGBA(150, 180, 220, 180),
		"transparent":           Transparent,
		"red":                   RGB(255, 0, 0),
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgba(1,2,3,x)", "not-a-colour"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestRGBAIsPremultiplied(t *testing.T) {
	r, g, b, a := RGBA(255, 0, 0, 128).RGBA()
	assert.Equal(t, uint32(128*0x101), a)
	assert.Equal(t, uint32(128*0x101), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestMixEndpoints(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(255, 255, 255)
	assert.Equal(t, a, Mix(a, b, 0))
	assert.Equal(t, b, Mix(a, b, 1))
	mid := Mix(a, b, 0.5)
	assert.Greater(t, mid.R, uint8(0))
	assert.Less(t, mid.R, uint8(255))
}

func TestFromTCellDefault(t *testing.T) {
	_, ok := FromTCell(tcell.ColorDefault)
	assert.False(t, ok)
	c, ok := FromTCell(tcell.NewRGBColor(1, 2, 3))
	require.True(t, ok)
	assert.Equal(t, RGB(1, 2, 3), c)
	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), c.TCell())
}

func TestGradientAt(t *testing.T) {
	g := Gradient{Top: Hex(0x1a0a2e), Bottom: Hex(0x16213e)}
	assert.Equal(t, g.Top, g.At(0))
	assert.Equal(t, g.Bottom, g.At(1))
	assert.Equal(t, Hex(0x123456), Solid(Hex(0x123456)).At(0.3))
}
