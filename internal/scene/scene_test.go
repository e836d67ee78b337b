// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/paint"
)

func TestAddDropsDegeneratePrimitives(t *testing.T) {
	s := New(4)
	red := paint.RGB(255, 0, 0)

	s.FillPath(Path{}, red)
	s.FillPath(RectPath(geom.R(0, 0, 4, 4)), paint.Transparent)
	s.StrokePath(RectPath(geom.R(0, 0, 4, 4)), red, 0)
	s.Add(Image{Src: nil})
	s.Add(Glyph{Rune: 'x', Size: 0, Color: red})
	assert.Equal(t, 0, s.Len())

	s.FillPath(RectPath(geom.R(0, 0, 4, 4)), red)
	s.Line(geom.V(0, 0), geom.V(3, 3), red, 1)
	s.Add(Image{Src: image.NewRGBA(image.Rect(0, 0, 2, 2)), SrcRect: image.Rect(0, 0, 2, 2), Dst: geom.R(0, 0, 2, 2), Opacity: 1})
	assert.Equal(t, 3, s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestPolylineClosesSubpaths(t *testing.T) {
	runs := RectPath(geom.R(0, 0, 10, 5)).Polyline(1)
	require.Len(t, runs, 1)
	run := runs[0]
	require.Len(t, run, 5)
	assert.Equal(t, run[0], run[len(run)-1])
}

func TestEllipseStaysOnRadius(t *testing.T) {
	c := geom.V(50, 50)
	runs := Circle(c, 20).Polyline(0.5)
	require.Len(t, runs, 1)
	for _, pt := range runs[0] {
		assert.InDelta(t, 20, pt.Sub(c).Len(), 0.1)
	}
}

func TestStarAlternatesRadii(t *testing.T) {
	c := geom.V(0, 0)
	runs := Star(c, 10, 5, 0.5, 0).Polyline(1)
	require.Len(t, runs, 1)
	for i, pt := range runs[0][:10] {
		want := 10.0
		if i%2 == 1 {
			want = 5
		}
		assert.InDelta(t, want, pt.Len(), 1e-9)
	}
}

func TestAppendKeepsOrder(t *testing.T) {
	a, b := New(1), New(1)
	a.FillPath(RectPath(geom.R(0, 0, 1, 1)), paint.RGB(1, 0, 0))
	b.FillPath(RectPath(geom.R(0, 0, 1, 1)), paint.RGB(2, 0, 0))
	a.Append(b)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, uint8(2), a.Items()[1].(Fill).Color.R)
}
