// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/scene"
)

var overlayBounds = geom.R(0, 0, 400, 300)

func TestOverlayLifetimeIsShorterOfCycleAndDuration(t *testing.T) {
	sheets := testSheets(t)

	o, err := NewOverlay(catSprite(), OverlayCenter, 0.3, sheets, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, o.Lifetime(), 1e-12)

	o, err = NewOverlay(catSprite(), OverlayCenter, 5, sheets, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, o.Lifetime(), 1e-12, "8 frames at 8 fps")

	o, err = NewOverlay(catSprite(), OverlayCenter, 0, sheets, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, o.Lifetime(), 1e-12)
}

func TestOverlayPlaysThenStops(t *testing.T) {
	o, err := NewOverlay(catSprite(), OverlayCenter, 0.3, testSheets(t), 1)
	require.NoError(t, err)

	assert.Equal(t, OverlayPlaying, o.Seek(0.15))
	assert.Equal(t, 1, o.Frame())
	sc := scene.New(1)
	o.Render(sc, overlayBounds, OverlayAnchors{})
	assert.Equal(t, 1, sc.Len())
	assert.Equal(t, overlayBounds.Center(), o.Position())

	assert.Equal(t, OverlayDone, o.Seek(0.301))
	assert.True(t, o.Done())
	assert.Equal(t, OverlayDone, o.Seek(0.1), "done is terminal")

	sc.Reset()
	o.Render(sc, overlayBounds, OverlayAnchors{})
	assert.Zero(t, sc.Len())
}

func TestOverlayCursorTracksEachFrameExactly(t *testing.T) {
	o, err := NewOverlay(catSprite(), OverlayCursor, 0, testSheets(t), 1)
	require.NoError(t, err)
	sc := scene.New(1)

	for i, cur := range []geom.Vec2{geom.V(10, 20), geom.V(250.5, 117.25)} {
		o.Seek(float64(i) * 0.1)
		sc.Reset()
		o.Render(sc, overlayBounds, OverlayAnchors{Cursor: cur})
		require.Equal(t, 1, sc.Len())
		img := sc.Items()[0].(scene.Image)
		assert.Equal(t, cur, img.Dst.Center())
		assert.Equal(t, cur, o.Position())
	}
}

func TestOverlaySpriteFallsBackToCenter(t *testing.T) {
	o, err := NewOverlay(catSprite(), OverlaySprite, 0, testSheets(t), 1)
	require.NoError(t, err)
	assert.Equal(t, overlayBounds.Center(), o.Anchor(overlayBounds, OverlayAnchors{}))
	at := geom.V(33, 44)
	assert.Equal(t, at, o.Anchor(overlayBounds, OverlayAnchors{Sprite: at, HasSprite: true}))
}

func TestOverlayRandomIsSampledOnce(t *testing.T) {
	o, err := NewOverlay(catSprite(), OverlayRandom, 0, testSheets(t), 77)
	require.NoError(t, err)
	first := o.Anchor(overlayBounds, OverlayAnchors{Cursor: geom.V(1, 1)})
	second := o.Anchor(overlayBounds, OverlayAnchors{Cursor: geom.V(300, 200)})
	assert.Equal(t, first, second)
	assert.True(t, overlayBounds.Contains(first))
}

func TestOverlayMissingSheet(t *testing.T) {
	_, err := NewOverlay(EffectConfig{"path": "nope.png"}, OverlayCenter, 1, testSheets(t), 1)
	var ie *InstantiationError
	assert.ErrorAs(t, err, &ie)
}

func TestParseOverlayPosition(t *testing.T) {
	p, err := ParseOverlayPosition("Cursor")
	require.NoError(t, err)
	assert.Equal(t, OverlayCursor, p)
	_, err = ParseOverlayPosition("left")
	assert.Error(t, err)
}
