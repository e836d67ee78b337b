// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/scene"
)

func TestSpriteFrameFollowsElapsedTime(t *testing.T) {
	fx, err := New(KindSprite, catSprite(), Env{Sheets: testSheets(t)})
	require.NoError(t, err)
	sp := fx.(*Sprite)
	sp.Resize(geom.R(0, 0, 200, 100))

	sp.Update(0.3, 0.3)
	assert.Equal(t, 2, sp.Frame())
	sp.Update(0.9, 1.2)
	assert.Equal(t, 1, sp.Frame(), "wraps modulo frame count")

	sc := scene.New(1)
	sp.Render(sc, sp.bounds)
	require.Equal(t, 1, sc.Len())
	img := sc.Items()[0].(scene.Image)
	assert.Equal(t, image.Rect(16, 0, 32, 8), img.SrcRect)
	assert.Equal(t, geom.R(92, 46, 16, 8), img.Dst)
}

func TestSpriteFrameRectWalksRows(t *testing.T) {
	g := sheetGeom{frameW: 16, frameH: 8, cols: 4, frames: 8}
	assert.Equal(t, image.Rect(48, 0, 64, 8), g.frameRect(image.Point{}, 3))
	assert.Equal(t, image.Rect(0, 8, 16, 16), g.frameRect(image.Point{}, 4))
}

func TestSpriteMissingSheetDisablesInstance(t *testing.T) {
	cfg := catSprite()
	cfg["path"] = "sprites/missing.png"
	fx, err := New(KindSprite, cfg, Env{Sheets: testSheets(t)})
	var ie *InstantiationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindSprite, ie.Kind)
	assert.False(t, fx.Enabled())

	sc := scene.New(1)
	fx.Resize(geom.R(0, 0, 100, 100))
	fx.Render(sc, geom.R(0, 0, 100, 100))
	assert.Zero(t, sc.Len())
}

func TestSpriteRejectsUndecodableOrUndersizedSheet(t *testing.T) {
	cfg := catSprite()
	cfg["path"] = "sprites/bad.png"
	_, err := New(KindSprite, cfg, Env{Sheets: testSheets(t)})
	assert.Error(t, err)

	cfg = catSprite()
	cfg["frame-width"] = 40
	_, err = New(KindSprite, cfg, Env{Sheets: testSheets(t)})
	assert.ErrorContains(t, err, "does not hold")
}

func TestSpriteAcceptsSheetLargerThanGrid(t *testing.T) {
	cfg := catSprite()
	cfg["columns"] = 3
	cfg["rows"] = 1
	_, err := New(KindSprite, cfg, Env{Sheets: testSheets(t)})
	assert.NoError(t, err, "pixels past the 3x1 grid are ignored")

	cfg = catSprite()
	cfg["frame-width"] = 10
	cfg["frame-height"] = 5
	_, err = New(KindSprite, cfg, Env{Sheets: testSheets(t)})
	assert.NoError(t, err)
}

func TestSpriteWithoutPathIsDisabled(t *testing.T) {
	_, err := New(KindSprite, nil, Env{Sheets: testSheets(t)})
	assert.ErrorIs(t, err, ErrNoSheetPath)
}

func TestSpritePatchKeepsPositionAndPhase(t *testing.T) {
	cfg := catSprite()
	cfg["motion"] = "bounce"
	fx, err := New(KindSprite, cfg, Env{Sheets: testSheets(t)})
	require.NoError(t, err)
	sp := fx.(*Sprite)
	sp.Resize(geom.R(0, 0, 300, 200))
	for i := 0; i < 20; i++ {
		sp.Update(0.05, float64(i)*0.05)
	}
	pos, ok := sp.Position()
	require.True(t, ok)
	elapsed := sp.elapsed

	sp.Configure(EffectConfig{"fps": 24, "opacity": 0.5, "motion-speed": 3})

	after, _ := sp.Position()
	assert.Equal(t, pos, after)
	assert.Equal(t, elapsed, sp.elapsed)
	assert.Equal(t, 0.5, sp.opacity)
	assert.InDelta(t, 300, math.Abs(sp.motion.Velocity.X), 1e-9)
}

func TestSheetCacheResolvesRelativePaths(t *testing.T) {
	c := testSheets(t)
	a, err := c.Load("sprites/cat.png")
	require.NoError(t, err)
	b, err := c.Load("./sprites/cat.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 16), a.Bounds())
	assert.Equal(t, a.Bounds(), b.Bounds())

	var nilCache *SheetCache
	_, err = nilCache.Load("x.png")
	assert.Error(t, err)
}
