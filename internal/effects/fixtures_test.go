// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// sheetPNG encodes a cols x rows sheet of w x h frames, each frame filled
// with a distinct grey level.
func sheetPNG(t *testing.T, cols, rows, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, cols*w, rows*h))
	for i := 0; i < cols*rows; i++ {
		col, row := i%cols, i/cols
		grey := uint8(10 + 20*i)
		for y := row * h; y < (row+1)*h; y++ {
			for x := col * w; x < (col+1)*w; x++ {
				img.Set(x, y, color.RGBA{grey, grey, grey, 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// testSheets serves a 4x2 sheet of 16x8 frames as "sprites/cat.png".
func testSheets(t *testing.T) *SheetCache {
	t.Helper()
	return NewSheetCache(fstest.MapFS{
		"sprites/cat.png": {Data: sheetPNG(t, 4, 2, 16, 8)},
		"sprites/bad.png": {Data: []byte("not an image")},
	})
}

func catSprite() EffectConfig {
	return EffectConfig{"path": "sprites/cat.png", "columns": 4, "rows": 2, "fps": 8}
}
