// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/sheet.go
// Summary: Sprite sheet decoding, caching and frame geometry.
// Usage: Sprites and one-shot overlays share a SheetCache rooted at the theme directory.
// Notes: PNG, GIF and JPEG come from the standard registry; BMP and WebP from x/image.

package effects

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNoSheetPath is returned when a sprite is enabled without a sheet path.
var ErrNoSheetPath = errors.New("sprite sheet path is empty")

// SheetCache decodes sprite sheets once per path.
type SheetCache struct {
	fsys   fs.FS
	mu     sync.Mutex
	images map[string]image.Image
}

// NewSheetCache resolves relative paths against fsys. A nil fsys only allows
// absolute paths.
func NewSheetCache(fsys fs.FS) *SheetCache {
	return &SheetCache{fsys: fsys, images: make(map[string]image.Image)}
}

// Load returns the decoded image at p.
func (c *SheetCache) Load(p string) (image.Image, error) {
	if p == "" {
		return nil, ErrNoSheetPath
	}
	if c == nil {
		return nil, fmt.Errorf("load %s: no asset source", p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[p]; ok {
		return img, nil
	}
	f, err := c.open(p)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	c.images[p] = img
	return img, nil
}

func (c *SheetCache) open(p string) (fs.File, error) {
	if filepath.IsAbs(p) {
		return os.Open(p)
	}
	if c.fsys == nil {
		return nil, fmt.Errorf("relative path without asset root")
	}
	return c.fsys.Open(path.Clean(filepath.ToSlash(p)))
}

// sheetGeom describes how frames are laid out on a sheet.
type sheetGeom struct {
	frameW, frameH int
	cols           int
	frames         int
}

// layoutSheet validates a sheet against its frame configuration. Zero frame
// sizes are derived from the sheet size; a zero count means cols*rows.
func layoutSheet(img image.Image, cols, rows, frameW, frameH, count int) (sheetGeom, error) {
	if cols < 1 || rows < 1 {
		return sheetGeom{}, fmt.Errorf("sheet grid %dx%d is empty", cols, rows)
	}
	b := img.Bounds()
	if frameW <= 0 {
		frameW = b.Dx() / cols
	}
	if frameH <= 0 {
		frameH = b.Dy() / rows
	}
	if frameW < 1 || frameH < 1 || b.Dx() < frameW*cols || b.Dy() < frameH*rows {
		return sheetGeom{}, fmt.Errorf("sheet %dx%d does not hold %dx%d frames of %dx%d",
			b.Dx(), b.Dy(), cols, rows, frameW, frameH)
	}
	capacity := cols * rows
	if count <= 0 || count > capacity {
		count = capacity
	}
	return sheetGeom{frameW: frameW, frameH: frameH, cols: cols, frames: count}, nil
}

// frameRect returns the source rectangle of frame i.
func (g sheetGeom) frameRect(origin image.Point, i int) image.Rectangle {
	col, row := i%g.cols, i/g.cols
	tl := origin.Add(image.Pt(col*g.frameW, row*g.frameH))
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(g.frameW, g.frameH))}
}

// frameAt maps elapsed seconds to a frame index.
func (g sheetGeom) frameAt(elapsed, fps float64) int {
	if g.frames <= 0 || fps <= 0 || elapsed <= 0 {
		return 0
	}
	return int(elapsed*fps) % g.frames
}
