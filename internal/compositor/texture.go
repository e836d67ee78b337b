// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/texture.go
// Summary: Offscreen texture pool, resized in lockstep with the viewport.
// Usage: Resize on every frame with the viewport size; Get returns the named texture, allocating it on first use.
// Notes: Textures never outlive a resize. Allocation past the pixel budget fails and is retried on the next Get.

package compositor

import (
	"fmt"
	"image"
)

// DefaultBudget caps the total pool size in pixels.
const DefaultBudget = 64 << 20

// TexturePool owns every offscreen texture.
type TexturePool struct {
	size     image.Point
	gen      uint64
	budget   int
	used     int
	textures map[string]*image.RGBA
	// alloc is swapped in tests to simulate allocation failure.
	alloc func(w, h int) (*image.RGBA, error)
}

// NewTexturePool returns an empty pool with a pixel budget; budget <= 0
// means DefaultBudget.
func NewTexturePool(budget int) *TexturePool {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &TexturePool{budget: budget, textures: make(map[string]*image.RGBA)}
}

// Size returns the current texture size.
func (p *TexturePool) Size() image.Point { return p.size }

// Resize drops every texture when the size changes. It reports whether a
// resize happened.
func (p *TexturePool) Resize(w, h int) bool {
	size := image.Pt(w, h)
	if size == p.size {
		return false
	}
	p.size = size
	p.gen++
	p.used = 0
	p.textures = make(map[string]*image.RGBA)
	return true
}

// Get returns the texture called name at the current size, cleared to
// transparent when reset is set.
func (p *TexturePool) Get(name string, reset bool) (*image.RGBA, error) {
	if tex, ok := p.textures[name]; ok {
		if reset {
			clearRGBA(tex)
		}
		return tex, nil
	}
	w, h := p.size.X, p.size.Y
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%s %dx%d: %w", name, w, h, ErrResourceExhausted)
	}
	if p.used+w*h > p.budget {
		return nil, fmt.Errorf("%s %dx%d over budget: %w", name, w, h, ErrResourceExhausted)
	}
	alloc := p.alloc
	if alloc == nil {
		alloc = func(w, h int) (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, w, h)), nil }
	}
	tex, err := alloc(w, h)
	if err != nil {
		return nil, fmt.Errorf("%s %dx%d: %w", name, w, h, err)
	}
	p.textures[name] = tex
	p.used += w * h
	return tex, nil
}

// Generation changes whenever the textures are replaced.
func (p *TexturePool) Generation() uint64 { return p.gen }

// Len returns how many textures are allocated.
func (p *TexturePool) Len() int { return len(p.textures) }

func clearRGBA(img *image.RGBA) {
	clear(img.Pix)
}
