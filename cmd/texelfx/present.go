// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/present.go
// Summary: Draws composed frames onto a tcell screen with half-block cells.
// Notes: Each terminal cell shows two stacked pixels, the upper as foreground of '▀' and the lower as background.

package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/framegrace/texelfx/internal/compositor"
)

const upperHalf = '▀'

var defaultStyle = tcell.StyleDefault

type presenter struct {
	screen tcell.Screen
	buf    *image.RGBA
}

func newPresenter(s tcell.Screen) *presenter {
	return &presenter{screen: s}
}

// Present downsamples f.Final to the screen and shows it. Frames without a
// final texture leave the screen untouched.
func (p *presenter) Present(f *compositor.Frame) error {
	if f == nil || f.Final == nil {
		return nil
	}
	w, h := p.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	target := image.Rect(0, 0, w, h*2)
	if p.buf == nil || p.buf.Rect != target {
		p.buf = image.NewRGBA(target)
	}
	xdraw.ApproxBiLinear.Scale(p.buf, target, f.Final, f.Final.Bounds(), xdraw.Src, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := p.buf.RGBAAt(x, 2*y)
			bottom := p.buf.RGBAAt(x, 2*y+1)
			st := defaultStyle.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			p.screen.SetContent(x, y, upperHalf, nil, st)
		}
	}
	p.screen.Show()
	return nil
}
