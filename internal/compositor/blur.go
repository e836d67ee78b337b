// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/blur.go
// Summary: Separable box blur on premultiplied RGBA, three passes approximate a gaussian.

package compositor

import "image"

// blurRGBA blurs src into dst with the given radius. scratch must match src
// in size. dst may alias src.
func blurRGBA(dst, src, scratch *image.RGBA, radius int) {
	if radius < 1 {
		copy(dst.Pix, src.Pix)
		return
	}
	// Three box passes of r/√3 each approximate a gaussian of radius r.
	r := radius * 577 / 1000
	if r < 1 {
		r = 1
	}
	copy(dst.Pix, src.Pix)
	for i := 0; i < 3; i++ {
		boxH(scratch, dst, r)
		boxV(dst, scratch, r)
	}
}

func boxH(dst, src *image.RGBA, r int) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	win := 2*r + 1
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		out := dst.Pix[y*dst.Stride:]
		var acc [4]int
		for x := -r; x <= r; x++ {
			addPx(&acc, row, clampi(x, 0, w-1), 1)
		}
		for x := 0; x < w; x++ {
			o := x * 4
			out[o] = uint8(acc[0] / win)
			out[o+1] = uint8(acc[1] / win)
			out[o+2] = uint8(acc[2] / win)
			out[o+3] = uint8(acc[3] / win)
			addPx(&acc, row, clampi(x+r+1, 0, w-1), 1)
			addPx(&acc, row, clampi(x-r, 0, w-1), -1)
		}
	}
}

func boxV(dst, src *image.RGBA, r int) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	win := 2*r + 1
	for x := 0; x < w; x++ {
		var acc [4]int
		for y := -r; y <= r; y++ {
			addPx(&acc, src.Pix[clampi(y, 0, h-1)*src.Stride:], x, 1)
		}
		for y := 0; y < h; y++ {
			o := y*dst.Stride + x*4
			dst.Pix[o] = uint8(acc[0] / win)
			dst.Pix[o+1] = uint8(acc[1] / win)
			dst.Pix[o+2] = uint8(acc[2] / win)
			dst.Pix[o+3] = uint8(acc[3] / win)
			addPx(&acc, src.Pix[clampi(y+r+1, 0, h-1)*src.Stride:], x, 1)
			addPx(&acc, src.Pix[clampi(y-r, 0, h-1)*src.Stride:], x, -1)
		}
	}
}

func addPx(acc *[4]int, row []uint8, x, sign int) {
	o := x * 4
	acc[0] += sign * int(row[o])
	acc[1] += sign * int(row[o+1])
	acc[2] += sign * int(row[o+2])
	acc[3] += sign * int(row[o+3])
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
