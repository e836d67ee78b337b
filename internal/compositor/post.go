// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/post.go
// Summary: Full-screen CRT post-process applied to the composited frame.
// Notes: Order is geometry (curvature, chromatic aberration), then bloom, then per-pixel shading.

package compositor

import (
	"image"
	"math"

	"github.com/framegrace/texelfx/internal/theming"
)

type postBuffers struct {
	copy, bloom, scratch *image.RGBA
}

func postProcess(dst *image.RGBA, buf postBuffers, crt theming.CRT, t float64) {
	if crt.Curvature > 0 || crt.ChromaticAberration > 0 {
		copy(buf.copy.Pix, dst.Pix)
		remap(dst, buf.copy, crt.Curvature, crt.ChromaticAberration)
	}
	if crt.Bloom > 0 {
		brightPass(buf.bloom, dst)
		blurRGBA(buf.bloom, buf.bloom, buf.scratch, 8)
		addScaled(dst, buf.bloom, crt.Bloom)
	}
	shade(dst, crt, t)
}

// remap applies barrel distortion and a horizontal red/blue split.
func remap(dst, src *image.RGBA, curvature, aberration float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	for y := 0; y < h; y++ {
		v := float64(y)/float64(h)*2 - 1
		for x := 0; x < w; x++ {
			u := float64(x)/float64(w)*2 - 1
			f := 1 + curvature*(u*u+v*v)
			su, sv := u*f, v*f
			o := y*dst.Stride + x*4
			if su < -1 || su > 1 || sv < -1 || sv > 1 {
				dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = 0, 0, 0, 255
				continue
			}
			sx := (su + 1) / 2 * float64(w)
			sy := clampi(int((sv+1)/2*float64(h)), 0, h-1)
			row := src.Pix[sy*src.Stride:]
			cx := clampi(int(sx), 0, w-1)
			rx := clampi(int(sx+aberration), 0, w-1)
			bx := clampi(int(sx-aberration), 0, w-1)
			dst.Pix[o] = row[rx*4]
			dst.Pix[o+1] = row[cx*4+1]
			dst.Pix[o+2] = row[bx*4+2]
			dst.Pix[o+3] = row[cx*4+3]
		}
	}
}

// brightPass keeps only pixels brighter than the bloom threshold.
func brightPass(dst, src *image.RGBA) {
	const threshold = 0.6 * 255
	for i := 0; i+3 < len(src.Pix); i += 4 {
		r, g, b := float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])
		if 0.2126*r+0.7152*g+0.0722*b < threshold {
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 0, 0, 0, 0
			continue
		}
		copy(dst.Pix[i:i+4], src.Pix[i:i+4])
	}
}

func addScaled(dst, src *image.RGBA, k float64) {
	f := int(k * 256)
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := int(dst.Pix[i+c]) + int(src.Pix[i+c])*f>>8
			if v > 255 {
				v = 255
			}
			dst.Pix[i+c] = uint8(v)
		}
	}
}

// shade applies scanlines, vignette and flicker as one brightness factor.
func shade(dst *image.RGBA, crt theming.CRT, t float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	flicker := 1 - crt.Flicker*0.15*(0.5+0.5*math.Sin(t*2*math.Pi*8.3))
	period := math.Max(crt.ScanlineFrequency, 1)
	for y := 0; y < h; y++ {
		scan := 1 - crt.Scanline*(0.5-0.5*math.Cos(2*math.Pi*float64(y)/period))
		v := float64(y)/float64(h)*2 - 1
		for x := 0; x < w; x++ {
			u := float64(x)/float64(w)*2 - 1
			vig := 1 - crt.Vignette*math.Min(1, (u*u+v*v)/2)
			k := scan * vig * flicker
			o := y*dst.Stride + x*4
			dst.Pix[o] = uint8(float64(dst.Pix[o]) * k)
			dst.Pix[o+1] = uint8(float64(dst.Pix[o+1]) * k)
			dst.Pix[o+2] = uint8(float64(dst.Pix[o+2]) * k)
		}
	}
}
