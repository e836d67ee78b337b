// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/paint/color.go
// Summary: Straight-alpha colour type plus parsing from theme strings.
// Usage: Effects, theme and compositor passes share this type; it satisfies image/color.Color.
// Notes: Accepts #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() and tcell colour names.

package paint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit straight (non-premultiplied) RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the zero colour.
var Transparent = Color{}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// RGBA returns a colour with explicit alpha.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex returns an opaque colour from a 0xRRGGBB literal.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// RGBA implements image/color.Color (premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 255
	g = uint32(c.G) * a / 255
	b = uint32(c.B) * a / 255
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// WithAlpha returns c with its alpha replaced by a (0..1).
func (c Color) WithAlpha(a float64) Color {
	c.A = unit8(a)
	return c
}

// Fade multiplies the existing alpha by k (0..1).
func (c Color) Fade(k float64) Color {
	c.A = unit8(float64(c.A) / 255 * k)
	return c
}

// Alpha returns the alpha channel as 0..1.
func (c Color) Alpha() float64 { return float64(c.A) / 255 }

// IsTransparent reports whether nothing would be drawn with c.
func (c Color) IsTransparent() bool { return c.A == 0 }

// String renders the colour the way theme files spell it.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cf colorful.Color, a uint8) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: a}
}

// Mix blends a toward b by t in linear RGB; alpha is interpolated linearly.
func Mix(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return fromColorful(a.colorful().BlendLinearRgb(b.colorful(), t), uint8(math.Round(alpha)))
}

// Brighten moves c toward white by t, keeping alpha.
func Brighten(c Color, t float64) Color {
	return Mix(c, Color{R: 255, G: 255, B: 255, A: c.A}, t)
}

// FromTCell converts a tcell colour. Default and invalid colours report false so
// callers can substitute the theme colour.
func FromTCell(tc tcell.Color) (Color, bool) {
	if tc == tcell.ColorDefault || !tc.Valid() {
		return Color{}, false
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return Color{}, false
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
}

// TCell converts c to a tcell RGB colour, discarding alpha.
func (c Color) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Parse decodes a colour string.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return Color{}, fmt.Errorf("empty colour")
	case s == "transparent" || s == "none":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[4:len(s)-1], false)
	}
	if tc := tcell.GetColor(s); tc != tcell.ColorDefault {
		if c, ok := FromTCell(tc); ok {
			return c, nil
		}
	}
	return Color{}, fmt.Errorf("unrecognised colour %q", s)
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (Color, error) {
	switch len(s) {
	case 4, 7:
		cf, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("colour %q: %w", s, err)
		}
		return fromColorful(cf, 255), nil
	case 9:
		cf, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("colour %q: %w", s, err)
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("colour %q alpha: %w", s, err)
		}
		return fromColorful(cf, uint8(a)), nil
	}
	return Color{}, fmt.Errorf("colour %q: want #rgb, #rrggbb or #rrggbbaa", s)
}

func parseFunc(body string, withAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("colour function wants %d components, got %d", want, len(parts))
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("colour component %d: %w", i, err)
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("colour alpha: %w", err)
		}
		// Alpha above 1 is read as a byte value.
		if a > 1 {
			a /= 255
		}
		c.A = unit8(a)
	}
	return c, nil
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
