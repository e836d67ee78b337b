// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/paint/gradient.go
// Summary: Two-stop vertical gradient used for the terminal background.

package paint

// Gradient runs from Top at t=0 to Bottom at t=1.
type Gradient struct {
	Top    Color
	Bottom Color
}

// Solid returns a gradient with both stops equal.
func Solid(c Color) Gradient { return Gradient{Top: c, Bottom: c} }

// At samples the gradient.
func (g Gradient) At(t float64) Color {
	if g.Top == g.Bottom {
		return g.Top
	}
	return Mix(g.Top, g.Bottom, t)
}
