// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/passes.go
// Summary: Pass identifiers, frame output and pass errors.

package compositor

import (
	"errors"
	"fmt"
	"image"
)

// Pass identifies one stage of the fixed pipeline. Values are in draw order.
type Pass uint8

const (
	PassBackground Pass = iota
	PassBackdrop
	PassText
	PassCursor
	PassPost
	passCount
)

var passNames = [...]string{
	PassBackground: "background",
	PassBackdrop:   "backdrop",
	PassText:       "text",
	PassCursor:     "cursor",
	PassPost:       "post",
}

// Passes returns every pass in draw order.
func Passes() []Pass {
	out := make([]Pass, passCount)
	for i := range out {
		out[i] = Pass(i)
	}
	return out
}

func (p Pass) String() string {
	if p < passCount {
		return passNames[p]
	}
	return fmt.Sprintf("pass(%d)", uint8(p))
}

// Layer is the output texture of one pass.
type Layer struct {
	Pass    Pass
	Texture *image.RGBA
}

// Frame is the result of one composition. Skipped lists passes that failed
// this frame; they have no layer. A disabled post pass is neither a layer nor
// skipped.
type Frame struct {
	Layers  []Layer
	Final   *image.RGBA
	Skipped []Pass
	Errors  []error
}

// Layer returns the layer produced by p.
func (f *Frame) Layer(p Pass) (*image.RGBA, bool) {
	for _, l := range f.Layers {
		if l.Pass == p {
			return l.Texture, true
		}
	}
	return nil, false
}

// Ran reports whether p produced a layer.
func (f *Frame) Ran(p Pass) bool {
	_, ok := f.Layer(p)
	return ok
}

// ErrResourceExhausted is returned when a texture cannot be allocated.
var ErrResourceExhausted = errors.New("texture allocation exhausted")

// PassError wraps a failure isolated to one pass.
type PassError struct {
	Pass Pass
	Err  error
}

func (e *PassError) Error() string { return fmt.Sprintf("%s pass: %v", e.Pass, e.Err) }
func (e *PassError) Unwrap() error { return e.Err }
