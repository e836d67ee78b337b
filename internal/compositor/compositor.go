// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/compositor.go
// Summary: Fixed five-pass frame pipeline over pooled offscreen textures.
// Usage: The frame loop builds an Input per frame and calls Render; the returned Frame is valid until the next Render.
// Notes: Each pass is isolated. A failing or panicking pass is skipped for the frame and retried on the next one.

package compositor

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	xdraw "golang.org/x/image/draw"

	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
	"github.com/framegrace/texelfx/internal/theming"
)

// Input is everything one frame is composed from.
type Input struct {
	Size  image.Point
	Theme theming.EffectiveTheme
	// Scene holds the backdrop primitives, overlays included.
	Scene *scene.Scene
	Grid  *TextGrid
	// Time is the loop clock in seconds; it drives flicker.
	Time float64
}

// Compositor renders frames. It is not safe for concurrent use.
type Compositor struct {
	pool   *TexturePool
	raster *Rasterizer
	glow   glowCache
	warned image.Point
	log    *log.Logger
}

// New returns a compositor whose texture pool is capped at budget pixels.
func New(budget int) *Compositor {
	return &Compositor{
		pool:   NewTexturePool(budget),
		raster: NewRasterizer(),
		log:    logging.For("compositor"),
	}
}

// Pool exposes the texture pool.
func (c *Compositor) Pool() *TexturePool { return c.pool }

// GlowRuns counts how many times the glow convolution has run.
func (c *Compositor) GlowRuns() int { return c.glow.runs }

// Render composes one frame. Final is nil only when the output texture itself
// could not be allocated.
func (c *Compositor) Render(in Input) *Frame {
	if c.pool.Resize(in.Size.X, in.Size.Y) {
		c.glow.invalidate()
	}
	frame := &Frame{}
	final, err := c.pool.Get("final", true)
	if err != nil {
		c.exhausted(err)
		for _, p := range Passes() {
			frame.Skipped = append(frame.Skipped, p)
			frame.Errors = append(frame.Errors, &PassError{Pass: p, Err: err})
		}
		return frame
	}
	frame.Final = final
	for _, p := range Passes() {
		if p == PassPost && !in.Theme.CRT.Enabled {
			continue
		}
		tex, err := c.run(p, in, final)
		if err != nil {
			frame.Skipped = append(frame.Skipped, p)
			frame.Errors = append(frame.Errors, &PassError{Pass: p, Err: err})
			continue
		}
		frame.Layers = append(frame.Layers, Layer{Pass: p, Texture: tex})
	}
	return frame
}

// run executes one pass and composites its layer over final.
func (c *Compositor) run(p Pass, in Input, final *image.RGBA) (tex *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 1<<12)
			n := runtime.Stack(buf, false)
			c.log.Error("pass panicked, skipping", "pass", p, "panic", fmt.Sprint(r), "stack", string(buf[:n]))
			tex, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	if p == PassPost {
		if err := c.post(final, in); err != nil {
			c.exhausted(err)
			return nil, err
		}
		return final, nil
	}
	tex, err = c.pool.Get(p.String(), true)
	if err != nil {
		c.exhausted(err)
		return nil, err
	}
	switch p {
	case PassBackground:
		background(tex, in.Theme.Background())
	case PassBackdrop:
		if in.Scene != nil {
			c.raster.Draw(tex, in.Scene)
		}
	case PassText:
		c.text(tex, in)
	case PassCursor:
		if err := c.cursor(tex, in); err != nil {
			c.exhausted(err)
			return nil, err
		}
	}
	xdraw.Draw(final, final.Bounds(), tex, image.Point{}, xdraw.Over)
	return tex, nil
}

// exhausted logs allocation failures once per viewport size.
func (c *Compositor) exhausted(err error) {
	if !errors.Is(err, ErrResourceExhausted) {
		return
	}
	if size := c.pool.Size(); size != c.warned {
		c.warned = size
		c.log.Warn("texture allocation failed, skipping pass", "size", size, "err", err)
	}
}

func background(dst *image.RGBA, g paint.Gradient) {
	h := dst.Rect.Dy()
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		row := image.Rect(0, y, dst.Rect.Dx(), y+1)
		xdraw.Draw(dst, row, image.NewUniform(g.At(t)), image.Point{}, xdraw.Src)
	}
}

// haloOffsets are the eight directions of the text shadow halo.
var haloOffsets = []image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// text draws cell backgrounds and glyphs with their own colours. Default
// colours fall back to the theme foreground and leave the background clear.
func (c *Compositor) text(dst *image.RGBA, in Input) {
	g := in.Grid
	if g == nil {
		return
	}
	shadow := in.Theme.TextShadow
	var (
		shadowColor paint.Color
		shadowStep  int
	)
	if shadow.Enabled && shadow.Intensity > 0 && !shadow.Color.IsTransparent() {
		shadowColor = shadow.Color.Fade(shadow.Intensity * 0.5)
		shadowStep = int(math.Max(1, math.Round(shadow.Radius/4)))
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.At(col, row)
			if cell.Ch == 0 {
				continue
			}
			width := runewidth.RuneWidth(cell.Ch)
			if width < 1 {
				width = 1
			}
			rect := g.CellRect(col, row, width)
			fg, bg, hasBG := cellColors(cell.Style, in.Theme)
			if hasBG {
				xdraw.Draw(dst, rect, image.NewUniform(bg), image.Point{}, xdraw.Src)
			}
			if cell.Ch == ' ' {
				continue
			}
			if shadowStep > 0 {
				for _, d := range haloOffsets {
					c.raster.drawGlyph(dst, cell.Ch, rect.Add(d.Mul(shadowStep)), shadowColor)
				}
			}
			c.raster.drawGlyph(dst, cell.Ch, rect, fg)
		}
	}
}

func cellColors(st tcell.Style, th theming.EffectiveTheme) (fg, bg paint.Color, hasBG bool) {
	fgc, bgc, attrs := st.Decompose()
	fg, ok := paint.FromTCell(fgc)
	if !ok {
		fg = th.Foreground
	}
	bg, hasBG = paint.FromTCell(bgc)
	if attrs&tcell.AttrReverse != 0 {
		if !hasBG {
			bg = th.BackgroundTop
		}
		fg, bg, hasBG = bg, fg, true
	}
	if attrs&tcell.AttrBold != 0 {
		fg = paint.Brighten(fg, 0.2)
	}
	if attrs&tcell.AttrDim != 0 {
		fg = fg.Fade(0.6)
	}
	return fg, bg, hasBG
}

// cursor draws the selection, then the glow, then the cursor shape.
func (c *Compositor) cursor(dst *image.RGBA, in Input) error {
	g := in.Grid
	if g == nil {
		return nil
	}
	th := in.Theme
	for _, s := range g.Selection {
		if s.End <= s.Start {
			continue
		}
		rect := g.CellRect(s.Start, s.Row, s.End-s.Start)
		xdraw.Draw(dst, rect, image.NewUniform(th.Selection), image.Point{}, xdraw.Over)
	}
	if !g.CursorVisible {
		return nil
	}
	cr := g.CursorRect()
	glow := th.CursorGlow
	if glow.Enabled && glow.Radius > 0 && glow.Intensity > 0 {
		tex, err := c.glowTexture(cr, th)
		if err != nil {
			return err
		}
		xdraw.Draw(dst, dst.Bounds(), tex, image.Point{}, xdraw.Over)
	}
	drawCursor(dst, cr, th.CursorShape, th.Cursor)
	return nil
}

// glowTexture returns the blurred cursor, rebuilding it only when its key
// changed since the last build.
func (c *Compositor) glowTexture(cr image.Rectangle, th theming.EffectiveTheme) (*image.RGBA, error) {
	col := th.CursorGlow.Color
	if col.IsTransparent() {
		col = th.Cursor
	}
	key := glowKey{
		size:      c.pool.Size(),
		cursor:    cr,
		shape:     th.CursorShape,
		color:     col,
		radius:    int(math.Round(th.CursorGlow.Radius)),
		intensity: th.CursorGlow.Intensity,
		gen:       c.pool.Generation(),
	}
	out, err := c.pool.Get("glow", false)
	if err != nil {
		c.glow.invalidate()
		return nil, err
	}
	if !c.glow.stale(key) {
		return out, nil
	}
	src, err := c.pool.Get("glow-src", true)
	if err != nil {
		c.glow.invalidate()
		return nil, err
	}
	scratch, err := c.pool.Get("glow-scratch", false)
	if err != nil {
		c.glow.invalidate()
		return nil, err
	}
	drawCursor(src, cr, th.CursorShape, col.WithAlpha(1))
	blurRGBA(out, src, scratch, key.radius)
	scaleAlpha(out, key.intensity)
	c.glow.store(key)
	return out, nil
}

func drawCursor(dst *image.RGBA, r image.Rectangle, shape string, col paint.Color) {
	fill := func(rect image.Rectangle, c paint.Color) {
		xdraw.Draw(dst, rect, image.NewUniform(c), image.Point{}, xdraw.Over)
	}
	switch shape {
	case theming.CursorBar:
		fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+2, r.Max.Y), col)
	case theming.CursorUnderline:
		fill(image.Rect(r.Min.X, r.Max.Y-2, r.Max.X, r.Max.Y), col)
	case theming.CursorHollow:
		fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
		fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
		fill(image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), col)
		fill(image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), col)
	default:
		fill(r, col.Fade(0.7))
	}
}

func (c *Compositor) post(final *image.RGBA, in Input) error {
	var (
		buf postBuffers
		err error
	)
	crt := in.Theme.CRT
	if crt.Curvature > 0 || crt.ChromaticAberration > 0 {
		if buf.copy, err = c.pool.Get("post-copy", false); err != nil {
			return err
		}
	}
	if crt.Bloom > 0 {
		if buf.bloom, err = c.pool.Get("post-bloom", false); err != nil {
			return err
		}
		if buf.scratch, err = c.pool.Get("post-scratch", false); err != nil {
			return err
		}
	}
	postProcess(final, buf, crt, in.Time)
	return nil
}
