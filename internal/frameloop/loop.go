// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/frameloop/loop.go
// Summary: Per-frame orchestration of overrides, effects and the compositor.
// Usage: Event sources Post into the loop from any goroutine; Frame or Run drive it from a single goroutine.
// Notes: Everything except Post and QueueReload must be called from the frame goroutine.

package frameloop

import (
	"context"
	"image"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/framegrace/texelfx/internal/compositor"
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/overrides"
	"github.com/framegrace/texelfx/internal/scene"
	"github.com/framegrace/texelfx/internal/theming"
)

// DefaultFPS is the frame rate Run ticks at when none is configured.
const DefaultFPS = 60

// maxStep caps dt after a stall so motion does not jump across the screen.
const maxStep = 0.25

// Inputs is the terminal state for one frame.
type Inputs struct {
	Viewport geom.Rect
	Grid     *compositor.TextGrid
	// Cursor is the cursor centre in pixels, used by cursor-anchored overlays.
	Cursor geom.Vec2
}

// Options configures a Loop.
type Options struct {
	FPS int
	// Budget caps the compositor's texture pool in pixels; zero uses the default.
	Budget int
}

type reload struct {
	theme  *theming.Theme
	sheets *effects.SheetCache
}

// Loop ties the frame pipeline together.
type Loop struct {
	fps      int
	theme    *theming.Theme
	renderer *effects.Renderer
	engine   *overrides.Engine
	themes   *ThemeCompositor
	comp     *compositor.Compositor
	mailbox  overrides.Mailbox
	scene    *scene.Scene

	started   bool
	last      time.Time
	clock     float64
	effective theming.EffectiveTheme

	mu      sync.Mutex
	pending *reload

	log *log.Logger
}

// New builds a loop for theme. Backdrop effects that fail to instantiate are
// returned and left out; the loop is usable regardless.
func New(theme *theming.Theme, sheets *effects.SheetCache, opts Options) (*Loop, []error) {
	if theme == nil {
		theme = theming.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	r := effects.NewRenderer(effects.Env{Sheets: sheets})
	l := &Loop{
		fps:       opts.FPS,
		theme:     theme,
		renderer:  r,
		engine:    overrides.NewEngine(theme, sheets),
		themes:    NewThemeCompositor(r),
		comp:      compositor.New(opts.Budget),
		scene:     scene.New(256),
		effective: theme.Base,
		log:       logging.For("frameloop"),
	}
	_, errs := r.Configure(theme.Backdrop)
	return l, errs
}

// Post hands an event to the next frame. Safe for concurrent use.
func (l *Loop) Post(ev overrides.TerminalEvent) { l.mailbox.Post(ev) }

// Theme returns the theme in use.
func (l *Loop) Theme() *theming.Theme { return l.theme }

// Effective returns the theme the last frame rendered with.
func (l *Loop) Effective() theming.EffectiveTheme { return l.effective }

// Engine exposes the override engine.
func (l *Loop) Engine() *overrides.Engine { return l.engine }

// Renderer exposes the effects renderer.
func (l *Loop) Renderer() *effects.Renderer { return l.renderer }

// Compositor exposes the frame compositor.
func (l *Loop) Compositor() *compositor.Compositor { return l.comp }

// Scene returns the backdrop scene built by the last frame.
func (l *Loop) Scene() *scene.Scene { return l.scene }

// Clock returns the seconds of animation time elapsed.
func (l *Loop) Clock() float64 { return l.clock }

// Reload swaps in a new theme. Every effect is rebuilt and every active
// override dropped, so animation restarts from scratch.
func (l *Loop) Reload(theme *theming.Theme, sheets *effects.SheetCache) []error {
	l.renderer.RestoreAll()
	l.themes.Forget()
	l.theme = theme
	l.renderer.SetEnv(effects.Env{Sheets: sheets})
	diff, errs := l.renderer.Configure(theme.Backdrop)
	l.engine.SetSource(theme, sheets)
	l.effective = theme.Base
	l.log.Info("theme reloaded", "theme", theme.Name, "added", diff.Added, "dropped", diff.Dropped, "reset", diff.Reset)
	return errs
}

// QueueReload schedules Reload for the start of the next frame. Safe for
// concurrent use; a later call replaces an earlier pending one.
func (l *Loop) QueueReload(theme *theming.Theme, sheets *effects.SheetCache) {
	l.mu.Lock()
	l.pending = &reload{theme: theme, sheets: sheets}
	l.mu.Unlock()
}

func (l *Loop) takeReload() *reload {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.pending
	l.pending = nil
	return r
}

// Frame advances everything to now and composes one frame.
func (l *Loop) Frame(now time.Time, in Inputs) *compositor.Frame {
	if r := l.takeReload(); r != nil {
		for _, err := range l.Reload(r.theme, r.sheets) {
			l.log.Error("theme reload", "err", err)
		}
	}

	dt := 0.0
	if l.started {
		dt = math.Min(math.Max(now.Sub(l.last).Seconds(), 0), maxStep)
	}
	l.started = true
	l.last = now
	l.clock += dt

	l.engine.DispatchAll(l.mailbox.Drain(), now)
	l.engine.Tick(now)
	l.effective = l.themes.Resolve(l.theme.Base, l.engine.Current())

	l.renderer.Resize(in.Viewport)
	l.renderer.Update(dt, l.clock)
	l.scene.Reset()
	l.renderer.Render(l.scene)

	anchors := effects.OverlayAnchors{Cursor: in.Cursor}
	anchors.Sprite, anchors.HasSprite = l.renderer.SpritePosition()
	for _, a := range []*overrides.Active{l.engine.Primary(), l.engine.Blur()} {
		if a != nil && a.Overlay != nil {
			a.Overlay.Render(l.scene, in.Viewport, anchors)
		}
	}

	return l.comp.Render(compositor.Input{
		Size:  image.Pt(int(math.Ceil(in.Viewport.W())), int(math.Ceil(in.Viewport.H()))),
		Theme: l.effective,
		Scene: l.scene,
		Grid:  in.Grid,
		Time:  l.clock,
	})
}

// InputSource supplies the terminal state for the next frame.
type InputSource func() Inputs

// Sink consumes a composed frame. Returning an error stops Run.
type Sink func(*compositor.Frame) error

// Run renders frames at the configured rate until ctx is cancelled or sink
// fails.
func (l *Loop) Run(ctx context.Context, src InputSource, sink Sink) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.fps))
	defer ticker.Stop()
	l.log.Debug("frame loop started", "fps", l.fps)
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("frame loop stopped")
			return nil
		case now := <-ticker.C:
			f := l.Frame(now, src())
			if sink == nil {
				continue
			}
			if err := sink(f); err != nil {
				return err
			}
		}
	}
}
