// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/renderer.go
// Summary: Owns the enabled backdrop effects, advances them and builds the frame scene.
// Usage: The frame loop calls Configure on theme load, then Resize/Update/Render each frame.
// Notes: A panicking effect is disabled on its own; the rest keep rendering.

package effects

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/scene"
)

type slot struct {
	kind   Kind
	fx     Effect
	failed bool
	// saved holds the pre-patch configuration while an override patch is live.
	saved EffectConfig
}

// Diff summarises what a Configure call changed.
type Diff struct {
	Added   []Kind
	Dropped []Kind
	Reset   []Kind
}

// Renderer draws effects in declaration order; later effects draw on top.
type Renderer struct {
	env    Env
	slots  []*slot
	bounds geom.Rect
	log    *log.Logger
}

// NewRenderer returns an empty renderer.
func NewRenderer(env Env) *Renderer {
	return &Renderer{env: env, log: logging.For("effects")}
}

// SetEnv replaces the environment used by later Configure calls.
func (r *Renderer) SetEnv(env Env) { r.env = env }

// Configure replaces the effect list with specs. Every listed effect is
// rebuilt from scratch, so animation state restarts. Instantiation failures
// are returned; the failing effect is skipped and the rest are installed.
func (r *Renderer) Configure(specs []Spec) (Diff, []error) {
	var (
		diff Diff
		errs []error
	)
	prev := make(map[Kind]bool, len(r.slots))
	for _, s := range r.slots {
		prev[s.kind] = true
	}
	seen := make(map[Kind]bool, len(specs))
	next := make([]*slot, 0, len(specs))
	for _, spec := range specs {
		if seen[spec.Kind] {
			r.log.Warn("duplicate effect ignored", "kind", spec.Kind)
			continue
		}
		seen[spec.Kind] = true
		fx, err := New(spec.Kind, spec.Config, r.env)
		if err != nil {
			r.log.Error("effect disabled", "kind", spec.Kind, "err", err)
			errs = append(errs, err)
			continue
		}
		if !r.bounds.Empty() {
			fx.Resize(r.bounds)
		}
		next = append(next, &slot{kind: spec.Kind, fx: fx})
		if prev[spec.Kind] {
			diff.Reset = append(diff.Reset, spec.Kind)
		} else {
			diff.Added = append(diff.Added, spec.Kind)
		}
	}
	for _, s := range r.slots {
		if !seen[s.kind] {
			diff.Dropped = append(diff.Dropped, s.kind)
		}
	}
	r.slots = next
	r.log.Debug("effects configured", "added", diff.Added, "dropped", diff.Dropped, "reset", diff.Reset)
	return diff, errs
}

// Kinds lists the installed effects in draw order.
func (r *Renderer) Kinds() []Kind {
	out := make([]Kind, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, s.kind)
	}
	return out
}

// Effect returns the installed instance of kind.
func (r *Renderer) Effect(kind Kind) (Effect, bool) {
	if s := r.find(kind); s != nil {
		return s.fx, true
	}
	return nil, false
}

func (r *Renderer) find(kind Kind) *slot {
	for _, s := range r.slots {
		if s.kind == kind {
			return s
		}
	}
	return nil
}

// Failed reports whether kind was disabled after a panic.
func (r *Renderer) Failed(kind Kind) bool {
	s := r.find(kind)
	return s != nil && s.failed
}

// Bounds returns the last viewport passed to Resize.
func (r *Renderer) Bounds() geom.Rect { return r.bounds }

// Resize forwards new viewport bounds to every effect.
func (r *Renderer) Resize(b geom.Rect) {
	if b == r.bounds {
		return
	}
	r.bounds = b
	for _, s := range r.slots {
		r.guard(s, "resize", func() { s.fx.Resize(b) })
	}
}

// Update advances every effect.
func (r *Renderer) Update(dt, t float64) {
	for _, s := range r.slots {
		r.guard(s, "update", func() { s.fx.Update(dt, t) })
	}
}

// Render appends every enabled effect's primitives to sc.
func (r *Renderer) Render(sc *scene.Scene) {
	for _, s := range r.slots {
		if s.failed || !s.fx.Enabled() {
			continue
		}
		r.guard(s, "render", func() { s.fx.Render(sc, r.bounds) })
	}
}

func (r *Renderer) guard(s *slot, op string, fn func()) {
	if s.failed {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			buf := make([]byte, 1<<12)
			n := runtime.Stack(buf, false)
			s.failed = true
			r.log.Error("effect panicked, disabling", "kind", s.kind, "op", op,
				"panic", fmt.Sprint(p), "stack", string(buf[:n]))
		}
	}()
	fn()
}

// SpritePosition reports the backdrop sprite's live centre, if any.
func (r *Renderer) SpritePosition() (geom.Vec2, bool) {
	s := r.find(KindSprite)
	if s == nil || s.failed {
		return geom.Vec2{}, false
	}
	if p, ok := s.fx.(Positioned); ok {
		return p.Position()
	}
	return geom.Vec2{}, false
}

// ApplyPatch configures the live instance of kind with a partial config,
// keeping its position and animation phase. The configuration in force
// before the first outstanding patch is kept for Restore.
func (r *Renderer) ApplyPatch(kind Kind, patch EffectConfig) bool {
	s := r.find(kind)
	if s == nil || len(patch) == 0 {
		return false
	}
	if s.saved == nil {
		s.saved = s.fx.Snapshot()
	}
	s.fx.Configure(patch)
	return true
}

// Restore undoes ApplyPatch for kind.
func (r *Renderer) Restore(kind Kind) bool {
	s := r.find(kind)
	if s == nil || s.saved == nil {
		return false
	}
	s.fx.Configure(s.saved)
	s.saved = nil
	return true
}

// Patched lists kinds with an outstanding patch.
func (r *Renderer) Patched() []Kind {
	var out []Kind
	for _, s := range r.slots {
		if s.saved != nil {
			out = append(out, s.kind)
		}
	}
	return out
}

// RestoreAll undoes every outstanding patch.
func (r *Renderer) RestoreAll() {
	for _, k := range r.Patched() {
		r.Restore(k)
	}
}
