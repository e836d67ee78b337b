// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/frameloop/theme.go
// Summary: Resolves the effective theme and keeps live effect patches in step with the active override.

package frameloop

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/overrides"
	"github.com/framegrace/texelfx/internal/theming"
)

// ThemeCompositor applies an override's effect patches once when it becomes
// current and restores them once when it stops being current.
type ThemeCompositor struct {
	renderer *effects.Renderer
	applied  uuid.UUID
	log      *log.Logger
}

// NewThemeCompositor binds to the renderer that owns the live effects.
func NewThemeCompositor(r *effects.Renderer) *ThemeCompositor {
	return &ThemeCompositor{renderer: r, log: logging.For("frameloop")}
}

// Applied returns the ID of the override whose patches are live, or uuid.Nil.
func (tc *ThemeCompositor) Applied() uuid.UUID { return tc.applied }

// Resolve reconciles effect patches with cur and returns the theme to render.
func (tc *ThemeCompositor) Resolve(base theming.EffectiveTheme, cur *overrides.Active) theming.EffectiveTheme {
	id := uuid.Nil
	if cur != nil {
		id = cur.ID
	}
	if id != tc.applied {
		tc.renderer.RestoreAll()
		if cur != nil {
			tc.apply(cur)
		}
		tc.applied = id
	}
	if cur == nil {
		return base
	}
	return theming.WithOverride(base, &cur.Override)
}

// Forget drops the record of applied patches. Used after the renderer was
// reconfigured and no longer holds them.
func (tc *ThemeCompositor) Forget() { tc.applied = uuid.Nil }

func (tc *ThemeCompositor) apply(a *overrides.Active) {
	o := a.Override
	if o.SpritePatch != nil {
		if !tc.renderer.ApplyPatch(effects.KindSprite, o.SpritePatch.Config()) {
			tc.log.Debug("sprite patch ignored, no backdrop sprite", "event", a.Event)
		}
	}
	kinds := make([]effects.Kind, 0, len(o.Patches))
	for k := range o.Patches {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		if !tc.renderer.ApplyPatch(k, o.Patches[k]) {
			tc.log.Debug("effect patch ignored, effect not enabled", "kind", k, "event", a.Event)
		}
	}
}
