// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/overrides/engine.go
// Summary: State machine that maps terminal events to temporary theme overrides.
// Usage: Dispatch events as they arrive, Tick once per frame, then read Current.
// Notes: One primary slot (newest wins) sits above one blur slot. Expiry is polled in Tick.

package overrides

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/theming"
)

// Source supplies configured overrides. *theming.Theme implements it.
type Source interface {
	Override(theming.EventKey) (theming.EventOverride, bool)
}

// Active is a running override.
type Active struct {
	ID        uuid.UUID
	Event     TerminalEvent
	Override  theming.EventOverride
	StartedAt time.Time
	// Overlay is the one-shot sprite spawned by the override, if any.
	Overlay *effects.Overlay
}

// Elapsed returns the time since the override started.
func (a *Active) Elapsed(now time.Time) time.Duration { return now.Sub(a.StartedAt) }

// Expired reports whether a timed override has run its course at now.
func (a *Active) Expired(now time.Time) bool {
	return !a.Override.Persistent() && a.Elapsed(now) >= a.Override.Duration
}

// Engine owns the active override slots.
type Engine struct {
	src     Source
	sheets  *effects.SheetCache
	primary *Active
	blur    *Active
	focused bool
	spawned uint64
	log     *log.Logger
}

// NewEngine returns an idle engine. sheets resolves sprite overlays; nil
// disables them.
func NewEngine(src Source, sheets *effects.SheetCache) *Engine {
	return &Engine{src: src, sheets: sheets, focused: true, log: logging.For("overrides")}
}

// SetSource swaps the override table and drops every active override.
func (e *Engine) SetSource(src Source, sheets *effects.SheetCache) {
	e.src = src
	e.sheets = sheets
	e.Clear()
}

// Clear returns both slots to idle.
func (e *Engine) Clear() {
	retire(e.primary)
	retire(e.blur)
	e.primary = nil
	e.blur = nil
}

// retire stops the overlay of an override leaving its slot.
func retire(a *Active) {
	if a != nil && a.Overlay != nil {
		a.Overlay.Stop()
	}
}

// Focused reports the last known focus state.
func (e *Engine) Focused() bool { return e.focused }

// Primary returns the primary override, if any.
func (e *Engine) Primary() *Active { return e.primary }

// Blur returns the blur override, if any.
func (e *Engine) Blur() *Active { return e.blur }

// Current returns the override in force: the primary, else the blur.
func (e *Engine) Current() *Active {
	if e.primary != nil {
		return e.primary
	}
	return e.blur
}

// DispatchAll applies events in order.
func (e *Engine) DispatchAll(events []TerminalEvent, now time.Time) {
	for _, ev := range events {
		e.Dispatch(ev, now)
	}
}

// Dispatch applies one event at now. A missing override is a no-op, except
// that a command success always ends a command failure.
func (e *Engine) Dispatch(ev TerminalEvent, now time.Time) {
	switch ev.Type {
	case FocusLost:
		e.focused = false
		if o, ok := e.lookup(ev); ok {
			retire(e.blur)
			e.blur = e.activate(ev, o, now)
			e.log.Debug("blur override active", "id", e.blur.ID)
		}
		return
	case FocusGained:
		e.focused = true
		if e.blur != nil {
			e.log.Debug("blur override cleared", "id", e.blur.ID)
			retire(e.blur)
			e.blur = nil
		}
	}

	o, ok := e.lookup(ev)
	if !ok {
		if ev.Type == CommandSuccess && e.primary != nil && e.primary.Event.Type == CommandFail {
			e.log.Debug("command success clears failure override", "id", e.primary.ID)
			retire(e.primary)
			e.primary = nil
		}
		return
	}
	if e.primary != nil {
		e.log.Debug("override replaced", "old", e.primary.Event, "new", ev)
		retire(e.primary)
	}
	e.primary = e.activate(ev, o, now)
	e.log.Debug("override active", "event", ev, "id", e.primary.ID, "duration", o.Duration)
}

func (e *Engine) lookup(ev TerminalEvent) (theming.EventOverride, bool) {
	if e.src == nil {
		return theming.EventOverride{}, false
	}
	return e.src.Override(ev.Key())
}

func (e *Engine) activate(ev TerminalEvent, o theming.EventOverride, now time.Time) *Active {
	a := &Active{ID: uuid.New(), Event: ev, Override: o, StartedAt: now}
	if o.SpriteOverlay != nil && e.sheets != nil {
		e.spawned++
		ov, err := effects.NewOverlay(o.SpriteOverlay.Config(), o.SpriteOverlay.Position,
			o.Duration.Seconds(), e.sheets, e.spawned)
		if err != nil {
			e.log.Error("sprite overlay disabled", "event", ev, "err", err)
		} else {
			a.Overlay = ov
		}
	}
	return a
}

// Tick expires timed overrides and advances overlays to now.
func (e *Engine) Tick(now time.Time) {
	if e.primary != nil && e.primary.Expired(now) {
		e.log.Debug("override expired", "event", e.primary.Event, "id", e.primary.ID)
		retire(e.primary)
		e.primary = nil
	}
	if e.blur != nil && e.blur.Expired(now) {
		e.log.Debug("blur override expired", "id", e.blur.ID)
		retire(e.blur)
		e.blur = nil
	}
	for _, a := range []*Active{e.primary, e.blur} {
		if a != nil && a.Overlay != nil {
			a.Overlay.Seek(a.Elapsed(now).Seconds())
		}
	}
}
