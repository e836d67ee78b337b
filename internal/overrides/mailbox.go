// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/overrides/mailbox.go
// Summary: Single-slot latest-wins handoff of terminal events to the frame loop.
// Usage: Event source goroutines call Post; the frame loop calls Drain once per frame.
// Notes: Focus changes have their own slot so a bell cannot swallow a blur.

package overrides

import (
	"sort"
	"sync"
)

type stamped struct {
	ev  TerminalEvent
	seq uint64
}

// Mailbox holds at most one pending primary event and one pending focus event.
type Mailbox struct {
	mu      sync.Mutex
	seq     uint64
	primary *stamped
	focus   *stamped
}

// Post stores ev, replacing any pending event of the same slot.
func (m *Mailbox) Post(ev TerminalEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s := &stamped{ev: ev, seq: m.seq}
	if ev.IsFocus() {
		m.focus = s
		return
	}
	m.primary = s
}

// Drain returns the pending events in arrival order and empties the mailbox.
func (m *Mailbox) Drain() []TerminalEvent {
	m.mu.Lock()
	pending := make([]*stamped, 0, 2)
	if m.focus != nil {
		pending = append(pending, m.focus)
	}
	if m.primary != nil {
		pending = append(pending, m.primary)
	}
	m.focus, m.primary = nil, nil
	m.mu.Unlock()

	sort.Slice(pending, func(i, j int) bool { return pending[i].seq < pending[j].seq })
	out := make([]TerminalEvent, len(pending))
	for i, s := range pending {
		out[i] = s.ev
	}
	return out
}
