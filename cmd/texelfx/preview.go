// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/preview.go
// Summary: Live preview of a theme in the current terminal.
// Usage: texelfx preview --theme neon; keys b/s/f fire events, q quits, focus changes fire focus events.

package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/framegrace/texelfx/internal/compositor"
	"github.com/framegrace/texelfx/internal/frameloop"
	"github.com/framegrace/texelfx/internal/overrides"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a theme live in this terminal",
	Long: `Render the theme into the terminal using half-block cells. Press b, s or f
to fire a bell, command success or command failure; q quits. Editing the
theme file reloads it.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	loop := newLoop(s)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var grid atomic.Pointer[gridState]
	resize := func() {
		w, h := screen.Size()
		grid.Store(&gridState{cols: w, rows: h})
	}
	resize()

	go watchTheme(ctx, loop, s)
	go func() {
		defer cancel()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if !handleScreenEvent(ev, loop, resize) {
				return
			}
		}
	}()

	p := newPresenter(screen)
	var current *gridState
	src := func() frameloop.Inputs {
		if g := grid.Load(); g != current {
			current = g
			current.grid = sampleGrid(g.cols, g.rows, s.CellW, s.CellH)
		}
		return inputsFor(current.grid)
	}
	return loop.Run(ctx, src, p.Present)
}

type gridState struct {
	cols, rows int
	grid       *compositor.TextGrid
}

// handleScreenEvent maps terminal input to loop events. It returns false
// when the preview should stop.
func handleScreenEvent(ev tcell.Event, loop *frameloop.Loop, resize func()) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		resize()
	case *tcell.EventFocus:
		if ev.Focused {
			loop.Post(overrides.TerminalEvent{Type: overrides.FocusGained})
		} else {
			loop.Post(overrides.TerminalEvent{Type: overrides.FocusLost})
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			if e, ok := keyEvent(ev.Rune()); ok {
				loop.Post(e)
			}
		}
	}
	return true
}

func keyEvent(r rune) (overrides.TerminalEvent, bool) {
	switch r {
	case 'b':
		return overrides.TerminalEvent{Type: overrides.Bell}, true
	case 's':
		return overrides.Command(0), true
	case 'f':
		return overrides.Command(1), true
	}
	return overrides.TerminalEvent{}, false
}
