// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/overrides/event.go
// Summary: Terminal events that can trigger theme overrides.

package overrides

import (
	"fmt"

	"github.com/framegrace/texelfx/internal/theming"
)

// EventType is the closed set of runtime events.
type EventType uint8

const (
	Bell EventType = iota
	CommandSuccess
	CommandFail
	FocusGained
	FocusLost
)

var eventNames = [...]string{
	Bell:           "bell",
	CommandSuccess: "command-success",
	CommandFail:    "command-fail",
	FocusGained:    "focus-gained",
	FocusLost:      "focus-lost",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// TerminalEvent is one event reported by the terminal side. ExitCode is only
// meaningful for CommandFail.
type TerminalEvent struct {
	Type     EventType
	ExitCode int
}

func (e TerminalEvent) String() string {
	if e.Type == CommandFail {
		return fmt.Sprintf("%s(%d)", e.Type, e.ExitCode)
	}
	return e.Type.String()
}

// Key returns the theme block the event reads its override from.
func (e TerminalEvent) Key() theming.EventKey {
	switch e.Type {
	case CommandSuccess:
		return theming.OnCommandSuccess
	case CommandFail:
		return theming.OnCommandFail
	case FocusGained:
		return theming.OnFocus
	case FocusLost:
		return theming.OnBlur
	}
	return theming.OnBell
}

// IsFocus reports whether the event changes focus state.
func (e TerminalEvent) IsFocus() bool { return e.Type == FocusGained || e.Type == FocusLost }

// Command reports a finished command: success for exit code 0.
func Command(exitCode int) TerminalEvent {
	if exitCode == 0 {
		return TerminalEvent{Type: CommandSuccess}
	}
	return TerminalEvent{Type: CommandFail, ExitCode: exitCode}
}

// ParseEvent accepts the event names used on the command line and in logs.
func ParseEvent(s string) (TerminalEvent, error) {
	switch s {
	case "bell":
		return TerminalEvent{Type: Bell}, nil
	case "success", "command-success":
		return TerminalEvent{Type: CommandSuccess}, nil
	case "fail", "command-fail":
		return TerminalEvent{Type: CommandFail, ExitCode: 1}, nil
	case "focus", "focus-gained":
		return TerminalEvent{Type: FocusGained}, nil
	case "blur", "focus-lost":
		return TerminalEvent{Type: FocusLost}, nil
	}
	return TerminalEvent{}, fmt.Errorf("unknown event %q", s)
}
