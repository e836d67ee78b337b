// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/event.go
// Summary: Event override block names.

package theming

import (
	"fmt"
	"strings"
)

// EventKey names an override block in a theme.
type EventKey uint8

const (
	OnBell EventKey = iota
	OnCommandFail
	OnCommandSuccess
	OnFocus
	OnBlur
	eventKeyCount
)

var eventKeyNames = [...]string{
	OnBell:           "on-bell",
	OnCommandFail:    "on-command-fail",
	OnCommandSuccess: "on-command-success",
	OnFocus:          "on-focus",
	OnBlur:           "on-blur",
}

// EventKeys lists every block name in canonical order.
func EventKeys() []EventKey {
	out := make([]EventKey, eventKeyCount)
	for i := range out {
		out[i] = EventKey(i)
	}
	return out
}

func (k EventKey) String() string {
	if k < eventKeyCount {
		return eventKeyNames[k]
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// ParseEventKey accepts "on-bell", "bell", "on_command_fail" and similar.
func ParseEventKey(s string) (EventKey, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if !strings.HasPrefix(s, "on-") {
		s = "on-" + s
	}
	for i, name := range eventKeyNames {
		if name == s {
			return EventKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event block %q", s)
}
