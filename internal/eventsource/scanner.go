// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/eventsource/scanner.go
// Summary: Byte-stream scanner that turns terminal control sequences into override events.
// Usage: Tee pty output (and terminal input, for focus reports) through a Scanner; it posts events as it sees them.
// Notes: Recognises BEL, OSC 133;D[;code] and the CSI I / CSI O focus reports. Everything else passes through untouched.

package eventsource

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/overrides"
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
)

// maxOSC bounds the OSC payload kept; longer payloads are dropped.
const maxOSC = 512

// Scanner is an io.Writer that reports terminal events. It keeps state across
// writes, so sequences may be split between them. Not safe for concurrent use.
type Scanner struct {
	state    state
	osc      []byte
	overflow bool
	csi      []byte
	post     func(overrides.TerminalEvent)
	log      *log.Logger
}

// NewScanner returns a scanner that calls post for each event.
func NewScanner(post func(overrides.TerminalEvent)) *Scanner {
	return &Scanner{
		post: post,
		osc:  make([]byte, 0, 64),
		csi:  make([]byte, 0, 16),
		log:  logging.For("eventsource"),
	}
}

// Write scans p. It never fails.
func (s *Scanner) Write(p []byte) (int, error) {
	for _, b := range p {
		s.step(b)
	}
	return len(p), nil
}

func (s *Scanner) step(b byte) {
	switch s.state {
	case stateGround:
		switch b {
		case 0x07:
			s.emit(overrides.TerminalEvent{Type: overrides.Bell})
		case 0x1b:
			s.state = stateEscape
		}
	case stateEscape:
		switch b {
		case '[':
			s.csi = s.csi[:0]
			s.state = stateCSI
		case ']':
			s.osc = s.osc[:0]
			s.overflow = false
			s.state = stateOSC
		case 0x1b:
		default:
			s.state = stateGround
		}
	case stateCSI:
		switch {
		case b >= '@' && b <= '~':
			s.finishCSI(b)
			s.state = stateGround
		case b == 0x1b:
			s.state = stateEscape
		case b < ' ':
			s.state = stateGround
		default:
			if len(s.csi) < cap(s.csi) {
				s.csi = append(s.csi, b)
			}
		}
	case stateOSC:
		switch b {
		case 0x07:
			s.finishOSC()
			s.state = stateGround
		case 0x1b:
			s.state = stateOSCEscape
		default:
			if len(s.osc) < maxOSC {
				s.osc = append(s.osc, b)
			} else {
				s.overflow = true
			}
		}
	case stateOSCEscape:
		// ESC \ is the string terminator; any other ESC ends the OSC and
		// starts a new sequence.
		s.finishOSC()
		s.state = stateEscape
		if b == '\\' {
			s.state = stateGround
			return
		}
		s.step(b)
	}
}

func (s *Scanner) finishCSI(final byte) {
	if len(s.csi) != 0 {
		return
	}
	switch final {
	case 'I':
		s.emit(overrides.TerminalEvent{Type: overrides.FocusGained})
	case 'O':
		s.emit(overrides.TerminalEvent{Type: overrides.FocusLost})
	}
}

func (s *Scanner) finishOSC() {
	if s.overflow {
		s.log.Debug("oversized OSC dropped")
		return
	}
	payload := string(s.osc)
	rest, ok := strings.CutPrefix(payload, "133;D")
	if !ok {
		return
	}
	code := 0
	if rest != "" {
		field, found := strings.CutPrefix(rest, ";")
		if !found {
			return
		}
		field, _, _ = strings.Cut(field, ";")
		if field != "" {
			n, err := strconv.Atoi(field)
			if err != nil {
				s.log.Debug("command end with unreadable exit code ignored", "payload", payload)
				return
			}
			code = n
		}
	}
	s.emit(overrides.Command(code))
}

func (s *Scanner) emit(ev overrides.TerminalEvent) {
	s.log.Debug("terminal event", "event", ev)
	if s.post != nil {
		s.post(ev)
	}
}
