// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package overrides

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailboxLatestPrimaryWins(t *testing.T) {
	var m Mailbox
	m.Post(TerminalEvent{Type: Bell})
	m.Post(Command(1))
	m.Post(Command(0))
	assert.Equal(t, []TerminalEvent{{Type: CommandSuccess}}, m.Drain())
	assert.Empty(t, m.Drain())
}

func TestMailboxKeepsFocusSeparateInArrivalOrder(t *testing.T) {
	var m Mailbox
	m.Post(TerminalEvent{Type: Bell})
	m.Post(TerminalEvent{Type: FocusLost})
	assert.Equal(t, []TerminalEvent{{Type: Bell}, {Type: FocusLost}}, m.Drain())

	m.Post(TerminalEvent{Type: FocusLost})
	m.Post(TerminalEvent{Type: Bell})
	m.Post(TerminalEvent{Type: FocusGained})
	assert.Equal(t, []TerminalEvent{{Type: Bell}, {Type: FocusGained}}, m.Drain())
}

func TestMailboxConcurrentPosts(t *testing.T) {
	var m Mailbox
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Post(TerminalEvent{Type: Bell})
				m.Post(TerminalEvent{Type: FocusLost})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, m.Drain(), 2)
}

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent("fail")
	assert.NoError(t, err)
	assert.Equal(t, CommandFail, ev.Type)
	_, err = ParseEvent("resize")
	assert.Error(t, err)
}
