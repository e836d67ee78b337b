// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package overrides

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/theming"
)

type table map[theming.EventKey]theming.EventOverride

func (t table) Override(k theming.EventKey) (theming.EventOverride, bool) {
	o, ok := t[k]
	return o, ok
}

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func colour(hex uint32) *paint.Color {
	c := paint.Hex(hex)
	return &c
}

func testTable() table {
	return table{
		theming.OnBell:        {Duration: 200 * time.Millisecond, BackgroundTop: colour(0xffff00)},
		theming.OnCommandFail: {Duration: 1000 * time.Millisecond, BackgroundTop: colour(0xff0000)},
		theming.OnBlur:        {Foreground: colour(0x808080)},
		theming.OnFocus:       {Duration: 100 * time.Millisecond, Foreground: colour(0xffffff)},
	}
}

func TestExpiryBoundary(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(TerminalEvent{Type: Bell}, at(0))

	e.Tick(at(199))
	require.NotNil(t, e.Current())
	assert.Equal(t, Bell, e.Current().Event.Type)

	e.Tick(at(200))
	assert.Nil(t, e.Current())
}

func TestBlurOutlivesPrimary(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(TerminalEvent{Type: FocusLost}, at(0))
	require.NotNil(t, e.Current())
	blurID := e.Current().ID
	assert.False(t, e.Focused())

	e.Dispatch(TerminalEvent{Type: Bell}, at(1000))
	e.Tick(at(1100))
	assert.Equal(t, Bell, e.Current().Event.Type, "bell renders while blurred")

	e.Tick(at(1200))
	require.NotNil(t, e.Current())
	assert.Equal(t, blurID, e.Current().ID, "reverts to blur, not idle")

	e.Tick(at(60000))
	assert.Equal(t, blurID, e.Current().ID, "blur persists")
}

func TestFocusGainedClearsBlurThenFires(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(TerminalEvent{Type: FocusLost}, at(0))
	e.Dispatch(TerminalEvent{Type: FocusGained}, at(500))
	assert.Nil(t, e.Blur())
	require.NotNil(t, e.Primary())
	assert.Equal(t, FocusGained, e.Primary().Event.Type)
	assert.True(t, e.Focused())

	e.Tick(at(600))
	assert.Nil(t, e.Current())
}

func TestFocusGainedWithoutOverrideStillClearsBlur(t *testing.T) {
	tbl := testTable()
	delete(tbl, theming.OnFocus)
	e := NewEngine(tbl, nil)
	e.Dispatch(TerminalEvent{Type: FocusLost}, at(0))
	e.Dispatch(TerminalEvent{Type: FocusGained}, at(10))
	assert.Nil(t, e.Current())
}

func TestNewerPrimaryReplacesOutright(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(Command(2), at(0))
	first := e.Primary().ID
	e.Dispatch(TerminalEvent{Type: Bell}, at(100))
	require.NotNil(t, e.Primary())
	assert.NotEqual(t, first, e.Primary().ID)
	assert.Equal(t, at(100), e.Primary().StartedAt)

	e.Tick(at(300))
	assert.Nil(t, e.Current(), "the replaced failure does not come back")
}

func TestUnconfiguredEventIsNoop(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(TerminalEvent{Type: Bell}, at(0))
	id := e.Primary().ID
	e.Dispatch(TerminalEvent{Type: CommandSuccess}, at(10))
	assert.Equal(t, id, e.Primary().ID)

	e = NewEngine(nil, nil)
	e.Dispatch(TerminalEvent{Type: Bell}, at(0))
	assert.Nil(t, e.Current())
}

func TestCommandSuccessClearsFailure(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(Command(127), at(0))
	require.Equal(t, CommandFail, e.Primary().Event.Type)
	assert.Equal(t, 127, e.Primary().Event.ExitCode)

	e.Dispatch(Command(0), at(50))
	assert.Nil(t, e.Current())
}

func TestSetSourceResets(t *testing.T) {
	e := NewEngine(testTable(), nil)
	e.Dispatch(TerminalEvent{Type: FocusLost}, at(0))
	e.Dispatch(TerminalEvent{Type: Bell}, at(0))
	e.SetSource(table{}, nil)
	assert.Nil(t, e.Current())
}

func overlaySheets(t *testing.T) *effects.SheetCache {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 10))))
	return effects.NewSheetCache(fstest.MapFS{"boom.png": {Data: buf.Bytes()}})
}

func TestOverlayLivesWithinOverride(t *testing.T) {
	tbl := table{theming.OnCommandSuccess: {
		Duration:      300 * time.Millisecond,
		SpriteOverlay: &theming.SpriteOverlay{Path: "boom.png", Columns: 4, Rows: 1, FPS: 4, Scale: 1, Opacity: 1},
	}}
	e := NewEngine(tbl, overlaySheets(t))
	e.Dispatch(Command(0), at(0))
	a := e.Current()
	require.NotNil(t, a)
	require.NotNil(t, a.Overlay)
	assert.InDelta(t, 0.3, a.Overlay.Lifetime(), 1e-12)

	e.Tick(at(150))
	assert.Equal(t, effects.OverlayPlaying, a.Overlay.Phase())

	e.Tick(at(301))
	assert.Nil(t, e.Current())
	assert.True(t, a.Overlay.Done())
}

func TestOverlayFailureKeepsOverride(t *testing.T) {
	tbl := table{theming.OnBell: {
		Duration:      time.Second,
		SpriteOverlay: &theming.SpriteOverlay{Path: "missing.png", Columns: 1, Rows: 1, FPS: 12, Scale: 1, Opacity: 1},
	}}
	e := NewEngine(tbl, overlaySheets(t))
	e.Dispatch(TerminalEvent{Type: Bell}, at(0))
	require.NotNil(t, e.Current())
	assert.Nil(t, e.Current().Overlay)
}
