// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package frameloop

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelfx/internal/compositor"
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/overrides"
	"github.com/framegrace/texelfx/internal/paint"
	"github.com/framegrace/texelfx/internal/scene"
	"github.com/framegrace/texelfx/internal/theming"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func ptr[T any](v T) *T { return &v }

func blankPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func testSheets(t *testing.T) *effects.SheetCache {
	t.Helper()
	return effects.NewSheetCache(fstest.MapFS{
		"cat.png":  {Data: blankPNG(t, 64, 16)},
		"boom.png": {Data: blankPNG(t, 40, 10)},
	})
}

var (
	red  = paint.Hex(0xff0000)
	grey = paint.Hex(0x808080)
)

func testTheme() *theming.Theme {
	th := theming.Default()
	th.Backdrop = []effects.Spec{
		{Kind: effects.KindStarfield, Config: effects.EffectConfig{}},
		{Kind: effects.KindSprite, Config: effects.EffectConfig{"path": "cat.png", "columns": 4, "rows": 2, "fps": 8}},
	}
	th.Events = map[theming.EventKey]theming.EventOverride{
		theming.OnCommandSuccess: {
			Duration:   300 * time.Millisecond,
			Foreground: &red,
			SpriteOverlay: &theming.SpriteOverlay{
				Path: "boom.png", Position: effects.OverlayCenter,
				Columns: 4, Rows: 1, FPS: 4, Scale: 1, Opacity: 1,
			},
		},
		theming.OnBell: {
			Duration:    200 * time.Millisecond,
			SpritePatch: &theming.SpritePatch{Opacity: ptr(0.5)},
			Patches:     map[effects.Kind]effects.EffectConfig{effects.KindStarfield: {"speed": 2.0}},
		},
		theming.OnBlur: {Foreground: &grey},
	}
	return th
}

func testInputs() Inputs {
	grid := compositor.NewTextGrid(40, 10, 8, 16)
	grid.WriteString(0, 0, "$ make", tcell.StyleDefault)
	return Inputs{Viewport: geom.R(0, 0, 320, 160), Grid: grid, Cursor: geom.V(52, 8)}
}

func newLoop(t *testing.T) *Loop {
	t.Helper()
	l, errs := New(testTheme(), testSheets(t), Options{})
	require.Empty(t, errs)
	return l
}

func images(sc *scene.Scene) int {
	n := 0
	for _, p := range sc.Items() {
		if _, ok := p.(scene.Image); ok {
			n++
		}
	}
	return n
}

func TestSuccessOverrideLifecycle(t *testing.T) {
	l := newLoop(t)
	in := testInputs()
	base := l.Theme().Base

	l.Post(overrides.Command(0))
	f := l.Frame(at(0), in)
	require.NotNil(t, f.Final)
	assert.Equal(t, red, l.Effective().Foreground)
	ov := l.Engine().Primary().Overlay
	require.NotNil(t, ov)
	assert.Equal(t, geom.V(160, 80), ov.Position())
	assert.Equal(t, 2, images(l.Scene()))

	l.Frame(at(299), in)
	assert.Equal(t, red, l.Effective().Foreground)
	assert.Equal(t, 2, images(l.Scene()))

	l.Frame(at(301), in)
	if diff := cmp.Diff(base, l.Effective()); diff != "" {
		t.Errorf("effective theme after expiry (-want +got):\n%s", diff)
	}
	assert.Nil(t, l.Engine().Current())
	assert.True(t, ov.Done())
	assert.Equal(t, 1, images(l.Scene()), "only the backdrop sprite remains")
}

func TestPatchesAppliedInPlaceAndRestored(t *testing.T) {
	l := newLoop(t)
	in := testInputs()
	l.Frame(at(0), in)

	sprite, ok := l.Renderer().Effect(effects.KindSprite)
	require.True(t, ok)
	stars, ok := l.Renderer().Effect(effects.KindStarfield)
	require.True(t, ok)
	before, _ := sprite.(effects.Positioned).Position()

	l.Post(overrides.TerminalEvent{Type: overrides.Bell})
	l.Frame(at(16), in)
	assert.Equal(t, 0.5, sprite.Snapshot()["opacity"])
	assert.Equal(t, 2.0, stars.Snapshot()["speed"])
	after, _ := sprite.(effects.Positioned).Position()
	assert.Equal(t, before, after)
	assert.Equal(t, l.Engine().Current().ID, l.themes.Applied())

	l.Frame(at(250), in)
	assert.Equal(t, 1.0, sprite.Snapshot()["opacity"])
	assert.Equal(t, 0.3, stars.Snapshot()["speed"])
	assert.Empty(t, l.Renderer().Patched())
}

func TestReplacementRestoresPatches(t *testing.T) {
	l := newLoop(t)
	in := testInputs()
	sprite, _ := l.Renderer().Effect(effects.KindSprite)

	l.Post(overrides.TerminalEvent{Type: overrides.Bell})
	l.Frame(at(0), in)
	assert.Equal(t, 0.5, sprite.Snapshot()["opacity"])

	l.Post(overrides.Command(0))
	l.Frame(at(50), in)
	assert.Equal(t, 1.0, sprite.Snapshot()["opacity"])
	assert.Equal(t, red, l.Effective().Foreground)
}

func TestSameFrameEventsLatestWins(t *testing.T) {
	l := newLoop(t)
	l.Post(overrides.TerminalEvent{Type: overrides.Bell})
	l.Post(overrides.Command(0))
	l.Frame(at(0), testInputs())
	assert.Equal(t, overrides.CommandSuccess, l.Engine().Current().Event.Type)
}

func TestBlurAndFocus(t *testing.T) {
	l := newLoop(t)
	in := testInputs()

	l.Post(overrides.TerminalEvent{Type: overrides.FocusLost})
	l.Frame(at(0), in)
	assert.Equal(t, grey, l.Effective().Foreground)

	l.Frame(at(5000), in)
	assert.Equal(t, grey, l.Effective().Foreground, "blur override persists")

	l.Post(overrides.TerminalEvent{Type: overrides.FocusGained})
	l.Frame(at(5016), in)
	assert.Equal(t, l.Theme().Base.Foreground, l.Effective().Foreground)
}

func TestReloadResetsState(t *testing.T) {
	l := newLoop(t)
	in := testInputs()
	l.Post(overrides.Command(0))
	l.Frame(at(0), in)
	require.NotNil(t, l.Engine().Current())

	next := theming.Default()
	next.Name = "plain"
	next.Base.Foreground = paint.Hex(0x00ff00)
	require.Empty(t, l.Reload(next, testSheets(t)))

	assert.Nil(t, l.Engine().Current())
	assert.Empty(t, l.Renderer().Kinds())
	l.Frame(at(16), in)
	assert.Equal(t, next.Base, l.Effective())
	assert.Zero(t, images(l.Scene()))
}

func TestQueuedReloadAppliesOnNextFrame(t *testing.T) {
	l := newLoop(t)
	next := theming.Default()
	next.Name = "queued"

	done := make(chan struct{})
	go func() {
		l.QueueReload(next, testSheets(t))
		close(done)
	}()
	<-done
	assert.NotSame(t, next, l.Theme())

	l.Frame(at(0), testInputs())
	assert.Same(t, next, l.Theme())
}

func TestFirstFrameDoesNotAdvanceClock(t *testing.T) {
	l := newLoop(t)
	l.Frame(at(1000), testInputs())
	assert.Zero(t, l.Clock())
	l.Frame(at(1100), testInputs())
	assert.InDelta(t, 0.1, l.Clock(), 1e-9)
	l.Frame(at(9000), testInputs())
	assert.InDelta(t, 0.1+maxStep, l.Clock(), 1e-9)
}

func TestFailedEffectDoesNotStopLoop(t *testing.T) {
	th := testTheme()
	th.Backdrop = append(th.Backdrop, effects.Spec{Kind: effects.KindShape, Config: effects.EffectConfig{}})
	th.Backdrop[1].Config = effects.EffectConfig{"path": "missing.png"}
	l, errs := New(th, testSheets(t), Options{})
	require.Len(t, errs, 1)
	assert.Equal(t, []effects.Kind{effects.KindStarfield, effects.KindShape}, l.Renderer().Kinds())

	f := l.Frame(at(0), testInputs())
	assert.Empty(t, f.Skipped)
}

func TestRunStopsOnCancel(t *testing.T) {
	l, _ := New(testTheme(), testSheets(t), Options{FPS: 200})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	err := l.Run(ctx, testInputs, func(f *compositor.Frame) error {
		frames++
		if frames == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, frames, 3)
}

func TestRunReturnsSinkError(t *testing.T) {
	l, _ := New(testTheme(), testSheets(t), Options{FPS: 200})
	boom := errors.New("display gone")
	err := l.Run(context.Background(), testInputs, func(*compositor.Frame) error { return boom })
	assert.ErrorIs(t, err, boom)
}
