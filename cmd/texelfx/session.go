// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/session.go
// Summary: Theme loading, system settings and hot reload shared by the subcommands.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/internal/compositor"
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/frameloop"
	"github.com/framegrace/texelfx/internal/geom"
	"github.com/framegrace/texelfx/internal/logging"
	"github.com/framegrace/texelfx/internal/theming"
)

var cliLog = logging.For("texelfx")

// settings are the system config values the subcommands care about.
type settings struct {
	Theme    string
	FPS      int
	Cols     int
	Rows     int
	CellW    int
	CellH    int
	Budget   int
	Reload   bool
	Debounce time.Duration
}

// loadSettings reads the system config and rejects unknown theme names.
func loadSettings() (settings, error) {
	sys := config.System()
	s := settings{
		Theme:    sys.GetString("", "theme", config.DefaultTheme),
		FPS:      sys.GetInt("", "fps", frameloop.DefaultFPS),
		Cols:     sys.GetInt("viewport", "cols", 100),
		Rows:     sys.GetInt("viewport", "rows", 30),
		CellW:    sys.GetInt("viewport", "cell-width", 8),
		CellH:    sys.GetInt("viewport", "cell-height", 16),
		Budget:   sys.GetInt("render", "texture-budget", 0),
		Reload:   sys.GetBool("render", "hot-reload", true),
		Debounce: sys.GetDuration("render", "reload-debounce-ms", config.DefaultDebounce),
	}
	if name := viper.GetString("theme"); name != "" {
		s.Theme = name
	}
	return s, checkTheme(s.Theme)
}

func checkTheme(name string) error {
	names := config.ThemeNames()
	if slices.Contains(names, name) {
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
}

// loadTheme builds a theme and the sheet cache its sprite paths resolve
// against. Parse problems are logged; they never prevent loading.
func loadTheme(name string) (*theming.Theme, *effects.SheetCache) {
	doc := config.Theme(name)
	fsys, dir := config.ThemeAssets(name)
	theme, errs := theming.FromConfig(name, dir, doc)
	for _, err := range errs {
		cliLog.Warn("theme problem", "theme", name, "err", err)
	}
	return theme, effects.NewSheetCache(fsys)
}

func newLoop(s settings) *frameloop.Loop {
	theme, sheets := loadTheme(s.Theme)
	loop, errs := frameloop.New(theme, sheets, frameloop.Options{FPS: s.FPS, Budget: s.Budget})
	for _, err := range errs {
		cliLog.Error("effect disabled", "err", err)
	}
	cliLog.Info("theme loaded", "theme", theme.Name, "effects", loop.Renderer().Kinds())
	return loop
}

// watchTheme hot-reloads the theme into loop until ctx is done. The user
// theme file and texelfx.yaml are watched; embedded themes have no file.
func watchTheme(ctx context.Context, loop *frameloop.Loop, s settings) {
	if !s.Reload {
		return
	}
	var paths []string
	themePath, err := config.ThemePath(s.Theme)
	if err != nil {
		cliLog.Warn("theme hot reload disabled", "err", err)
		return
	}
	if _, err := os.Stat(themePath); err == nil {
		paths = append(paths, themePath)
	} else {
		cliLog.Debug("using embedded theme, only texelfx.yaml is watched", "theme", s.Theme)
	}
	systemPath, err := config.SystemPath()
	if err == nil {
		if abs, err := filepath.Abs(systemPath); err == nil {
			systemPath = abs
		}
		paths = append(paths, systemPath)
	}
	if len(paths) == 0 {
		return
	}
	if err := config.Watch(ctx, paths, s.Debounce, reloader(loop, s.Theme, systemPath)); err != nil {
		cliLog.Error("theme watcher stopped", "err", err)
	}
}

// reloader re-reads the changed files and queues the theme for the next
// frame. A change to texelfx.yaml refreshes the whole store.
func reloader(loop *frameloop.Loop, theme, systemPath string) func([]string) {
	return func(changed []string) {
		var err error
		if slices.Contains(changed, systemPath) {
			err = config.Reload()
		} else {
			err = config.ReloadTheme(theme)
		}
		if err != nil {
			cliLog.Error("config reload failed, keeping current theme", "err", err)
			return
		}
		th, sheets := loadTheme(theme)
		loop.QueueReload(th, sheets)
	}
}

// sampleGrid fills a grid with a prompt-like demo screen.
func sampleGrid(cols, rows, cellW, cellH int) *compositor.TextGrid {
	g := compositor.NewTextGrid(cols, rows, cellW, cellH)
	lines := []string{
		"$ texelfx preview",
		"backdrop effects render under the text",
		"b bell  s success  f fail  q quit",
		"$ ",
	}
	for i, line := range lines {
		if i >= rows {
			break
		}
		g.WriteString(0, i, line, defaultStyle)
	}
	last := len(lines) - 1
	if last >= rows {
		last = rows - 1
	}
	g.CursorRow = last
	g.CursorCol = len(lines[last])
	if g.CursorCol >= cols {
		g.CursorCol = cols - 1
	}
	return g
}

func viewportOf(g *compositor.TextGrid) geom.Rect {
	size := g.PixelSize()
	return geom.R(0, 0, float64(size.X), float64(size.Y))
}

func cursorCentre(g *compositor.TextGrid) geom.Vec2 {
	r := g.CursorRect()
	return geom.V(float64(r.Min.X+r.Max.X)/2, float64(r.Min.Y+r.Max.Y)/2)
}

func inputsFor(g *compositor.TextGrid) frameloop.Inputs {
	return frameloop.Inputs{Viewport: viewportOf(g), Grid: g, Cursor: cursorCentre(g)}
}
