// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	themes = nil
	loadErr = nil
}

func useTempRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TEXELFX_CONFIG_DIR", dir)
	resetStore()
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRootHonoursEnv(t *testing.T) {
	dir := useTempRoot(t)
	root, err := Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root != dir {
		t.Fatalf("expected root %s, got %s", dir, root)
	}

	t.Setenv("TEXELFX_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	root, err = Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if filepath.Base(root) != "texelfx" {
		t.Fatalf("expected texelfx dir under user config, got %s", root)
	}
}

func TestSystemDefaultsWritten(t *testing.T) {
	dir := useTempRoot(t)

	cfg := System()
	if got := cfg.GetString("", "theme", ""); got != DefaultTheme {
		t.Fatalf("expected theme %q, got %q", DefaultTheme, got)
	}
	if got := cfg.GetInt("viewport", "cell-height", 0); got != 16 {
		t.Fatalf("expected cell-height 16, got %d", got)
	}
	if err := Err(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	disk, err := ReadFile(filepath.Join(dir, systemConfigName))
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}
	if disk.Section("render") == nil {
		t.Fatalf("expected render section on disk")
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	dir := useTempRoot(t)

	SetSystem(Config{"theme": "phosphor", "fps": 30})
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}

	disk, err := ReadFile(filepath.Join(dir, systemConfigName))
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}
	if got := disk.GetString("", "theme", ""); got != "phosphor" {
		t.Fatalf("expected theme phosphor on disk, got %q", got)
	}
	if got := disk.GetInt("", "fps", 0); got != 30 {
		t.Fatalf("expected fps 30 on disk, got %d", got)
	}
}

func TestSystemEmptyFileGetsDefaults(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, systemConfigName), "")

	if got := System().GetString("", "log-level", ""); got != "info" {
		t.Fatalf("expected default log-level, got %q", got)
	}
}

func TestSystemBrokenFileReportsError(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, systemConfigName), "theme: [unclosed\n")

	cfg := System()
	if Err() == nil {
		t.Fatalf("expected a load error")
	}
	if got := cfg.GetString("", "theme", ""); got != DefaultTheme {
		t.Fatalf("expected defaults after a broken file, got theme %q", got)
	}
}

func TestLegacySystemMigrated(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, legacyConfigName), `{"activeTheme":"drizzle","targetFps":30}`)

	cfg := System()
	if got := cfg.GetString("", "theme", ""); got != "drizzle" {
		t.Fatalf("expected migrated theme drizzle, got %q", got)
	}
	if got := cfg.GetInt("", "fps", 0); got != 30 {
		t.Fatalf("expected migrated fps 30, got %d", got)
	}
	if _, err := os.Stat(filepath.Join(dir, systemConfigName)); err != nil {
		t.Fatalf("expected migrated config to be written: %v", err)
	}
}

func TestThemeFallsBackToEmbedded(t *testing.T) {
	useTempRoot(t)

	cfg := Theme("neon")
	if got := cfg.GetString("", "name", ""); got != "neon" {
		t.Fatalf("expected embedded neon theme, got name %q", got)
	}
	if cfg.Section("backdrop") == nil {
		t.Fatalf("expected backdrop section in embedded theme")
	}
}

func TestThemeMissingIsEmpty(t *testing.T) {
	useTempRoot(t)

	cfg := Theme("nope")
	if cfg == nil || len(cfg) != 0 {
		t.Fatalf("expected empty theme, got %v", cfg)
	}
	if Theme("") != nil {
		t.Fatalf("expected nil for an unnamed theme")
	}
}

func TestUserThemeOverridesEmbedded(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, themesDirName, "neon.yaml"), "name: neon\ncolors:\n  foreground: \"#ff0000\"\n")

	cfg := Theme("neon")
	if got := cfg.GetString("colors", "foreground", ""); got != "#ff0000" {
		t.Fatalf("expected user foreground, got %q", got)
	}
	if cfg.Section("backdrop") != nil {
		t.Fatalf("user theme should replace the embedded document, not merge with it")
	}
}

func TestSaveThemeWritesUserCopy(t *testing.T) {
	dir := useTempRoot(t)

	if err := SaveTheme("phosphor"); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	disk, err := ReadFile(filepath.Join(dir, themesDirName, "phosphor.yaml"))
	if err != nil {
		t.Fatalf("read theme: %v", err)
	}
	if got := disk.GetString("", "name", ""); got != "phosphor" {
		t.Fatalf("expected phosphor on disk, got %q", got)
	}

	SetTheme("custom", Config{"name": "custom"})
	if err := SaveTheme("custom"); err != nil {
		t.Fatalf("SaveTheme custom: %v", err)
	}
	path, err := ThemePath("custom")
	if err != nil {
		t.Fatalf("ThemePath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func TestThemeNameValidated(t *testing.T) {
	useTempRoot(t)
	for _, name := range []string{"../escape", `a\b`, ".."} {
		if _, err := ThemePath(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestReloadThemePicksUpChanges(t *testing.T) {
	dir := useTempRoot(t)
	path := filepath.Join(dir, themesDirName, "live.yaml")
	writeFile(t, path, "name: live\ncolors:\n  foreground: \"#111111\"\n")

	if got := Theme("live").GetString("colors", "foreground", ""); got != "#111111" {
		t.Fatalf("expected initial foreground, got %q", got)
	}
	writeFile(t, path, "name: live\ncolors:\n  foreground: \"#222222\"\n")
	if got := Theme("live").GetString("colors", "foreground", ""); got != "#111111" {
		t.Fatalf("expected cached foreground before reload, got %q", got)
	}
	if err := ReloadTheme("live"); err != nil {
		t.Fatalf("ReloadTheme: %v", err)
	}
	if got := Theme("live").GetString("colors", "foreground", ""); got != "#222222" {
		t.Fatalf("expected reloaded foreground, got %q", got)
	}

	writeFile(t, path, "colors: [broken\n")
	if err := ReloadTheme("live"); err == nil {
		t.Fatalf("expected reload error for a broken file")
	}
	if got := Theme("live").GetString("colors", "foreground", ""); got != "#222222" {
		t.Fatalf("expected cached theme kept after a failed reload, got %q", got)
	}
}

func TestLegacyThemeFileMigrated(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, themesDirName, "old.json"),
		`{"name":"old","rain-enabled":true,"rain-speed":2,"starfield-density":50,"starfield-enabled":false}`)

	cfg := Theme("old")
	backdrop := cfg.Section("backdrop")
	if backdrop == nil {
		t.Fatalf("expected backdrop section after migration")
	}
	if got := cfg.Section("backdrop").Section("rain"); got == nil || got["speed"] != float64(2) {
		t.Fatalf("expected rain.speed 2, got %v", got)
	}
	if got := backdrop.Section("starfield"); got == nil || got["density"] != float64(50) {
		t.Fatalf("expected starfield.density 50, got %v", got)
	}
	enable, _ := backdrop["enable"].([]interface{})
	if len(enable) != 1 || enable[0] != "rain" {
		t.Fatalf("expected enable [rain], got %v", backdrop["enable"])
	}
	if _, ok := cfg["rain-speed"]; ok {
		t.Fatalf("expected flat key to be removed")
	}
}

func TestMigrateKeepsSectionedValues(t *testing.T) {
	doc := Config{
		"backdrop": map[string]interface{}{
			"enable":          []interface{}{"grid"},
			"grid":            map[string]interface{}{"spacing": 12},
			"grid-spacing":    4,
			"matrix-enabled":  true,
			"shape-enabled":   true,
			"particles-count": 10,
		},
	}
	if !Migrate(doc) {
		t.Fatalf("expected migration to report changes")
	}
	backdrop := doc.Section("backdrop")
	if got := backdrop.Section("grid")["spacing"]; got != 12 {
		t.Fatalf("expected sectioned spacing to win, got %v", got)
	}
	if got := backdrop.Section("particles")["count"]; got != 10 {
		t.Fatalf("expected particles.count 10, got %v", got)
	}
	enable, _ := backdrop["enable"].([]interface{})
	want := []string{"grid", "matrix", "shape"}
	if len(enable) != len(want) {
		t.Fatalf("expected enable %v, got %v", want, enable)
	}
	for i, name := range want {
		if enable[i] != name {
			t.Fatalf("expected enable %v, got %v", want, enable)
		}
	}
	if Migrate(doc) {
		t.Fatalf("expected second migration to be a no-op")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Config{
		"backdrop": map[string]interface{}{
			"rain":   map[string]interface{}{"speed": 1.0},
			"enable": []interface{}{"rain"},
		},
	}
	cp := Clone(orig)
	cp.Section("backdrop").Section("rain")["speed"] = 9.0
	cp.Section("backdrop")["enable"].([]interface{})[0] = "grid"

	rain := orig["backdrop"].(map[string]interface{})["rain"].(map[string]interface{})
	if rain["speed"] != 1.0 {
		t.Fatalf("clone shares nested maps with the original")
	}
	if orig["backdrop"].(map[string]interface{})["enable"].([]interface{})[0] != "rain" {
		t.Fatalf("clone shares lists with the original")
	}
}

func TestGetDurationReadsMillis(t *testing.T) {
	cfg := Config{"render": map[string]interface{}{"reload-debounce-ms": 250}}
	if got := cfg.GetDuration("render", "reload-debounce-ms", time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", got)
	}
	if got := cfg.GetDuration("render", "missing", time.Second); got != time.Second {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	writeFile(t, path, "name: a\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, 50*time.Millisecond, func(changed []string) {
			calls <- changed
		})
	}()
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		writeFile(t, path, "name: b\n")
		time.Sleep(5 * time.Millisecond)
	}
	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1\n")

	select {
	case changed := <-calls:
		abs, _ := filepath.Abs(path)
		if len(changed) != 1 || changed[0] != abs {
			t.Fatalf("expected only %s, got %v", abs, changed)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch callback never fired")
	}
	select {
	case changed := <-calls:
		t.Fatalf("expected a single callback per burst, got another with %v", changed)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Watch did not stop on cancel")
	}
}

func TestDecodeReturnsSections(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		asJSON bool
	}{
		{"yaml", "a:\n  b:\n    c: 1\nlist:\n  - id: x\n", false},
		{"json", `{"a":{"b":{"c":1}},"list":[{"id":"x"}]}`, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Decode([]byte(tc.src), tc.asJSON)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if _, ok := cfg["a"].(Section); !ok {
				t.Fatalf("expected nested mapping as Section, got %T", cfg["a"])
			}
			if got := cfg.Section("a").Section("b"); got == nil {
				t.Fatalf("expected a.b section")
			}
			list, _ := cfg["list"].([]interface{})
			if len(list) != 1 {
				t.Fatalf("expected one list item, got %v", cfg["list"])
			}
			if _, ok := list[0].(Section); !ok {
				t.Fatalf("expected list item as Section, got %T", list[0])
			}
		})
	}
}

func TestSectionAcceptsRawDecodedMaps(t *testing.T) {
	cfg := Config{"colors": Config{"foreground": "#ff0000"}}
	if got := cfg.GetString("colors", "foreground", ""); got != "#ff0000" {
		t.Fatalf("expected foreground from a nested Config, got %q", got)
	}
}

func TestGettersCoerceDecodedNumbers(t *testing.T) {
	cfg := Config{"s": Section{"u": uint64(7), "i": int64(-2), "f": 2.9, "b": 1, "str": "4"}}
	if got := cfg.GetInt("s", "u", 0); got != 7 {
		t.Fatalf("uint64: got %d", got)
	}
	if got := cfg.GetFloat("s", "i", 0); got != -2 {
		t.Fatalf("int64: got %v", got)
	}
	if got := cfg.GetInt("s", "f", 0); got != 2 {
		t.Fatalf("float truncation: got %d", got)
	}
	if !cfg.GetBool("s", "b", false) {
		t.Fatalf("expected nonzero int to read as true")
	}
	if got := cfg.GetInt("s", "str", 0); got != 4 {
		t.Fatalf("string: got %d", got)
	}
	if got := cfg.GetInt("s", "missing", 9); got != 9 {
		t.Fatalf("default: got %d", got)
	}
}

func TestUserThemeSectionsReadable(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, "themes", "mine.yaml"), `
colors:
  foreground: "#ff0000"
backdrop:
  enable: [starfield, rain]
  rain:
    speed: 2
events:
  on-bell:
    duration: 300
`)
	doc := Theme("mine")
	if got := doc.GetString("colors", "foreground", ""); got != "#ff0000" {
		t.Fatalf("expected user foreground, got %q", got)
	}
	backdrop := doc.Section("backdrop")
	if enable, _ := backdrop["enable"].([]interface{}); len(enable) != 2 {
		t.Fatalf("expected two enabled effects, got %v", backdrop["enable"])
	}
	if got := backdrop.Section("rain")["speed"]; got != 2 {
		t.Fatalf("expected rain speed 2, got %v", got)
	}
	if doc.Section("events").Section("on-bell") == nil {
		t.Fatalf("expected on-bell block")
	}
}

func TestSystemDefaultsKeepUserSections(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, "texelfx.yaml"), "viewport:\n  cols: 120\nrender:\n  hot-reload: false\n")
	sys := System()
	if got := sys.GetInt("viewport", "cols", 0); got != 120 {
		t.Fatalf("expected user cols 120, got %d", got)
	}
	if got := sys.GetInt("viewport", "cell-height", 0); got != 16 {
		t.Fatalf("expected default cell-height added, got %d", got)
	}
	if sys.GetBool("render", "hot-reload", true) {
		t.Fatalf("expected user hot-reload false to survive defaults")
	}
}

func TestReloadRefreshesSystemAndThemes(t *testing.T) {
	dir := useTempRoot(t)
	themePath := filepath.Join(dir, "themes", "mine.yaml")
	writeFile(t, filepath.Join(dir, "texelfx.yaml"), "fps: 30\n")
	writeFile(t, themePath, "colors:\n  foreground: \"#111111\"\n")
	if got := System().GetInt("", "fps", 0); got != 30 {
		t.Fatalf("expected fps 30, got %d", got)
	}
	if got := Theme("mine").GetString("colors", "foreground", ""); got != "#111111" {
		t.Fatalf("unexpected foreground %q", got)
	}

	writeFile(t, filepath.Join(dir, "texelfx.yaml"), "fps: 24\n")
	writeFile(t, themePath, "colors:\n  foreground: \"#222222\"\n")
	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := System().GetInt("", "fps", 0); got != 24 {
		t.Fatalf("expected fps 24 after reload, got %d", got)
	}
	if got := Theme("mine").GetString("colors", "foreground", ""); got != "#222222" {
		t.Fatalf("expected reloaded foreground, got %q", got)
	}
}

func TestThemeNamesIncludesUserThemes(t *testing.T) {
	dir := useTempRoot(t)
	writeFile(t, filepath.Join(dir, "themes", "mine.yaml"), "colors: {}\n")
	writeFile(t, filepath.Join(dir, "themes", "old.json"), "{}")
	writeFile(t, filepath.Join(dir, "themes", "notes.txt"), "skip")
	writeFile(t, filepath.Join(dir, "themes", "neon.yaml"), "colors: {}\n")

	names := ThemeNames()
	want := map[string]bool{"drizzle": true, "mine": true, "neon": true, "old": true, "phosphor": true}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i, name := range names {
		if !want[name] {
			t.Fatalf("unexpected theme %q in %v", name, names)
		}
		if i > 0 && names[i-1] >= name {
			t.Fatalf("expected sorted unique names, got %v", names)
		}
	}
}
