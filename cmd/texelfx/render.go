// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/render.go
// Summary: Headless rendering of a theme to numbered PNG files.
// Usage: texelfx render --frames 120 --out frames --event bell@500 --event fail@1500

package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelfx/internal/compositor"
	"github.com/framegrace/texelfx/internal/overrides"
)

var renderOpts struct {
	frames int
	fps    int
	out    string
	cols   int
	rows   int
	events []string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render frames of a theme to PNG files",
	Long: `Render a fixed number of frames at a fixed time step without a terminal.
Events can be injected at a time offset with --event name@ms, where name is
bell, success, fail, focus or blur.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.IntVar(&renderOpts.frames, "frames", 60, "Number of frames to render")
	f.IntVar(&renderOpts.fps, "fps", 0, "Frames per second of animation time [default: fps from texelfx.yaml]")
	f.StringVar(&renderOpts.out, "out", "frames", "Output directory")
	f.IntVar(&renderOpts.cols, "cols", 0, "Columns [default: terminal width, else viewport.cols]")
	f.IntVar(&renderOpts.rows, "rows", 0, "Rows [default: terminal height, else viewport.rows]")
	f.StringArrayVar(&renderOpts.events, "event", nil, "Inject an event, name@milliseconds (repeatable)")
}

// scheduledEvent fires once the render clock reaches at.
type scheduledEvent struct {
	at time.Duration
	ev overrides.TerminalEvent
}

// parseSchedule reads name@ms specs, sorted by time.
func parseSchedule(specs []string) ([]scheduledEvent, error) {
	out := make([]scheduledEvent, 0, len(specs))
	for _, spec := range specs {
		name, ms, ok := strings.Cut(spec, "@")
		if !ok {
			ms = "0"
		}
		ev, err := overrides.ParseEvent(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--event %q: %w", spec, err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(ms))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("--event %q: invalid time %q", spec, ms)
		}
		out = append(out, scheduledEvent{at: time.Duration(n) * time.Millisecond, ev: ev})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out, nil
}

func renderSize(s settings) (cols, rows int) {
	cols, rows = s.Cols, s.Rows
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}
	if renderOpts.cols > 0 {
		cols = renderOpts.cols
	}
	if renderOpts.rows > 0 {
		rows = renderOpts.rows
	}
	return cols, rows
}

func runRender(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if renderOpts.fps > 0 {
		s.FPS = renderOpts.fps
	}
	if renderOpts.frames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}
	schedule, err := parseSchedule(renderOpts.events)
	if err != nil {
		return err
	}
	loop := newLoop(s)
	if err := os.MkdirAll(renderOpts.out, 0755); err != nil {
		return err
	}

	cols, rows := renderSize(s)
	grid := sampleGrid(cols, rows, s.CellW, s.CellH)
	in := inputsFor(grid)
	step := time.Second / time.Duration(s.FPS)
	start := time.Unix(0, 0)
	for i := 0; i < renderOpts.frames; i++ {
		offset := time.Duration(i) * step
		for len(schedule) > 0 && schedule[0].at <= offset {
			loop.Post(schedule[0].ev)
			schedule = schedule[1:]
		}
		frame := loop.Frame(start.Add(offset), in)
		for _, err := range frame.Errors {
			cliLog.Warn("pass skipped", "frame", i, "err", err)
		}
		path := filepath.Join(renderOpts.out, fmt.Sprintf("frame-%05d.png", i))
		if err := writePNG(path, frame); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", renderOpts.frames, renderOpts.out)
	return nil
}

func writePNG(path string, frame *compositor.Frame) error {
	if frame.Final == nil {
		return fmt.Errorf("%s: frame has no output texture", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame.Final); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
