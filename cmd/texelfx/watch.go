// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/watch.go
// Summary: Runs a command under a pty and reports the terminal events its output carries.
// Usage: texelfx watch --log-file fx.log -- bash; events and the overrides they trigger go to the log.
// Notes: Shells report command status through OSC 133 D sequences; see the shell integration of your terminal.

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelfx/internal/eventsource"
	"github.com/framegrace/texelfx/internal/overrides"
	"github.com/framegrace/texelfx/internal/theming"
)

var watchCmd = &cobra.Command{
	Use:   "watch [-- command [args...]]",
	Short: "Run a command and log the terminal events it emits",
	Long: `Run a command (default $SHELL) under a pseudo-terminal, passing input and
output through unchanged. Bells, focus reports and OSC 133 command status
sequences are decoded and logged together with the override the theme would
apply. Use --log-file to keep the log out of the terminal.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	theme, _ := loadTheme(s.Theme)

	if len(args) == 0 {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		args = []string{shell}
	}
	c := exec.Command(args[0], args[1:]...)
	c.Env = append(os.Environ(), "TEXELFX_WATCH=1")

	ptmx, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				cliLog.Debug("resize pty", "err", err)
			}
		}
	}()
	winch <- syscall.SIGWINCH

	if term.IsTerminal(int(os.Stdin.Fd())) {
		old, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("make terminal raw: %w", err)
		}
		defer term.Restore(int(os.Stdin.Fd()), old)
	}

	reporter := eventReporter(theme)
	scanner := eventsource.NewScanner(reporter)
	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()
	_, _ = io.Copy(io.MultiWriter(cmd.OutOrStdout(), scanner), ptmx)

	if err := c.Wait(); err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			cliLog.Info("command exited", "code", exit.ExitCode())
			return nil
		}
		return err
	}
	return nil
}

// eventReporter logs each event with the override it resolves to, tracking
// the override state the way the frame loop would.
func eventReporter(theme *theming.Theme) func(overrides.TerminalEvent) {
	engine := overrides.NewEngine(theme, nil)
	return func(ev overrides.TerminalEvent) {
		now := time.Now()
		engine.Tick(now)
		engine.Dispatch(ev, now)
		cur := engine.Current()
		if cur == nil {
			cliLog.Info("terminal event", "event", ev, "override", "none")
			return
		}
		cliLog.Info("terminal event", "event", ev, "override", cur.Event.Key(),
			"duration", cur.Override.Duration, "id", cur.ID)
	}
}
