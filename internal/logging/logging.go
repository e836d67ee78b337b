// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logging/logging.go
// Summary: Root structured logger and per-component children.
// Usage: cmd/texelfx calls Configure once at startup; packages call For("effects") when constructed.
// Notes: Children are tracked so a later Configure reaches loggers created at package init.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu       sync.RWMutex
	root     = newRoot(os.Stderr, log.InfoLevel)
	children = map[string]*log.Logger{}
)

func newRoot(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	l.SetTimeFormat("")
	return l
}

// Configure sets the level and destination of the root logger. An empty level
// falls back to TEXELFX_LOG_LEVEL and then to info. An empty file logs to stderr.
func Configure(level, file string) error {
	if level == "" {
		level = os.Getenv("TEXELFX_LOG_LEVEL")
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	var out io.Writer = os.Stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}
	mu.Lock()
	defer mu.Unlock()
	root = newRoot(out, lvl)
	retarget(out, lvl)
	return nil
}

func retarget(w io.Writer, lvl log.Level) {
	for _, child := range children {
		child.SetOutput(w)
		child.SetLevel(lvl)
	}
}

// SetOutput redirects the root logger; tests use it to silence or capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	lvl := root.GetLevel()
	root = newRoot(w, lvl)
	retarget(w, lvl)
}

// ParseLevel maps a level name to a log level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// Root returns the process-wide logger.
func Root() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// For returns the child logger prefixed with the component name, creating it on
// first use.
func For(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if child, ok := children[component]; ok {
		return child
	}
	child := root.WithPrefix(component)
	children[component] = child
	return child
}
