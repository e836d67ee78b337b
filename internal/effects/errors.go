// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/errors.go
// Summary: Error types reported while configuring or instantiating effects.

package effects

import (
	"errors"
	"fmt"
)

// ConfigError describes a property that was clamped or ignored. It is logged,
// never returned to callers as fatal.
type ConfigError struct {
	Kind   string
	Key    string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s.%s=%v: %s", e.Kind, e.Key, e.Value, e.Reason)
}

// InstantiationError means an effect instance could not be brought up, for
// example because its sprite sheet is missing. Only that instance is disabled.
type InstantiationError struct {
	Kind Kind
	Err  error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *InstantiationError) Unwrap() error { return e.Err }

var errUnknownKind = errors.New("unknown effect kind")
