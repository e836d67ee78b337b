// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/kind.go
// Summary: The closed set of backdrop effect kinds.

package effects

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven backdrop effect variants.
type Kind uint8

const (
	KindGrid Kind = iota
	KindStarfield
	KindRain
	KindMatrix
	KindParticles
	KindShape
	KindSprite
	kindCount
)

var kindNames = [kindCount]string{
	KindGrid:      "grid",
	KindStarfield: "starfield",
	KindRain:      "rain",
	KindMatrix:    "matrix",
	KindParticles: "particles",
	KindShape:     "shape",
	KindSprite:    "sprite",
}

// Kinds lists every kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k < kindCount }

// ParseKind resolves a kind name. "particle" and "matrix-rain" are accepted aliases.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "particle":
		return KindParticles, nil
	case "matrix-rain", "matrixrain":
		return KindMatrix, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown backdrop effect %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
