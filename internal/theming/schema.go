// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/schema.go
// Summary: Property schema for theme sections and event override blocks.
// Usage: Schema() is what `texelfx schema` prints and what FromConfig validates against.

package theming

import "github.com/framegrace/texelfx/internal/effects"

var colorsSchema = effects.Schema{
	Group: "colors",
	Props: []effects.Property{
		{Name: "background-top", Type: effects.TypeColor, Default: "#1a0a2e"},
		{Name: "background-bottom", Type: effects.TypeColor, Default: "#16213e"},
		{Name: "foreground", Type: effects.TypeColor, Default: "#c8c8c8"},
		{Name: "cursor", Type: effects.TypeColor, Default: "#00ffff"},
		{Name: "cursor-shape", Type: effects.TypeEnum, Default: CursorBlock, Values: cursorShapes},
		{Name: "selection", Type: effects.TypeColor, Default: "rgba(80,120,200,0.45)"},
	},
}

var cursorGlowSchema = effects.Schema{
	Group: "cursor-glow",
	Props: []effects.Property{
		{Name: "enabled", Type: effects.TypeBool, Default: false},
		{Name: "radius", Type: effects.TypeFloat, Default: 6.0, Min: 0, Max: 32, Doc: "px"},
		{Name: "intensity", Type: effects.TypeFloat, Default: 0.8, Min: 0, Max: 1},
		{Name: "color", Type: effects.TypeColor, Default: "#00ffff"},
	},
}

var textShadowSchema = effects.Schema{
	Group: "text-shadow",
	Props: []effects.Property{
		{Name: "enabled", Type: effects.TypeBool, Default: false},
		{Name: "color", Type: effects.TypeColor, Default: "rgba(0,255,255,0.6)"},
		{Name: "radius", Type: effects.TypeFloat, Default: 8.0, Min: 0, Max: 32, Doc: "px"},
		{Name: "intensity", Type: effects.TypeFloat, Default: 0.6, Min: 0, Max: 1},
	},
}

var crtSchema = effects.Schema{
	Group: "crt",
	Props: []effects.Property{
		{Name: "enabled", Type: effects.TypeBool, Default: false},
		{Name: "scanline", Type: effects.TypeFloat, Default: 0.15, Min: 0, Max: 1, Doc: "scanline darkening"},
		{Name: "scanline-frequency", Type: effects.TypeFloat, Default: 2.0, Min: 1, Max: 8, Doc: "px per scanline period"},
		{Name: "curvature", Type: effects.TypeFloat, Default: 0.02, Min: 0, Max: 0.5},
		{Name: "vignette", Type: effects.TypeFloat, Default: 0.3, Min: 0, Max: 1},
		{Name: "chromatic-aberration", Type: effects.TypeFloat, Default: 0.0, Min: 0, Max: 8, Doc: "px channel offset"},
		{Name: "bloom", Type: effects.TypeFloat, Default: 0.0, Min: 0, Max: 1},
		{Name: "flicker", Type: effects.TypeFloat, Default: 0.0, Min: 0, Max: 1},
	},
}

var eventSchema = effects.Schema{
	Group: "events",
	Props: []effects.Property{
		{Name: "duration", Type: effects.TypeInt, Default: 0, Min: 0, Max: 600000, Doc: "ms; 0 persists until cleared"},
		{Name: "foreground", Type: effects.TypeColor, Doc: "unset keeps the theme value"},
		{Name: "background-top", Type: effects.TypeColor},
		{Name: "background-bottom", Type: effects.TypeColor},
		{Name: "cursor-color", Type: effects.TypeColor},
		{Name: "cursor-shape", Type: effects.TypeEnum, Values: cursorShapes},
		{Name: "text-shadow-color", Type: effects.TypeColor},
		{Name: "text-shadow-radius", Type: effects.TypeFloat, Min: 0, Max: 32, Doc: "px"},
		{Name: "text-shadow-intensity", Type: effects.TypeFloat, Min: 0, Max: 1},
	},
}

var spritePatchSchema = effects.Schema{
	Group: "sprite-patch",
	Props: []effects.Property{
		{Name: "path", Type: effects.TypeString},
		{Name: "columns", Type: effects.TypeInt, Min: 1, Max: 64},
		{Name: "rows", Type: effects.TypeInt, Min: 1, Max: 64},
		{Name: "fps", Type: effects.TypeFloat, Min: 0.1, Max: 120},
		{Name: "opacity", Type: effects.TypeFloat, Min: 0, Max: 1},
		{Name: "scale", Type: effects.TypeFloat, Min: 0.1, Max: 10},
		{Name: "motion-speed", Type: effects.TypeFloat, Min: 0, Max: 20},
	},
}

var spriteOverlaySchema = effects.Schema{
	Group: "sprite-overlay",
	Props: []effects.Property{
		{Name: "path", Type: effects.TypeString, Default: "", Doc: "required"},
		{Name: "position", Type: effects.TypeEnum, Default: "center", Values: []string{"center", "cursor", "sprite", "random"}},
		{Name: "columns", Type: effects.TypeInt, Default: 1, Min: 1, Max: 64},
		{Name: "rows", Type: effects.TypeInt, Default: 1, Min: 1, Max: 64},
		{Name: "frame-count", Type: effects.TypeInt, Default: 0, Min: 0, Max: 4096, Doc: "0 means columns*rows"},
		{Name: "fps", Type: effects.TypeFloat, Default: 12.0, Min: 0.1, Max: 120},
		{Name: "scale", Type: effects.TypeFloat, Default: 1.0, Min: 0.1, Max: 10},
		{Name: "opacity", Type: effects.TypeFloat, Default: 1.0, Min: 0, Max: 1},
	},
}

// Schema returns every property group: one per effect kind, then the theme
// sections and the event override blocks.
func Schema() []*effects.Schema {
	out := effects.Schemas()
	return append(out, &colorsSchema, &cursorGlowSchema, &textShadowSchema, &crtSchema,
		&eventSchema, &spritePatchSchema, &spriteOverlaySchema)
}
