// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/effective.go
// Summary: Resolves the base theme and an active override into one effective theme.

package theming

// WithOverride substitutes every field o sets. Values swap instantly; there is
// no interpolation. A nil override returns base unchanged.
func WithOverride(base EffectiveTheme, o *EventOverride) EffectiveTheme {
	if o == nil {
		return base
	}
	out := base
	if o.Foreground != nil {
		out.Foreground = *o.Foreground
	}
	if o.BackgroundTop != nil {
		out.BackgroundTop = *o.BackgroundTop
	}
	if o.BackgroundBottom != nil {
		out.BackgroundBottom = *o.BackgroundBottom
	}
	if o.CursorColor != nil {
		out.Cursor = *o.CursorColor
	}
	if o.CursorShape != nil {
		out.CursorShape = *o.CursorShape
	}
	if o.TextShadowColor != nil {
		out.TextShadow.Color = *o.TextShadowColor
		out.TextShadow.Enabled = true
	}
	if o.TextShadowRadius != nil {
		out.TextShadow.Radius = *o.TextShadowRadius
		out.TextShadow.Enabled = true
	}
	if o.TextShadowIntensity != nil {
		out.TextShadow.Intensity = *o.TextShadowIntensity
		out.TextShadow.Enabled = true
	}
	return out
}
