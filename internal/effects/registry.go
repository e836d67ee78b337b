// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/registry.go
// Summary: Fixed factory table for the seven backdrop effect kinds.
// Usage: New(kind, cfg, env) builds a configured instance.
// Notes: The table is closed; there is no runtime registration.

package effects

// Env carries collaborators an effect may need at construction.
type Env struct {
	// Sheets resolves sprite sheet paths. Nil disables sprites.
	Sheets *SheetCache
}

type factory struct {
	schema *Schema
	build  func(Env) Effect
}

var factories = map[Kind]factory{
	KindGrid:      {schema: &gridSchema, build: func(Env) Effect { return NewGrid() }},
	KindStarfield: {schema: &starfieldSchema, build: func(Env) Effect { return NewStarfield() }},
	KindRain:      {schema: &rainSchema, build: func(Env) Effect { return NewRain() }},
	KindMatrix:    {schema: &matrixSchema, build: func(Env) Effect { return NewMatrix() }},
	KindParticles: {schema: &particlesSchema, build: func(Env) Effect { return NewParticles() }},
	KindShape:     {schema: &shapeSchema, build: func(Env) Effect { return NewShape() }},
	KindSprite:    {schema: &spriteSchema, build: func(env Env) Effect { return NewSprite(env.Sheets) }},
}

func lookup(k Kind) (factory, bool) {
	f, ok := factories[k]
	return f, ok
}

// failer is implemented by effects that can fail to instantiate.
type failer interface {
	Err() error
}

// New builds and configures an instance of kind. When the instance cannot come
// up it is still returned, disabled, together with an InstantiationError.
func New(kind Kind, cfg EffectConfig, env Env) (Effect, error) {
	f, ok := lookup(kind)
	if !ok {
		return nil, &InstantiationError{Kind: kind, Err: errUnknownKind}
	}
	eff := f.build(env)
	eff.Configure(cfg)
	if fl, ok := eff.(failer); ok {
		if err := fl.Err(); err != nil {
			return eff, &InstantiationError{Kind: kind, Err: err}
		}
	}
	return eff, nil
}
