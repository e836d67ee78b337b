// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolResizeReplacesTextures(t *testing.T) {
	p := NewTexturePool(0)
	require.True(t, p.Resize(8, 4))
	a, err := p.Get("a", false)
	require.NoError(t, err)
	a.Pix[0] = 9

	same, err := p.Get("a", false)
	require.NoError(t, err)
	assert.Same(t, a, same)
	assert.False(t, p.Resize(8, 4))

	gen := p.Generation()
	require.True(t, p.Resize(16, 4))
	assert.Zero(t, p.Len())
	assert.NotEqual(t, gen, p.Generation())

	b, err := p.Get("a", false)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 16, b.Rect.Dx())
}

func TestPoolGetReset(t *testing.T) {
	p := NewTexturePool(0)
	p.Resize(2, 2)
	a, _ := p.Get("a", false)
	a.Pix[5] = 1
	a, _ = p.Get("a", true)
	assert.Zero(t, a.Pix[5])
}

func TestPoolBudget(t *testing.T) {
	p := NewTexturePool(10)
	p.Resize(2, 2)
	_, err := p.Get("a", false)
	require.NoError(t, err)
	_, err = p.Get("b", false)
	require.NoError(t, err)
	_, err = p.Get("c", false)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	p.Resize(1, 1)
	_, err = p.Get("c", false)
	assert.NoError(t, err, "a resize returns the budget")
}
