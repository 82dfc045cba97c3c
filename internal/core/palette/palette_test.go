package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededPaletteIsDeterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.RandColor(), b.RandColor())
	}
}

func TestRandColorIsOpaque(t *testing.T) {
	p := NewSeeded(7)
	seen := map[color.RGBA]struct{}{}
	for i := 0; i < 50; i++ {
		c := p.RandColor()
		assert.Equal(t, uint8(0xff), c.A)
		seen[c] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#0a10ff", Hex(color.RGBA{R: 0x0a, G: 0x10, B: 0xff, A: 0xff}))
	assert.Equal(t, "#000000", Hex(color.RGBA{}))
}
