// Package palette hands out display colours from an injected random source.
package palette

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"sync"
)

// Palette generates random opaque colours. It is safe for concurrent use.
type Palette struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a palette drawing from src.
func New(src rand.Source) *Palette {
	return &Palette{rng: rand.New(src)}
}

// NewSeeded creates a palette with a deterministic PCG source.
func NewSeeded(seed uint64) *Palette {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandColor returns a colour with each channel uniform in [0, 255].
func (p *Palette) RandColor() color.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return color.RGBA{
		R: uint8(p.rng.IntN(256)),
		G: uint8(p.rng.IntN(256)),
		B: uint8(p.rng.IntN(256)),
		A: 0xff,
	}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
