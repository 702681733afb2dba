// Package effects holds the per-frame state of the visuals triggered by board
// hits: board glow, particle bursts and lyric reveal. Nothing here draws;
// renderers read the state.
package effects

import (
	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/vmath"
)

// RGB is a linear colour with components in [0,1]
type RGB struct {
	R, G, B float64
}

// Hex builds an RGB from 0xRRGGBB
func Hex(c uint32) RGB {
	return RGB{
		R: float64((c>>16)&0xff) / 255,
		G: float64((c>>8)&0xff) / 255,
		B: float64(c&0xff) / 255,
	}
}

// Lerp blends toward o by t
func (c RGB) Lerp(o RGB, t float64) RGB {
	return RGB{
		R: vmath.Lerp(c.R, o.R, t),
		G: vmath.Lerp(c.G, o.G, t),
		B: vmath.Lerp(c.B, o.B, t),
	}
}

// Scale multiplies every component
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Board colours
var (
	InactiveColor = Hex(0x1a1a3e)
	TrailColor    = Hex(0xc084fc)
	BallColor     = Hex(0xffffff)

	Palette = [...]RGB{
		Hex(0xff6b9d), // pink
		Hex(0xc084fc), // purple
		Hex(0x67e8f9), // cyan
		Hex(0xa3e635), // lime
		Hex(0xfbbf24), // amber
		Hex(0xf87171), // red
		Hex(0x60a5fa), // blue
	}
)

// PaletteColor returns the glow colour assigned to a board
func PaletteColor(index int) RGB {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// Glow tracks per-board activation intensity
type Glow struct {
	intensity []float64
	activated []bool
}

// NewGlow creates glow state for count boards
func NewGlow(count int) *Glow {
	return &Glow{
		intensity: make([]float64, count),
		activated: make([]bool, count),
	}
}

// Len returns the number of boards tracked
func (g *Glow) Len() int { return len(g.intensity) }

// Activate lights a board at full intensity; out-of-range indices are ignored
func (g *Glow) Activate(index int) {
	if index < 0 || index >= len(g.intensity) {
		return
	}
	g.activated[index] = true
	g.intensity[index] = 1
}

// Update fades every activated board
func (g *Glow) Update(dt float64) {
	for i, on := range g.activated {
		if !on {
			continue
		}
		g.intensity[i] = vmath.Clamp(g.intensity[i]-dt*constant.GlowDecayRate, 0, 1)
	}
}

// Reset darkens every board
func (g *Glow) Reset() {
	for i := range g.intensity {
		g.intensity[i] = 0
		g.activated[i] = false
	}
}

// Intensity returns a board's current glow in [0,1]
func (g *Glow) Intensity(index int) float64 {
	if index < 0 || index >= len(g.intensity) {
		return 0
	}
	return g.intensity[index]
}

// Activated reports whether a board has been hit since the last reset
func (g *Glow) Activated(index int) bool {
	if index < 0 || index >= len(g.activated) {
		return false
	}
	return g.activated[index]
}

// Color returns the board colour blended from inactive toward its palette entry
func (g *Glow) Color(index int) RGB {
	return InactiveColor.Lerp(PaletteColor(index), g.Intensity(index))
}
