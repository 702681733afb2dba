package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/beatball/effects"
	"github.com/lixenwraith/beatball/vmath"
)

// Background is the fill colour behind every cell
var Background = effects.Hex(0x0a0a1a)

// Color converts a linear effects colour to a true-colour tcell colour
func Color(c effects.RGB) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

// Faded blends c over the background by alpha
func Faded(c effects.RGB, alpha float64) tcell.Color {
	return Color(Background.Lerp(c, vmath.Clamp01(alpha)))
}

func channel(v float64) int32 {
	return int32(vmath.Clamp01(v)*255 + 0.5)
}
