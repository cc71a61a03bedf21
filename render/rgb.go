package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// RGB is a 24-bit color kept unpacked so it can be blended before drawing
type RGB struct {
	R, G, B uint8
}

// Color converts to a tcell color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Lerp blends from a to b by t, t clamped to 0..1
func Lerp(a, b RGB, t float64) RGB {
	t = math.Min(math.Max(t, 0), 1)
	return RGB{
		R: clamp(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clamp(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clamp(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// HSL builds a color from hue in degrees and saturation/lightness in 0..1
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{clamp((r + m) * 255), clamp((g + m) * 255), clamp((b + m) * 255)}
}
