package render

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/width"
)

// runeWidth returns the number of cells r occupies
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// StringWidth returns the number of cells s occupies
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

// drawText writes s from (x, y), clipped at maxX, and returns the next free column
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runeWidth(r)
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func drawCentered(screen tcell.Screen, x, y, w int, s string, style tcell.Style) {
	start := x + max(0, (w-StringWidth(s))/2)
	drawText(screen, start, y, x+w, s, style)
}

func fill(screen tcell.Screen, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}
