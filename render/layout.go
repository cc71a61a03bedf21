package render

import (
	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/placement"
	"github.com/lixenwraith/schmetterling/sequence"
)

// Virtual units per terminal cell. Placement works in these units so its
// grid and margins keep the proportions of a pixel screen.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Stage panel size cap in cells
const (
	stageMaxWidth  = 44
	stageMaxHeight = 9
)

// Rect is a rectangle of terminal cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout is the screen partition for one terminal size
type Layout struct {
	Width, Height int
	Headline      Rect
	Stage         Rect
	Piano         Rect
	Keys          [constants.KeyCount]Rect
}

// NewLayout partitions a w×h terminal: headline on top, piano at the bottom,
// stage panel centred in between
func NewLayout(w, h int) Layout {
	w, h = max(w, 0), max(h, 0)
	l := Layout{Width: w, Height: h}

	l.Headline = Rect{X: 0, Y: 0, W: w, H: min(constants.HeadlineRows, h)}

	pianoRows := min(constants.PianoRows, h-l.Headline.H)
	l.Piano = Rect{X: 0, Y: h - pianoRows, W: w, H: pianoRows}

	kw := max(constants.KeyMinWidth, w/constants.KeyCount)
	offset := max(0, (w-kw*constants.KeyCount)/2)
	for i := range l.Keys {
		l.Keys[i] = Rect{X: offset + i*kw, Y: l.Piano.Y, W: kw, H: pianoRows}
	}

	band := l.Piano.Y - l.Headline.H
	sw := min(max(w-4, 0), stageMaxWidth)
	sh := min(max(band-2, 0), stageMaxHeight)
	l.Stage = Rect{
		X: (w - sw) / 2,
		Y: l.Headline.H + max(0, (band-sh)/2),
		W: sw,
		H: sh,
	}
	return l
}

// Bounds returns the placement area between headline and piano in virtual units
func (l Layout) Bounds() placement.Bounds {
	return placement.NewBounds(
		float64(l.Width)*CellWidth,
		float64(l.Height)*CellHeight,
		float64(l.Headline.Y+l.Headline.H)*CellHeight,
		float64(l.Piano.Y)*CellHeight,
	)
}

// KeyAt returns the key under cell (x, y)
func (l Layout) KeyAt(x, y int) (sequence.Symbol, bool) {
	for i, k := range l.Keys {
		if k.Contains(x, y) {
			return sequence.SymbolAt(i), true
		}
	}
	return sequence.SymbolNone, false
}

// KeyOrigin returns where a butterfly launches from a key. Without a click it
// is the key centre at 35% of its height; a click is kept 10 units inside the key.
func (l Layout) KeyOrigin(sym sequence.Symbol, click *placement.Point) (placement.Point, bool) {
	i := sym.Index()
	if i < 0 {
		return placement.Point{}, false
	}
	k := l.Keys[i]
	left := float64(k.X) * CellWidth
	top := float64(k.Y) * CellHeight
	right := left + float64(k.W)*CellWidth
	bottom := top + float64(k.H)*CellHeight

	p := placement.Point{
		X: left + (right-left)/2,
		Y: top + (bottom-top)*0.35,
	}
	if click != nil {
		p.X = clampf(click.X, left+10, right-10)
		p.Y = clampf(click.Y, top+10, bottom-10)
	}
	return p, true
}

// CellCenter converts cell (x, y) to the virtual point at its centre
func CellCenter(x, y int) placement.Point {
	return placement.Point{
		X: (float64(x) + 0.5) * CellWidth,
		Y: (float64(y) + 0.5) * CellHeight,
	}
}

// ToCell converts a virtual point to the cell containing it
func ToCell(p placement.Point) (int, int) {
	return int(p.X / CellWidth), int(p.Y / CellHeight)
}

func clampf(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return min(max(v, lo), hi)
}
