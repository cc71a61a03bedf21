// Package placement finds spots for decorative sprites that do not overlap
// the sprites already on screen.
package placement

import (
	"math"

	"github.com/lixenwraith/schmetterling/constants"
)

// IsSpotFree reports whether a circle of radius r at p clears every occupied region.
// Touching circles count as free.
func IsSpotFree(p Point, r float64, occupied []Region) bool {
	for i := range occupied {
		o := &occupied[i]
		dx := p.X - o.Center.X
		dy := p.Y - o.Center.Y
		rr := r + o.Radius
		if dx*dx+dy*dy < rr*rr {
			return false
		}
	}
	return true
}

// CellSize returns the search grid pitch for a sprite of size
func CellSize(size float64) float64 {
	return math.Max(constants.PlacementMinCell, size+constants.PlacementCellPadding)
}

// Place returns the free grid spot nearest to target for a sprite of the given
// size and exclusion radius. The search walks square rings of grid cells around
// the clamped target, upper rows first, and returns the first free candidate.
// When every ring up to constants.PlacementMaxRing is taken it falls back to a
// point well above the target. occupied is only read.
func Place(target Point, radius, size float64, bounds Bounds, occupied []Region) Point {
	c := clamper{margin: size/2 + constants.PlacementEdgeMargin, b: bounds}
	cell := CellSize(size)

	tx := c.x(target.X)
	ty := c.y(target.Y)

	col0 := int(math.Round(tx / cell))
	row0 := int(math.Round(ty / cell))

	var found Point
	ok := walkRings(constants.PlacementMaxRing, func(dx, dy int) bool {
		p := Point{
			X: c.x(float64(col0+dx) * cell),
			Y: c.y(float64(row0+dy) * cell),
		}
		if IsSpotFree(p, radius, occupied) {
			found = p
			return true
		}
		return false
	})
	if ok {
		return found
	}

	return Point{X: tx, Y: c.y(ty - float64(constants.PlacementMaxRing)*cell*constants.PlacementFallback)}
}

// walkRings visits ring 0 (the origin) and then every perimeter cell of the
// square rings 1..maxRing, top row to bottom row, left to right.
// It stops and returns true as soon as visit does.
func walkRings(maxRing int, visit func(dx, dy int) bool) bool {
	if visit(0, 0) {
		return true
	}
	for ring := 1; ring <= maxRing; ring++ {
		for dy := -ring; dy <= ring; dy++ {
			edgeRow := dy == -ring || dy == ring
			step := 1
			if !edgeRow {
				// Interior rows only contribute their two end cells
				step = 2 * ring
			}
			for dx := -ring; dx <= ring; dx += step {
				if visit(dx, dy) {
					return true
				}
			}
		}
	}
	return false
}
