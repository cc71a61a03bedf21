package placement

import (
	"math"

	"github.com/lixenwraith/schmetterling/constants"
)

// Point is a position in virtual screen units
type Point struct {
	X, Y float64
}

// Region is a circular exclusion zone around a placed sprite
type Region struct {
	ID     string
	Center Point
	Radius float64
}

// Bounds is the rectangle sprites may be placed in: full width, and a vertical
// band between the top chrome and the obstacle below
type Bounds struct {
	Width  float64
	Top    float64
	Bottom float64
}

// NewBounds derives the placement band from the screen size, the bottom edge of
// the top chrome and the top edge of the obstacle under the band (the piano).
// The band is never thinner than constants.PlacementMinBand.
func NewBounds(width, height, chromeBottom, obstacleTop float64) Bounds {
	if obstacleTop <= 0 || obstacleTop > height {
		obstacleTop = height
	}
	top := math.Max(constants.PlacementMinTop, chromeBottom) + constants.PlacementTopGap
	bottom := math.Max(top+constants.PlacementMinBand, obstacleTop-constants.PlacementObstacleGap)
	return Bounds{Width: width, Top: top, Bottom: bottom}
}

// clamp saturates n into [lo, hi]. An inverted range collapses to its midpoint.
func clamp(n, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(n, lo), hi)
}

// clamper keeps candidates inside bounds with a sprite-size margin
type clamper struct {
	margin float64
	b      Bounds
}

func (c clamper) x(x float64) float64 {
	return clamp(x, c.margin, c.b.Width-c.margin)
}

func (c clamper) y(y float64) float64 {
	return clamp(y, c.b.Top+c.margin, c.b.Bottom-c.margin)
}

// Contains reports whether p lies inside the clamped area for a sprite of size
func (b Bounds) Contains(p Point, size float64) bool {
	c := clamper{margin: size/2 + constants.PlacementEdgeMargin, b: b}
	return p.X == c.x(p.X) && p.Y == c.y(p.Y)
}

// RadiusFor returns the exclusion radius of a sprite of the given size
func RadiusFor(size float64) float64 {
	return size*constants.PlacementRadiusFactor + constants.PlacementRadiusPad
}
