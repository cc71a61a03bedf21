// Package butterfly spawns the decorative sprites that fly up from pressed keys
// and tracks their flight, lifetime and fade-out.
package butterfly

import (
	"math"
	"time"

	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/placement"
)

// Timing controls a butterfly's life cycle
type Timing struct {
	Lifetime time.Duration
	Fade     time.Duration
	Flight   time.Duration
}

// DefaultTiming returns the compiled-in life cycle
func DefaultTiming() Timing {
	return Timing{
		Lifetime: constants.ButterflyLifetime,
		Fade:     constants.ButterflyFade,
		Flight:   constants.ButterflyFlight,
	}
}

// Butterfly is one placed sprite
type Butterfly struct {
	ID       string
	Origin   placement.Point
	Spot     placement.Point
	Size     float64
	Radius   float64
	Rotation float64 // degrees
	Hue      float64 // degrees, body color
	Accent   float64 // degrees, wing tip color
	Flap     time.Duration
	Born     time.Time

	timing Timing
}

// Region returns the exclusion zone the butterfly occupies at its spot
func (b *Butterfly) Region() placement.Region {
	return placement.Region{ID: b.ID, Center: b.Spot, Radius: b.Radius}
}

// Position returns the animated position at now: an ease-out flight from origin to spot
func (b *Butterfly) Position(now time.Time) placement.Point {
	t := b.flightProgress(now)
	switch {
	case t <= 0:
		return b.Origin
	case t >= 1:
		return b.Spot
	}
	e := easeOut(t)
	return placement.Point{
		X: b.Origin.X + (b.Spot.X-b.Origin.X)*e,
		Y: b.Origin.Y + (b.Spot.Y-b.Origin.Y)*e,
	}
}

func (b *Butterfly) flightProgress(now time.Time) float64 {
	if b.timing.Flight <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(b.Born)) / float64(b.timing.Flight))
}

// Opacity returns visibility at now in 0..1: fade in early in the flight,
// full for the lifetime, then fade out
func (b *Butterfly) Opacity(now time.Time) float64 {
	age := now.Sub(b.Born)
	if age < 0 {
		return 0
	}

	if age >= b.timing.Lifetime {
		if b.timing.Fade <= 0 {
			return 0
		}
		return clamp01(1 - float64(age-b.timing.Lifetime)/float64(b.timing.Fade))
	}

	fadeIn := constants.ButterflyFadeInFraction
	if t := b.flightProgress(now); t < fadeIn {
		return t / fadeIn
	}
	return 1
}

// Fading reports whether the butterfly has started its fade-out at now
func (b *Butterfly) Fading(now time.Time) bool {
	return now.Sub(b.Born) >= b.timing.Lifetime
}

// Gone reports whether the butterfly has fully faded at now
func (b *Butterfly) Gone(now time.Time) bool {
	return now.Sub(b.Born) >= b.timing.Lifetime+b.timing.Fade
}

// WingsOpen alternates with the flap period
func (b *Butterfly) WingsOpen(now time.Time) bool {
	if b.Flap <= 0 {
		return true
	}
	return (now.Sub(b.Born)/b.Flap)%2 == 0
}

// easeOut approximates the cubic-bezier(.16,.85,.22,1) flight curve
func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
