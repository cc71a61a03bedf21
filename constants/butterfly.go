package constants

import "time"

// Butterfly Lifetime
const (
	ButterflyLifetime = 20 * time.Second
	ButterflyFade     = 650 * time.Millisecond

	// ButterflyFlight is the origin-to-spot travel time
	ButterflyFlight = 1100 * time.Millisecond

	// ButterflyFadeInFraction is the share of the flight spent fading in
	ButterflyFadeInFraction = 0.12
)

// Butterfly Geometry (virtual units, see render.CellWidth/CellHeight)
const (
	ButterflyMinSize = 52.0
	ButterflyMaxSize = 66.0

	ButterflyMaxRotation = 12.0

	ButterflyBaseLiftMin  = 140.0
	ButterflyBaseLiftMax  = 320.0
	ButterflyExtraLiftMin = 120.0
	ButterflyExtraLiftMax = 320.0
	ButterflyExtraChance  = 0.35
	ButterflyLevelJitter  = 60.0
	ButterflyDrift        = 14.0

	// ButterflyHue is the base hue in degrees; palettes jitter around it
	ButterflyHue = 272.0
)

// Placement Grid
const (
	PlacementMinCell     = 56.0
	PlacementCellPadding = 16.0
	PlacementMaxRing     = 10
	PlacementFallback    = 0.55

	PlacementMinTop       = 24.0
	PlacementTopGap       = 12.0
	PlacementMinBand      = 60.0
	PlacementObstacleGap  = 16.0
	PlacementEdgeMargin   = 10.0
	PlacementRadiusFactor = 0.45
	PlacementRadiusPad    = 12.0
)
