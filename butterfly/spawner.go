package butterfly

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/placement"
)

// Spawner creates butterflies at free spots and retires them when they fade.
// It is the only writer of its placement.Field.
type Spawner struct {
	field  *placement.Field
	timing Timing
	rng    *rand.Rand
	logger *slog.Logger

	live []*Butterfly
}

// NewSpawner creates a spawner; rng may be nil for a time-seeded source
func NewSpawner(field *placement.Field, timing Timing, rng *rand.Rand, logger *slog.Logger) *Spawner {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Spawner{
		field:  field,
		timing: timing,
		rng:    rng,
		logger: logger,
	}
}

func (s *Spawner) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Spawn launches a butterfly from origin toward a free spot above it
func (s *Spawner) Spawn(origin placement.Point, bounds placement.Bounds, now time.Time) *Butterfly {
	size := s.between(constants.ButterflyMinSize, constants.ButterflyMaxSize)
	rot := s.between(-10, 10)
	rot = min(max(rot, -constants.ButterflyMaxRotation), constants.ButterflyMaxRotation)

	lift := s.between(constants.ButterflyBaseLiftMin, constants.ButterflyBaseLiftMax)
	if s.rng.Float64() < constants.ButterflyExtraChance {
		lift += s.between(constants.ButterflyExtraLiftMin, constants.ButterflyExtraLiftMax)
	}
	jitter := s.between(-constants.ButterflyLevelJitter, constants.ButterflyLevelJitter)

	target := placement.Point{
		X: origin.X + s.between(-constants.ButterflyDrift, constants.ButterflyDrift),
		Y: origin.Y - lift + jitter,
	}

	radius := placement.RadiusFor(size)
	spot := placement.Place(target, radius, size, bounds, s.field.Regions())

	hue := constants.ButterflyHue + s.between(-10, 10)
	b := &Butterfly{
		ID:       placement.NewRegionID(),
		Origin:   origin,
		Spot:     spot,
		Size:     size,
		Radius:   radius,
		Rotation: rot,
		Hue:      hue,
		Accent:   hue + 34 + s.between(-10, 10),
		Flap:     time.Duration(s.between(200, 290)) * time.Millisecond,
		Born:     now,
		timing:   s.timing,
	}

	s.field.Insert(b.Region(), now.Add(s.timing.Lifetime+s.timing.Fade))
	s.live = append(s.live, b)

	s.logger.Debug("butterfly placed",
		"id", b.ID,
		"target_x", target.X, "target_y", target.Y,
		"spot_x", spot.X, "spot_y", spot.Y,
		"live", len(s.live))
	return b
}

// Update retires faded butterflies and their regions, returning their IDs
func (s *Spawner) Update(now time.Time) []string {
	var gone []string
	kept := s.live[:0]
	for _, b := range s.live {
		if b.Gone(now) {
			s.field.Remove(b.ID)
			gone = append(gone, b.ID)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept

	// Regions outliving their sprite expire on their own
	s.field.Expire(now)
	return gone
}

// Live returns the butterflies still on screen, oldest first
func (s *Spawner) Live() []*Butterfly {
	return append([]*Butterfly(nil), s.live...)
}

// Remove drops a butterfly and its region immediately
func (s *Spawner) Remove(id string) bool {
	for i, b := range s.live {
		if b.ID == id {
			s.live = append(s.live[:i], s.live[i+1:]...)
			s.field.Remove(id)
			return true
		}
	}
	return false
}
