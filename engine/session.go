// Package engine wires input, the stage, butterflies and rendering into one
// single-threaded session driven by the frame loop.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/schmetterling/butterfly"
	"github.com/lixenwraith/schmetterling/config"
	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/placement"
	"github.com/lixenwraith/schmetterling/render"
	"github.com/lixenwraith/schmetterling/sequence"
	"github.com/lixenwraith/schmetterling/stage"
)

// Session owns all interactive state. It is not safe for concurrent use;
// the loop goroutine is its only caller.
type Session struct {
	stage    *stage.Stage
	field    *placement.Field
	spawner  *butterfly.Spawner
	layout   render.Layout
	headline string
	logger   *slog.Logger

	pressedAt [constants.KeyCount]time.Time
	active    [constants.KeyCount]bool
	mouseDown bool
}

// NewSession builds a session from cfg. rng may be nil for a time-seeded source.
func NewSession(cfg *config.Config, player stage.Player, rng *rand.Rand, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	detector, err := sequence.NewDetector(cfg.SpecialPatterns()...)
	if err != nil {
		return nil, fmt.Errorf("build detector: %w", err)
	}

	field := placement.NewField()
	timing := butterfly.Timing{
		Lifetime: cfg.Butterfly.Lifetime,
		Fade:     cfg.Butterfly.Fade,
		Flight:   cfg.Butterfly.Flight,
	}

	return &Session{
		stage:    stage.New(detector, player, nil, cfg.Audio.BGMOnStart, logger.With("component", "stage")),
		field:    field,
		spawner:  butterfly.NewSpawner(field, timing, rng, logger.With("component", "butterfly")),
		headline: cfg.Display.Headline,
		logger:   logger,
	}, nil
}

// Start begins background music when it is wanted
func (s *Session) Start() {
	s.stage.Start()
}

// Resize recomputes the layout for a w×h terminal
func (s *Session) Resize(w, h int) {
	s.layout = render.NewLayout(w, h)
	s.logger.Debug("resize", "width", w, "height", h)
}

// Layout returns the current layout
func (s *Session) Layout() render.Layout {
	return s.layout
}

// Stage exposes the dispatch state machine
func (s *Session) Stage() *stage.Stage {
	return s.stage
}

// Field exposes the occupied regions
func (s *Session) Field() *placement.Field {
	return s.field
}

// HandleKey presses sym at now. click is the pointer position in virtual units,
// nil for keyboard presses. Returns the special unlocked, if any.
func (s *Session) HandleKey(sym sequence.Symbol, click *placement.Point, now time.Time) sequence.Tag {
	i := sym.Index()
	if i < 0 {
		return sequence.TagNone
	}

	s.pressedAt[i] = now
	s.active[i] = true

	if origin, ok := s.layout.KeyOrigin(sym, click); ok {
		s.spawner.Spawn(origin, s.layout.Bounds(), now)
	}

	tag := s.stage.Trigger(sym, now)
	if tag != sequence.TagNone {
		s.logger.Info("sequence", "tag", string(tag), "key", sym.String())
	}
	return tag
}

// HandleEvent applies one terminal event and reports whether the user asked to quit
func (s *Session) HandleEvent(ev tcell.Event, now time.Time) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if ev.Modifiers()&tcell.ModCtrl != 0 && (r == 'c' || r == 'C') {
				return true
			}
			switch r {
			case 'q', 'Q':
				return true
			case 'b', 'B':
				on := s.stage.ToggleBGM()
				s.logger.Debug("bgm toggled", "on", on)
				return false
			}
			if sym, ok := sequence.ParseSymbol(r); ok {
				s.HandleKey(sym, nil, now)
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		// Press edge only; a held button repeats motion events
		if down && !s.mouseDown {
			x, y := ev.Position()
			if sym, ok := s.layout.KeyAt(x, y); ok {
				click := render.CellCenter(x, y)
				s.HandleKey(sym, &click, now)
			}
		}
		s.mouseDown = down

	case *tcell.EventResize:
		w, h := ev.Size()
		s.Resize(w, h)
	}
	return false
}

// Update advances time-driven state to now
func (s *Session) Update(now time.Time) {
	if gone := s.spawner.Update(now); len(gone) > 0 {
		s.logger.Debug("butterflies retired", "count", len(gone), "live", len(s.spawner.Live()))
	}
	s.stage.Tick(now)

	for i := range s.active {
		if s.active[i] && now.Sub(s.pressedAt[i]) >= constants.KeyHighlightDuration {
			s.active[i] = false
		}
	}
}

// Frame snapshots the session for drawing at now
func (s *Session) Frame(now time.Time) render.Frame {
	return render.Frame{
		Now:         now,
		Headline:    s.headline,
		Stage:       s.stage.View(now),
		Butterflies: s.spawner.Live(),
		Active:      s.active,
	}
}
