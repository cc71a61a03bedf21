// Package stage decides what plays for each key press: the key's own clip and
// sound, or a special clip when the detector recognises a hidden sequence.
// It also owns the background music toggle.
package stage

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/sequence"
)

// Player is the audio surface the stage drives
type Player interface {
	PlayKey(sym sequence.Symbol)
	PlayClip(melody []int) error
	StopClip()
	PauseBGM()
	ResumeBGM()
}

// Playing is the clip currently on stage
type Playing struct {
	Clip    Clip
	Special sequence.Tag
	Started time.Time
}

// View is a read-only snapshot for rendering
type View struct {
	Playing  *Playing
	Progress float64 // 0..1 of the playing clip
	Idle     bool
	BGMOn    bool
	BGMLabel string
}

// Stage is the single-threaded dispatch state machine
type Stage struct {
	detector *sequence.Detector
	player   Player
	specials map[sequence.Tag]Clip
	logger   *slog.Logger

	bgmWanted bool
	current   sequence.Tag // active special, TagNone for regular clips
	playing   *Playing
	idle      bool
}

// New creates a stage. specials may be nil for DefaultSpecials.
func New(detector *sequence.Detector, player Player, specials map[sequence.Tag]Clip, bgmOn bool, logger *slog.Logger) *Stage {
	if specials == nil {
		specials = DefaultSpecials()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stage{
		detector:  detector,
		player:    player,
		specials:  specials,
		logger:    logger,
		bgmWanted: bgmOn,
		idle:      true,
	}
}

// Start makes BGM audible when it is wanted
func (s *Stage) Start() {
	s.ensureBGM()
}

// Trigger handles one key press at now and returns the special it unlocked, if any
func (s *Stage) Trigger(sym sequence.Symbol, now time.Time) sequence.Tag {
	tag := s.detector.Detect(sym, now)
	if clip, ok := s.specials[tag]; ok && tag != sequence.TagNone {
		s.logger.Info("special unlocked", "tag", string(tag), "clip", clip.Name)
		s.play(clip, tag, now)
		return tag
	}

	if !sym.Valid() {
		return sequence.TagNone
	}

	if s.current != sequence.TagNone {
		s.current = sequence.TagNone
		s.ensureBGM()
	}
	s.play(KeyClip(sym), sequence.TagNone, now)
	s.player.PlayKey(sym)
	return sequence.TagNone
}

// play puts clip on stage, restarting it when it is already playing
func (s *Stage) play(clip Clip, special sequence.Tag, now time.Time) {
	s.idle = false
	s.current = special
	s.playing = &Playing{Clip: clip, Special: special, Started: now}

	if clip.PauseBGM {
		s.player.PauseBGM()
	} else {
		s.ensureBGM()
	}

	if err := s.player.PlayClip(clip.Melody); err != nil {
		s.logger.Warn("clip playback failed", "clip", clip.Name, "error", err)
		s.playing = nil
		s.idle = true
		s.current = sequence.TagNone
		s.ensureBGM()
	}
}

// ClipEnded takes the clip off stage and resumes BGM a special had paused
func (s *Stage) ClipEnded() {
	if s.playing != nil {
		s.player.StopClip()
	}
	s.playing = nil
	s.idle = true

	if s.current == sequence.TagNone {
		return
	}
	if clip, ok := s.specials[s.current]; ok && clip.PauseBGM {
		s.current = sequence.TagNone
		s.ensureBGM()
	}
}

// Tick ends the playing clip once its duration has elapsed at now
func (s *Stage) Tick(now time.Time) {
	if s.playing == nil {
		return
	}
	if now.Sub(s.playing.Started) >= s.playing.Clip.Duration() {
		s.ClipEnded()
	}
}

// ToggleBGM flips the BGM preference and returns the new state.
// Turning it on while a special plays only records the wish.
func (s *Stage) ToggleBGM() bool {
	s.bgmWanted = !s.bgmWanted
	if s.bgmWanted {
		if s.current == sequence.TagNone {
			s.ensureBGM()
		}
	} else {
		s.player.PauseBGM()
	}
	return s.bgmWanted
}

func (s *Stage) ensureBGM() {
	if !s.bgmWanted {
		return
	}
	s.player.ResumeBGM()
}

// Current returns the active special, TagNone when none
func (s *Stage) Current() sequence.Tag {
	return s.current
}

// View snapshots the stage for rendering at now
func (s *Stage) View(now time.Time) View {
	v := View{
		Idle:     s.idle,
		BGMOn:    s.bgmWanted,
		BGMLabel: constants.BGMLabelOff,
	}
	if s.bgmWanted {
		v.BGMLabel = constants.BGMLabelOn
	}
	if s.playing != nil {
		p := *s.playing
		v.Playing = &p
		if d := p.Clip.Duration(); d > 0 {
			v.Progress = min(1, max(0, float64(now.Sub(p.Started))/float64(d)))
		}
	}
	return v
}
