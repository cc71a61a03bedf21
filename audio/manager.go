package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/schmetterling/config"
	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/sequence"
)

// ErrEmptyMelody is returned when a clip has nothing to play
var ErrEmptyMelody = errors.New("empty melody")

// Manager owns the speaker and mixes three channels: a pausable BGM loop,
// a single clip slot, and fire-and-forget key sounds.
// Without Initialize (or with audio disabled) every call is a silent no-op.
type Manager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	bgm         *beep.Ctrl
	clip        *beep.Ctrl
	initialized bool
	logger      *slog.Logger
}

// NewManager creates a manager; nothing touches the audio device until Initialize
func NewManager(cfg config.AudioConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker and starts the mixer. The BGM loop is created paused.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(m.rate, m.rate.N(constants.SpeakerBuffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	m.bgm = &beep.Ctrl{
		Streamer: newVolume(NewPadGenerator(m.rate), m.cfg.BGMVolume*m.cfg.MasterVolume),
		Paused:   true,
	}
	m.mixer.Add(m.bgm)
	speaker.Play(m.mixer)

	m.initialized = true
	m.logger.Info("audio initialized", "sample_rate", int(m.rate))
	return nil
}

// Close stops all sounds and releases the speaker
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	m.mixer.Clear()
	m.bgm = nil
	m.clip = nil
	m.initialized = false
}

// Active reports whether sound actually reaches the speaker
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// PlayKey plays the tone of sym on top of whatever is playing
func (m *Manager) PlayKey(sym sequence.Symbol) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	s := CreateKeySound(KeyNote(sym), m.cfg.SFXVolume*m.cfg.MasterVolume, m.rate)
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// PlayClip replaces the clip slot with melody, restarting from its first note
func (m *Manager) PlayClip(melody []int) error {
	if len(melody) == 0 {
		return ErrEmptyMelody
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	ctrl := &beep.Ctrl{Streamer: CreateClipSound(melody, m.cfg.ClipVolume*m.cfg.MasterVolume, m.rate)}

	speaker.Lock()
	if m.clip != nil {
		// A nil streamer drains the old slot; the mixer drops it on the next pass
		m.clip.Streamer = nil
	}
	m.clip = ctrl
	m.mixer.Add(ctrl)
	speaker.Unlock()
	return nil
}

// StopClip silences the clip slot
func (m *Manager) StopClip() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.clip == nil {
		return
	}

	speaker.Lock()
	m.clip.Streamer = nil
	speaker.Unlock()
	m.clip = nil
}

// PauseBGM pauses the background loop at its current position
func (m *Manager) PauseBGM() {
	m.setBGMPaused(true)
}

// ResumeBGM makes the background loop audible
func (m *Manager) ResumeBGM() {
	m.setBGMPaused(false)
}

func (m *Manager) setBGMPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.bgm == nil {
		return
	}

	speaker.Lock()
	m.bgm.Paused = paused
	speaker.Unlock()
}

// BGMPlaying reports whether the background loop is currently audible
func (m *Manager) BGMPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.bgm == nil {
		return false
	}

	speaker.Lock()
	defer speaker.Unlock()
	return !m.bgm.Paused
}
