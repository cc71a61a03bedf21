// Package config loads the optional YAML configuration file and applies
// environment overrides on top of the compiled defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/sequence"
)

// Environment variables read by Load
const (
	EnvAudioEnabled = "SCHMETTERLING_AUDIO_ENABLED"
	EnvMasterVolume = "SCHMETTERLING_MASTER_VOLUME" // 0-100
	EnvBGMVolume    = "SCHMETTERLING_BGM_VOLUME"    // 0-100
	EnvSampleRate   = "SCHMETTERLING_SAMPLE_RATE"
)

// Sentinel errors
var (
	ErrInvalidVolume   = errors.New("volume must be within 0.0-1.0")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrUnknownPattern  = errors.New("unknown pattern tag")
)

// Config is the full runtime configuration
type Config struct {
	Audio     AudioConfig              `yaml:"audio"`
	Patterns  map[string]time.Duration `yaml:"patterns"`
	Butterfly ButterflyConfig          `yaml:"butterfly"`
	Display   DisplayConfig            `yaml:"display"`
}

// AudioConfig holds mixer settings
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	BGMVolume    float64 `yaml:"bgm_volume"`
	ClipVolume   float64 `yaml:"clip_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	SampleRate   int     `yaml:"sample_rate"`
	BGMOnStart   bool    `yaml:"bgm_on_start"`
}

// ButterflyConfig holds sprite timing
type ButterflyConfig struct {
	Lifetime time.Duration `yaml:"lifetime"`
	Fade     time.Duration `yaml:"fade"`
	Flight   time.Duration `yaml:"flight"`
}

// DisplayConfig holds presentation text
type DisplayConfig struct {
	Headline string `yaml:"headline"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: constants.DefaultMasterVolume,
			BGMVolume:    constants.DefaultBGMVolume,
			ClipVolume:   constants.DefaultClipVolume,
			SFXVolume:    constants.DefaultSFXVolume,
			SampleRate:   constants.DefaultSampleRate,
			BGMOnStart:   true,
		},
		Patterns: map[string]time.Duration{},
		Butterfly: ButterflyConfig{
			Lifetime: constants.ButterflyLifetime,
			Fade:     constants.ButterflyFade,
			Flight:   constants.ButterflyFlight,
		},
		Display: DisplayConfig{
			Headline: constants.DefaultHeadline,
		},
	}
}

// Load reads path (skipped when empty), then applies environment overrides and validates
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML data onto cfg, rejecting unknown keys
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if c.Patterns == nil {
		c.Patterns = map[string]time.Duration{}
	}
	return nil
}

// ApplyEnv overrides fields from the environment; malformed values are ignored
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAudioEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	if v, ok := lookup(EnvMasterVolume); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.MasterVolume = percent(n)
		}
	}
	if v, ok := lookup(EnvBGMVolume); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.BGMVolume = percent(n)
		}
	}
	if v, ok := lookup(EnvSampleRate); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Audio.SampleRate = n
		}
	}
}

// percent converts 0-100 to 0.0-1.0, saturating
func percent(n int) float64 {
	v := float64(n) / 100.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	vols := []struct {
		name string
		v    float64
	}{
		{"master_volume", c.Audio.MasterVolume},
		{"bgm_volume", c.Audio.BGMVolume},
		{"clip_volume", c.Audio.ClipVolume},
		{"sfx_volume", c.Audio.SFXVolume},
	}
	for _, vol := range vols {
		if vol.v < 0 || vol.v > 1 {
			return fmt.Errorf("audio.%s %.2f: %w", vol.name, vol.v, ErrInvalidVolume)
		}
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate %d: must be positive", c.Audio.SampleRate)
	}

	durs := []struct {
		name string
		d    time.Duration
	}{
		{"lifetime", c.Butterfly.Lifetime},
		{"fade", c.Butterfly.Fade},
		{"flight", c.Butterfly.Flight},
	}
	for _, d := range durs {
		if d.d <= 0 {
			return fmt.Errorf("butterfly.%s %v: %w", d.name, d.d, ErrInvalidDuration)
		}
	}

	known := make(map[string]bool)
	for _, p := range sequence.DefaultPatterns() {
		known[string(p.Tag)] = true
	}
	for tag, w := range c.Patterns {
		if !known[tag] {
			return fmt.Errorf("patterns.%s: %w", tag, ErrUnknownPattern)
		}
		if w <= 0 {
			return fmt.Errorf("patterns.%s %v: %w", tag, w, ErrInvalidDuration)
		}
	}
	return nil
}

// PatternWindows returns the configured window overrides keyed by tag
func (c *Config) PatternWindows() map[sequence.Tag]time.Duration {
	out := make(map[sequence.Tag]time.Duration, len(c.Patterns))
	for tag, w := range c.Patterns {
		out[sequence.Tag(tag)] = w
	}
	return out
}

// SpecialPatterns returns the built-in specials with configured windows applied
func (c *Config) SpecialPatterns() []sequence.Pattern {
	return sequence.WithWindows(sequence.DefaultPatterns(), c.PatternWindows())
}
