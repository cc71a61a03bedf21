package constants

import "time"

// Audio Engine
const (
	// DefaultSampleRate is the mixer sample rate in Hz
	DefaultSampleRate = 48000

	// SpeakerBuffer is the speaker buffer length handed to speaker.Init
	SpeakerBuffer = 100 * time.Millisecond
)

// Channel Volumes (0.0-1.0, scaled by master volume)
const (
	DefaultMasterVolume = 1.0
	DefaultBGMVolume    = 0.55
	DefaultClipVolume   = 0.85
	DefaultSFXVolume    = 0.8
)

// Key Sound Timing
const (
	KeySoundDuration         = 450 * time.Millisecond
	KeySoundAttack           = 4 * time.Millisecond
	KeySoundFundamentalDecay = 420 * time.Millisecond
	KeySoundOvertoneDecay    = 160 * time.Millisecond
)

// Clip Melody Timing
const (
	ClipNoteDuration = 180 * time.Millisecond
	ClipNoteAttack   = 8 * time.Millisecond
	ClipNoteRelease  = 90 * time.Millisecond
)

// BGM Timing
const (
	// BGMBeat is the length of one pad chord in the background loop
	BGMBeat = 2400 * time.Millisecond
)
