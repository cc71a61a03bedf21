package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/schmetterling/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear volume control.
// math.Log2(0) is -Inf, so zero volume is mapped to Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateKeySound generates a short piano-like tone for a MIDI note
func CreateKeySound(note int, vol float64, rate beep.SampleRate) beep.Streamer {
	freq := NoteFreq(note)
	if freq <= 0 {
		return beep.Silence(rate.N(constants.KeySoundDuration))
	}

	fund := NewOscillator(freq, constants.KeySoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, constants.KeySoundDuration, constants.KeySoundAttack, constants.KeySoundFundamentalDecay, rate)

	// Octave overtone gives the hammer its brightness
	var overShaped beep.Streamer
	if tone, err := generators.SineTone(rate, freq*2); err == nil {
		over := beep.Take(rate.N(constants.KeySoundDuration), tone)
		overShaped = NewEnvelope(over, constants.KeySoundDuration, constants.KeySoundAttack, constants.KeySoundOvertoneDecay, rate)
	} else {
		overShaped = beep.Silence(rate.N(constants.KeySoundDuration))
	}

	mixed := beep.Mix(
		newVolume(fundShaped, 0.75),
		newVolume(overShaped, 0.25),
	)
	return newVolume(mixed, vol)
}

// CreateClipSound renders a melody as a sequence of square-wave notes.
// Rest entries produce silence of one note length.
func CreateClipSound(melody []int, vol float64, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(melody))
	for _, n := range melody {
		if n == Rest {
			notes = append(notes, beep.Silence(rate.N(constants.ClipNoteDuration)))
			continue
		}
		osc := NewOscillator(NoteFreq(n), constants.ClipNoteDuration, WaveSquare, rate)
		notes = append(notes, NewEnvelope(osc, constants.ClipNoteDuration, constants.ClipNoteAttack, constants.ClipNoteRelease, rate))
	}
	return newVolume(beep.Seq(notes...), vol*0.5)
}

// ClipLength returns the playing time of a melody rendered by CreateClipSound
func ClipLength(melody []int) time.Duration {
	return time.Duration(len(melody)) * constants.ClipNoteDuration
}

// padChords is the background loop: Am, F, C, G triads
var padChords = [][3]int{
	{57, 60, 64},
	{53, 57, 60},
	{48, 52, 55},
	{55, 59, 62},
}

// PadGenerator streams an endless soft chord loop for background music
type PadGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewPadGenerator creates a background pad generator
func NewPadGenerator(sr beep.SampleRate) *PadGenerator {
	return &PadGenerator{
		sr:      sr,
		samples: sr.N(constants.BGMBeat),
	}
}

func (g *PadGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beat := (g.pos / g.samples) % len(padChords)
		beatPos := float64(g.pos%g.samples) / float64(g.samples)
		t := float64(g.pos) / float64(g.sr)

		// Swell in and out over each chord
		amp := 0.12 * math.Sin(beatPos*math.Pi)

		sample := 0.0
		for _, note := range padChords[beat] {
			sample += math.Sin(2 * math.Pi * NoteFreq(note) * t)
		}
		sample *= amp / 3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PadGenerator) Err() error {
	return nil
}
