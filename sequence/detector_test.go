package sequence

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

type input struct {
	ms  int
	sym Symbol
}

// feed runs inputs through d and returns every non-empty tag in order
func feed(d *Detector, inputs []input) []Tag {
	var tags []Tag
	for _, in := range inputs {
		if tag := d.Detect(in.sym, at(in.ms)); tag != TagNone {
			tags = append(tags, tag)
		}
	}
	return tags
}

func newDefault(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector()
	require.NoError(t, err)
	return d
}

func TestDetectorSequences(t *testing.T) {
	tests := []struct {
		name   string
		inputs []input
		want   []Tag
	}{
		{
			name:   "triple seven",
			inputs: []input{{0, Key7}, {100, Key7}, {200, Key7}},
			want:   []Tag{TagPTY},
		},
		{
			name:   "triple seven restarts after other key",
			inputs: []input{{0, Key7}, {100, Key7}, {200, Key5}, {300, Key7}, {400, Key7}, {500, Key7}},
			want:   []Tag{TagPTY},
		},
		{
			name:   "triple seven interrupted never completes",
			inputs: []input{{0, Key7}, {100, Key7}, {200, Key5}, {300, Key7}},
			want:   nil,
		},
		{
			name:   "triple seven window is rolling",
			inputs: []input{{0, Key7}, {1100, Key7}, {2200, Key7}},
			want:   []Tag{TagPTY},
		},
		{
			name:   "triple seven gap restarts count",
			inputs: []input{{0, Key7}, {100, Key7}, {1400, Key7}, {1500, Key7}},
			want:   nil,
		},
		{
			name:   "six one two",
			inputs: []input{{0, Key6}, {100, Key1}, {200, Key2}},
			want:   []Tag{TagME},
		},
		{
			name:   "six one six one two fires once",
			inputs: []input{{0, Key6}, {100, Key1}, {200, Key6}, {300, Key1}, {400, Key2}},
			want:   []Tag{TagME},
		},
		{
			name:   "six one mismatch drops partial match",
			inputs: []input{{0, Key6}, {100, Key3}, {200, Key1}, {300, Key2}},
			want:   nil,
		},
		{
			name:   "six one two timeout",
			inputs: []input{{0, Key6}, {100, Key1}, {1700, Key2}},
			want:   nil,
		},
		{
			name:   "six one two at window edge",
			inputs: []input{{0, Key6}, {100, Key1}, {1600, Key2}},
			want:   []Tag{TagME},
		},
		{
			name:   "eight one five",
			inputs: []input{{0, Key8}, {1500, Key1}, {3000, Key5}},
			want:   []Tag{TagC},
		},
		{
			name:   "eight one five timeout",
			inputs: []input{{0, Key8}, {1601, Key1}, {1700, Key5}},
			want:   nil,
		},
		{
			name:   "seven two three",
			inputs: []input{{0, Key7}, {100, Key2}, {200, Key3}},
			want:   []Tag{TagD},
		},
		{
			name:   "zero two",
			inputs: []input{{0, Key0}, {100, Key2}},
			want:   []Tag{TagV02},
		},
		{
			name:   "zero five two",
			inputs: []input{{0, Key0}, {100, Key5}, {200, Key2}},
			want:   nil,
		},
		{
			name:   "zero two timeout",
			inputs: []input{{0, Key0}, {1201, Key2}},
			want:   nil,
		},
		{
			name:   "repeated zero restarts",
			inputs: []input{{0, Key0}, {1000, Key0}, {2000, Key2}},
			want:   []Tag{TagV02},
		},
		{
			name:   "invalid symbol resets",
			inputs: []input{{0, Key6}, {100, Key1}, {200, Symbol(42)}, {300, Key2}},
			want:   nil,
		},
		{
			name:   "none symbol resets triple",
			inputs: []input{{0, Key7}, {100, Key7}, {200, SymbolNone}, {300, Key7}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDefault(t)
			assert.Equal(t, tt.want, feed(d, tt.inputs))
		})
	}
}

func TestDetectorIndependentMatchers(t *testing.T) {
	d := newDefault(t)

	// 7-2-3 completes while the triple counter is cleared by the 2
	assert.Equal(t, TagNone, d.Detect(Key7, at(0)))
	assert.Equal(t, 1, d.Progress(TagPTY))
	assert.Equal(t, 1, d.Progress(TagD))

	assert.Equal(t, TagNone, d.Detect(Key2, at(100)))
	assert.Equal(t, 0, d.Progress(TagPTY))
	assert.Equal(t, 2, d.Progress(TagD))

	assert.Equal(t, TagD, d.Detect(Key3, at(200)))
	assert.Equal(t, 0, d.Progress(TagD))

	assert.Equal(t, TagNone, d.Detect(Key7, at(300)))
	assert.Equal(t, TagNone, d.Detect(Key7, at(400)))
	assert.Equal(t, TagPTY, d.Detect(Key7, at(500)))
}

func TestDetectorPriorityDiscardsLowerCompletion(t *testing.T) {
	high := Pattern{Tag: "HIGH", Kind: KindStep, Symbols: []Symbol{Key1, Key2}, Window: time.Second}
	low := Pattern{Tag: "LOW", Kind: KindStep, Symbols: []Symbol{Key5, Key1, Key2}, Window: time.Second}

	d, err := NewDetector(high, low)
	require.NoError(t, err)

	assert.Equal(t, TagNone, d.Detect(Key5, at(0)))
	assert.Equal(t, TagNone, d.Detect(Key1, at(100)))
	assert.Equal(t, 1, d.Progress("HIGH"))
	assert.Equal(t, 2, d.Progress("LOW"))

	assert.Equal(t, Tag("HIGH"), d.Detect(Key2, at(200)))
	assert.Equal(t, 0, d.Progress("LOW"), "discarded completion still clears state")

	d, err = NewDetector(low, high)
	require.NoError(t, err)
	feed(d, []input{{0, Key5}, {100, Key1}})
	assert.Equal(t, Tag("LOW"), d.Detect(Key2, at(200)))
	assert.Equal(t, 0, d.Progress("HIGH"))
}

func TestDetectorRandomStream(t *testing.T) {
	d := newDefault(t)
	rng := rand.New(rand.NewPCG(1, 2))

	last := map[Tag]Symbol{}
	for _, p := range d.Patterns() {
		last[p.Tag] = p.Symbols[len(p.Symbols)-1]
	}

	ms := 0
	for i := 0; i < 10000; i++ {
		ms += rng.IntN(900)
		sym := Symbol(rng.IntN(11))
		tag := d.Detect(sym, at(ms))
		if tag == TagNone {
			continue
		}
		end, ok := last[tag]
		require.True(t, ok, "unknown tag %q", tag)
		require.Equal(t, end, sym, "tag %s emitted on wrong symbol", tag)
	}
}

func TestDetectorReset(t *testing.T) {
	d := newDefault(t)
	d.Detect(Key6, at(0))
	d.Detect(Key1, at(10))
	d.Reset()
	assert.Equal(t, 0, d.Progress(TagME))
	assert.Equal(t, TagNone, d.Detect(Key2, at(20)))
}

func TestNewDetectorValidation(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
	}{
		{"empty tag", Pattern{Kind: KindStep, Symbols: []Symbol{Key1}, Window: time.Second}},
		{"zero window", Pattern{Tag: "X", Kind: KindStep, Symbols: []Symbol{Key1}}},
		{"too long", Pattern{Tag: "X", Kind: KindStep, Symbols: []Symbol{Key1, Key2, Key3, Key4}, Window: time.Second}},
		{"empty symbols", Pattern{Tag: "X", Kind: KindStep, Window: time.Second}},
		{"invalid symbol", Pattern{Tag: "X", Kind: KindStep, Symbols: []Symbol{Key1, Symbol(11)}, Window: time.Second}},
		{"repeat zero count", Pattern{Tag: "X", Kind: KindRepeat, Symbols: []Symbol{Key7}, Window: time.Second}},
		{"repeat two symbols", Pattern{Tag: "X", Kind: KindRepeat, Symbols: []Symbol{Key7, Key8}, Count: 2, Window: time.Second}},
		{"unknown kind", Pattern{Tag: "X", Kind: Kind(9), Symbols: []Symbol{Key7}, Window: time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDetector(tt.p)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}

	dup := Pattern{Tag: "X", Kind: KindStep, Symbols: []Symbol{Key1}, Window: time.Second}
	_, err := NewDetector(dup, dup)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestSingleSymbolPatterns(t *testing.T) {
	step := Pattern{Tag: "S", Kind: KindStep, Symbols: []Symbol{Key4}, Window: time.Second}
	d, err := NewDetector(step)
	require.NoError(t, err)
	assert.Equal(t, Tag("S"), d.Detect(Key4, at(0)))
	assert.Equal(t, Tag("S"), d.Detect(Key4, at(1)))
	assert.Equal(t, TagNone, d.Detect(Key3, at(2)))
}

func TestDetectorOwnsPatternSymbols(t *testing.T) {
	syms := []Symbol{Key1, Key2}
	d, err := NewDetector(Pattern{Tag: "X", Kind: KindStep, Symbols: syms, Window: time.Second})
	require.NoError(t, err)

	syms[1] = Key9
	d.Detect(Key1, at(0))
	assert.Equal(t, Tag("X"), d.Detect(Key2, at(10)))
}

func TestWithWindows(t *testing.T) {
	patterns := WithWindows(DefaultPatterns(), map[Tag]time.Duration{
		TagME:  3 * time.Second,
		TagV02: -1,
		"NOPE": time.Second,
	})

	d, err := NewDetector(patterns...)
	require.NoError(t, err)
	assert.Equal(t, []Tag{TagME}, feed(d, []input{{0, Key6}, {2500, Key1}, {5000, Key2}}))

	for _, p := range patterns {
		if p.Tag == TagV02 {
			assert.Equal(t, 1200*time.Millisecond, p.Window)
		}
	}
}
