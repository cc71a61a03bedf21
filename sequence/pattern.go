package sequence

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/schmetterling/constants"
)

// Tag identifies a special pattern. TagNone means nothing matched.
type Tag string

const (
	TagNone Tag = ""
	TagPTY  Tag = "PTY" // 7-7-7
	TagME   Tag = "ME"  // 6-1-2
	TagV02  Tag = "V02" // 0-2
	TagD    Tag = "D"   // 7-2-3
	TagC    Tag = "C"   // 8-1-5
)

// Kind selects the matching policy of a pattern
type Kind int

const (
	// KindStep advances through Symbols in order; the first symbol always restarts
	KindStep Kind = iota
	// KindRepeat counts consecutive occurrences of Symbols[0]
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pattern is an immutable definition of a special sequence
type Pattern struct {
	Tag     Tag
	Kind    Kind
	Symbols []Symbol
	Count   int // KindRepeat only
	Window  time.Duration
}

// ErrInvalidPattern is wrapped by every pattern validation failure
var ErrInvalidPattern = errors.New("invalid pattern")

// Validate checks structural constraints of the definition
func (p Pattern) Validate() error {
	if p.Tag == TagNone {
		return fmt.Errorf("%w: empty tag", ErrInvalidPattern)
	}
	if p.Window <= 0 {
		return fmt.Errorf("%w: %s: window must be positive", ErrInvalidPattern, p.Tag)
	}
	if len(p.Symbols) == 0 || len(p.Symbols) > constants.MaxPatternLength {
		return fmt.Errorf("%w: %s: needs 1..%d symbols, got %d", ErrInvalidPattern, p.Tag, constants.MaxPatternLength, len(p.Symbols))
	}
	for _, s := range p.Symbols {
		if !s.Valid() {
			return fmt.Errorf("%w: %s: symbol %v", ErrInvalidPattern, p.Tag, s)
		}
	}
	switch p.Kind {
	case KindStep:
	case KindRepeat:
		if len(p.Symbols) != 1 {
			return fmt.Errorf("%w: %s: repeat takes one symbol", ErrInvalidPattern, p.Tag)
		}
		if p.Count < 1 {
			return fmt.Errorf("%w: %s: repeat count must be at least 1", ErrInvalidPattern, p.Tag)
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %v", ErrInvalidPattern, p.Tag, p.Kind)
	}
	return nil
}

// DefaultPatterns returns the built-in specials in priority order
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Tag: TagME, Kind: KindStep, Symbols: []Symbol{Key6, Key1, Key2}, Window: constants.Seq612Window},
		{Tag: TagC, Kind: KindStep, Symbols: []Symbol{Key8, Key1, Key5}, Window: constants.Seq815Window},
		{Tag: TagD, Kind: KindStep, Symbols: []Symbol{Key7, Key2, Key3}, Window: constants.Seq723Window},
		{Tag: TagV02, Kind: KindStep, Symbols: []Symbol{Key0, Key2}, Window: constants.Seq02Window},
		{Tag: TagPTY, Kind: KindRepeat, Symbols: []Symbol{Key7}, Count: 3, Window: constants.TripleSevenWindow},
	}
}

// WithWindows returns a copy of patterns whose windows are replaced by the
// matching entries of windows. Unknown tags and non-positive durations are ignored.
func WithWindows(patterns []Pattern, windows map[Tag]time.Duration) []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		p.Symbols = append([]Symbol(nil), p.Symbols...)
		if w, ok := windows[p.Tag]; ok && w > 0 {
			p.Window = w
		}
		out[i] = p
	}
	return out
}
