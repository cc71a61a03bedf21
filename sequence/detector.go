// Package sequence detects the hidden key sequences that unlock special clips.
//
// Every pattern is tracked by its own matcher; all matchers see every symbol in
// priority order and the highest-priority completion wins the event.
package sequence

import (
	"fmt"
	"time"
)

// Detector runs a fixed, priority-ordered set of pattern matchers.
// Not safe for concurrent use; callers feed it from a single event loop.
type Detector struct {
	matchers []*matcher
}

// NewDetector builds a detector from patterns in priority order.
// With no patterns the built-in specials are used.
func NewDetector(patterns ...Pattern) (*Detector, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	seen := make(map[Tag]bool, len(patterns))
	d := &Detector{matchers: make([]*matcher, 0, len(patterns))}
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Tag] {
			return nil, fmt.Errorf("%w: duplicate tag %s", ErrInvalidPattern, p.Tag)
		}
		seen[p.Tag] = true

		// Own the symbol slice so callers cannot mutate a running pattern
		p.Symbols = append([]Symbol(nil), p.Symbols...)
		d.matchers = append(d.matchers, &matcher{pattern: p})
	}
	return d, nil
}

// Detect feeds one input symbol observed at now and returns the tag of the
// highest-priority pattern it completes, or TagNone.
// Lower-priority completions in the same event still reset their own state.
func (d *Detector) Detect(sym Symbol, now time.Time) Tag {
	result := TagNone
	for _, m := range d.matchers {
		if m.observe(sym, now) && result == TagNone {
			result = m.pattern.Tag
		}
	}
	return result
}

// Reset drops every partial match
func (d *Detector) Reset() {
	for _, m := range d.matchers {
		m.state = state{}
	}
}

// Progress returns the current step of the pattern with tag, 0 when idle or unknown
func (d *Detector) Progress(tag Tag) int {
	for _, m := range d.matchers {
		if m.pattern.Tag == tag {
			return m.state.step
		}
	}
	return 0
}

// Patterns returns copies of the definitions in priority order
func (d *Detector) Patterns() []Pattern {
	out := make([]Pattern, len(d.matchers))
	for i, m := range d.matchers {
		p := m.pattern
		p.Symbols = append([]Symbol(nil), p.Symbols...)
		out[i] = p
	}
	return out
}
