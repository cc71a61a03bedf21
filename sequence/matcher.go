package sequence

import "time"

// state is the partial-match progress of one pattern.
// step 0 means no partial match; last is the time of the last accepted symbol.
type state struct {
	step int
	last time.Time
}

// expired reports whether a partial match has outlived its window at now
func (s state) expired(window time.Duration, now time.Time) bool {
	return s.step != 0 && now.Sub(s.last) > window
}

// transition computes the next state of p for one symbol.
// It is a pure function; matchers only store its result.
func transition(p *Pattern, s state, sym Symbol, now time.Time) (state, bool) {
	if p.Kind == KindRepeat {
		return repeatTransition(p, s, sym, now)
	}
	return stepTransition(p, s, sym, now)
}

// stepTransition: first symbol always (re)starts, expected next symbol advances,
// anything else drops the partial match
func stepTransition(p *Pattern, s state, sym Symbol, now time.Time) (state, bool) {
	if s.expired(p.Window, now) {
		s = state{}
	}

	if sym == p.Symbols[0] {
		if len(p.Symbols) == 1 {
			return state{}, true
		}
		return state{step: 1, last: now}, false
	}

	if s.step == 0 {
		return s, false
	}

	if sym != p.Symbols[s.step] {
		return state{}, false
	}
	if s.step == len(p.Symbols)-1 {
		return state{}, true
	}
	return state{step: s.step + 1, last: now}, false
}

// repeatTransition counts consecutive target symbols, each within the window of the previous one
func repeatTransition(p *Pattern, s state, sym Symbol, now time.Time) (state, bool) {
	if sym != p.Symbols[0] {
		return state{}, false
	}

	if s.step > 0 && now.Sub(s.last) <= p.Window {
		s.step++
	} else {
		s.step = 1
	}
	s.last = now

	if s.step >= p.Count {
		return state{}, true
	}
	return s, false
}

// matcher binds a pattern to its mutable progress
type matcher struct {
	pattern Pattern
	state   state
}

func (m *matcher) observe(sym Symbol, now time.Time) bool {
	next, done := transition(&m.pattern, m.state, sym, now)
	m.state = next
	return done
}
