package sequence

import "strconv"

// Symbol is one of the ten piano inputs.
// Key '0' maps to Key0 (10) so the zero value stays free for SymbolNone.
type Symbol uint8

const (
	SymbolNone Symbol = 0
	Key1       Symbol = 1
	Key2       Symbol = 2
	Key3       Symbol = 3
	Key4       Symbol = 4
	Key5       Symbol = 5
	Key6       Symbol = 6
	Key7       Symbol = 7
	Key8       Symbol = 8
	Key9       Symbol = 9
	Key0       Symbol = 10
)

// Valid reports whether s is one of the ten key symbols
func (s Symbol) Valid() bool {
	return s >= Key1 && s <= Key0
}

// Rune returns the keyboard rune for s, or '?' when invalid
func (s Symbol) Rune() rune {
	switch {
	case s == Key0:
		return '0'
	case s.Valid():
		return rune('0' + s)
	default:
		return '?'
	}
}

// Index returns the zero-based position of s on the keyboard (1..9 then 0), or -1
func (s Symbol) Index() int {
	if !s.Valid() {
		return -1
	}
	return int(s) - 1
}

func (s Symbol) String() string {
	if !s.Valid() {
		return "Symbol(" + strconv.Itoa(int(s)) + ")"
	}
	return string(s.Rune())
}

// ParseSymbol maps a key rune to its symbol
func ParseSymbol(r rune) (Symbol, bool) {
	switch {
	case r == '0':
		return Key0, true
	case r >= '1' && r <= '9':
		return Symbol(r - '0'), true
	default:
		return SymbolNone, false
	}
}

// SymbolAt returns the symbol at keyboard position i (0..9)
func SymbolAt(i int) Symbol {
	if i < 0 || i > 9 {
		return SymbolNone
	}
	return Symbol(i + 1)
}
