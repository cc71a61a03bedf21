package constants

// UI Text
const (
	DefaultHeadline = "Schmetterling"
	BGMLabelOn      = "BGM: On"
	BGMLabelOff     = "BGM: Off"
	IdleIcon        = "♪"
)

// UI Layout (terminal cells)
const (
	// HeadlineRows is the fixed chrome at the top of the screen
	HeadlineRows = 2

	// PianoRows is the height of the key row at the bottom of the screen
	PianoRows = 4

	// KeyMinWidth is the narrowest key that still fits its label
	KeyMinWidth = 3
)
