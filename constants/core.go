package constants

import "time"

// Event Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventQueueSize is the capacity of the terminal event channel
	EventQueueSize = 256
)

// KeyCount is the number of piano keys
const KeyCount = 10

// KeyHighlightDuration is how long a key stays highlighted after a press.
// Terminals report no key release, so the highlight times out instead.
const KeyHighlightDuration = 150 * time.Millisecond
