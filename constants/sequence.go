package constants

import "time"

// Special Sequence Windows
const (
	TripleSevenWindow = 1200 * time.Millisecond
	Seq612Window      = 1500 * time.Millisecond
	Seq02Window       = 1200 * time.Millisecond
	Seq723Window      = 1500 * time.Millisecond
	Seq815Window      = 1600 * time.Millisecond
)

// MaxPatternLength is the longest symbol list a pattern may declare
const MaxPatternLength = 3
