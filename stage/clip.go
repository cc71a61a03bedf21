package stage

import (
	"fmt"
	"time"

	"github.com/lixenwraith/schmetterling/audio"
	"github.com/lixenwraith/schmetterling/sequence"
)

// Clip is one playable stage item: a melody with an on-screen panel
type Clip struct {
	Name     string
	Melody   []int
	PauseBGM bool
}

// Duration is the clip's playing time
func (c Clip) Duration() time.Duration {
	return audio.ClipLength(c.Melody)
}

// KeyClip returns the regular clip of a key: an arpeggio rooted on its note
func KeyClip(sym sequence.Symbol) Clip {
	root := audio.KeyNote(sym)
	return Clip{
		Name:   fmt.Sprintf("v%d", sym.Index()+1),
		Melody: []int{root, root + 4, root + 7, root + 12, root + 7, root + 4, root, audio.Rest},
	}
}

// DefaultSpecials maps every built-in special tag to its clip. All of them pause BGM.
func DefaultSpecials() map[sequence.Tag]Clip {
	r := audio.Rest
	return map[sequence.Tag]Clip{
		sequence.TagPTY: {Name: "PTY", PauseBGM: true, Melody: []int{
			67, 67, 67, r, 72, 71, 69, 67, 64, 67, 72, r, 76, 74, 72, r,
		}},
		sequence.TagME: {Name: "me", PauseBGM: true, Melody: []int{
			66, 61, 62, r, 66, 61, 62, r, 69, 68, 66, 64, 62, r,
		}},
		sequence.TagV02: {Name: "02", PauseBGM: true, Melody: []int{
			76, r, 62, r, 76, 74, 62, r, 76, 79, 74, r,
		}},
		sequence.TagD: {Name: "d", PauseBGM: true, Melody: []int{
			71, 62, 64, r, 71, 62, 64, r, 67, 69, 71, 74, 76, r,
		}},
		sequence.TagC: {Name: "c", PauseBGM: true, Melody: []int{
			72, 60, 67, r, 72, 60, 67, r, 72, 76, 79, 84, r,
		}},
	}
}
