package placement

import (
	"time"

	"github.com/google/uuid"
)

type entry struct {
	region  Region
	expires time.Time
}

// Field is the live collection of placed regions.
// Single writer: not safe for concurrent use.
type Field struct {
	entries []entry
}

// NewField creates an empty field
func NewField() *Field {
	return &Field{}
}

// NewRegionID returns a fresh time-ordered region identifier
func NewRegionID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Insert adds r, to be dropped by Expire once expires has passed.
// A zero expires keeps the region until Remove.
func (f *Field) Insert(r Region, expires time.Time) {
	f.entries = append(f.entries, entry{region: r, expires: expires})
}

// Remove drops the region with id, reporting whether it was present
func (f *Field) Remove(id string) bool {
	for i := range f.entries {
		if f.entries[i].region.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Expire removes every region whose expiry is at or before now and returns their IDs
func (f *Field) Expire(now time.Time) []string {
	var gone []string
	kept := f.entries[:0]
	for _, e := range f.entries {
		if !e.expires.IsZero() && !e.expires.After(now) {
			gone = append(gone, e.region.ID)
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so dropped regions are not retained by the backing array
	for i := len(kept); i < len(f.entries); i++ {
		f.entries[i] = entry{}
	}
	f.entries = kept
	return gone
}

// Regions returns a snapshot of the live regions in insertion order
func (f *Field) Regions() []Region {
	out := make([]Region, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.region
	}
	return out
}

// Len returns the number of live regions
func (f *Field) Len() int {
	return len(f.entries)
}
