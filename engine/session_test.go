package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/schmetterling/config"
	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/sequence"
)

type fakePlayer struct {
	keys  []sequence.Symbol
	clips int
	bgmOn bool
}

func (f *fakePlayer) PlayKey(sym sequence.Symbol) { f.keys = append(f.keys, sym) }
func (f *fakePlayer) PlayClip([]int) error         { f.clips++; return nil }
func (f *fakePlayer) StopClip()                    {}
func (f *fakePlayer) PauseBGM()                    { f.bgmOn = false }
func (f *fakePlayer) ResumeBGM()                   { f.bgmOn = true }

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func newSession(t *testing.T) (*Session, *fakePlayer) {
	t.Helper()
	p := &fakePlayer{}
	s, err := NewSession(config.Default(), p, rand.New(rand.NewPCG(7, 11)), nil)
	require.NoError(t, err)
	s.Resize(80, 24)
	s.Start()
	return s, p
}

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewSessionIgnoresNonPositiveWindows(t *testing.T) {
	cfg := config.Default()
	cfg.Patterns["ME"] = -time.Second
	_, err := NewSession(cfg, &fakePlayer{}, nil, nil)
	assert.NoError(t, err)
}

func TestHandleKeySpawnsAndPlays(t *testing.T) {
	s, p := newSession(t)

	tag := s.HandleKey(sequence.Key4, nil, at(0))
	assert.Equal(t, sequence.TagNone, tag)
	assert.Equal(t, []sequence.Symbol{sequence.Key4}, p.keys)
	assert.Equal(t, 1, s.Field().Len())

	f := s.Frame(at(0))
	require.Len(t, f.Butterflies, 1)
	assert.True(t, f.Active[3])
	assert.Equal(t, constants.DefaultHeadline, f.Headline)
	require.NotNil(t, f.Stage.Playing)
	assert.Equal(t, "v4", f.Stage.Playing.Clip.Name)
}

func TestHandleKeyIgnoresInvalidSymbol(t *testing.T) {
	s, p := newSession(t)
	assert.Equal(t, sequence.TagNone, s.HandleKey(sequence.SymbolNone, nil, at(0)))
	assert.Empty(t, p.keys)
	assert.Equal(t, 0, s.Field().Len())
}

func TestHandleKeyUnlocksSpecial(t *testing.T) {
	s, p := newSession(t)

	s.HandleKey(sequence.Key8, nil, at(0))
	s.HandleKey(sequence.Key1, nil, at(300))
	tag := s.HandleKey(sequence.Key5, nil, at(600))

	assert.Equal(t, sequence.TagC, tag)
	assert.False(t, p.bgmOn)
	assert.Equal(t, 3, s.Field().Len(), "every press launches a butterfly")
	assert.Equal(t, "c", s.Frame(at(600)).Stage.Playing.Clip.Name)
}

func TestButterfliesDoNotOverlap(t *testing.T) {
	s, _ := newSession(t)

	for i := 0; i < 6; i++ {
		s.HandleKey(sequence.Key5, nil, at(i*10))
	}
	live := s.Frame(at(100)).Butterflies
	require.Len(t, live, 6)
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			a, b := live[i], live[j]
			dx, dy := a.Spot.X-b.Spot.X, a.Spot.Y-b.Spot.Y
			assert.GreaterOrEqual(t, dx*dx+dy*dy, (a.Radius+b.Radius)*(a.Radius+b.Radius)-1e-6)
		}
	}
}

func TestUpdateReleasesHighlight(t *testing.T) {
	s, _ := newSession(t)
	s.HandleKey(sequence.Key1, nil, at(0))

	s.Update(at(149))
	assert.True(t, s.Frame(at(149)).Active[0])

	s.Update(at(150))
	assert.False(t, s.Frame(at(150)).Active[0])
}

func TestUpdateRetiresButterflies(t *testing.T) {
	s, _ := newSession(t)
	s.HandleKey(sequence.Key2, nil, at(0))

	end := at(0).Add(constants.ButterflyLifetime + constants.ButterflyFade)
	s.Update(end.Add(-time.Millisecond))
	assert.Equal(t, 1, s.Field().Len())

	s.Update(end)
	assert.Equal(t, 0, s.Field().Len())
	assert.Empty(t, s.Frame(end).Butterflies)
}

func TestUpdateEndsClip(t *testing.T) {
	s, _ := newSession(t)
	s.HandleKey(sequence.Key2, nil, at(0))

	s.Update(at(60_000))
	v := s.Frame(at(60_000)).Stage
	assert.True(t, v.Idle)
	assert.Nil(t, v.Playing)
}

func TestHandleEventKeys(t *testing.T) {
	s, p := newSession(t)

	assert.False(t, s.HandleEvent(keyEvent('7'), at(0)))
	assert.False(t, s.HandleEvent(keyEvent('0'), at(10)))
	assert.False(t, s.HandleEvent(keyEvent('x'), at(20)))
	assert.Equal(t, []sequence.Symbol{sequence.Key7, sequence.Key0}, p.keys)

	assert.True(t, p.bgmOn)
	assert.False(t, s.HandleEvent(keyEvent('b'), at(30)))
	assert.False(t, p.bgmOn)
	assert.Equal(t, constants.BGMLabelOff, s.Frame(at(30)).Stage.BGMLabel)
}

func TestHandleEventQuit(t *testing.T) {
	s, _ := newSession(t)

	assert.True(t, s.HandleEvent(keyEvent('q'), at(0)))
	assert.True(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), at(0)))
	assert.True(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl), at(0)))
}

func TestHandleEventMouse(t *testing.T) {
	s, p := newSession(t)

	// key 3 spans columns 16..23 on rows 20..23
	assert.False(t, s.HandleEvent(tcell.NewEventMouse(18, 22, tcell.Button1, tcell.ModNone), at(0)))
	require.Equal(t, []sequence.Symbol{sequence.Key3}, p.keys)

	// held button repeats without a new press
	s.HandleEvent(tcell.NewEventMouse(19, 22, tcell.Button1, tcell.ModNone), at(10))
	assert.Len(t, p.keys, 1)

	s.HandleEvent(tcell.NewEventMouse(19, 22, tcell.ButtonNone, tcell.ModNone), at(20))
	s.HandleEvent(tcell.NewEventMouse(19, 22, tcell.Button1, tcell.ModNone), at(30))
	assert.Len(t, p.keys, 2)

	// presses outside the piano do nothing
	s.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone), at(40))
	s.HandleEvent(tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone), at(50))
	assert.Len(t, p.keys, 2)

	// click origin stays inside the clicked key
	b := s.Frame(at(50)).Butterflies[0]
	assert.InDelta(t, 18.5*8, b.Origin.X, 1e-9)
	assert.InDelta(t, 22.5*16, b.Origin.Y, 1e-9)
}

func TestHandleEventResize(t *testing.T) {
	s, _ := newSession(t)
	s.HandleEvent(tcell.NewEventResize(120, 40), at(0))

	l := s.Layout()
	assert.Equal(t, 120, l.Width)
	assert.Equal(t, 40, l.Height)
}

func TestMockTimeProvider(t *testing.T) {
	m := NewMockTimeProvider(epoch)
	assert.Equal(t, epoch, m.Now())

	m.Advance(time.Second)
	assert.Equal(t, epoch.Add(time.Second), m.Now())

	m.SetTime(at(5))
	assert.Equal(t, at(5), m.Now())
}
