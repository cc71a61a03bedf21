// Package render draws the piano, stage panel and butterflies onto a tcell screen.
// Geometry is computed in virtual units (CellWidth×CellHeight per cell) and
// mapped back to cells only when drawing.
package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/schmetterling/butterfly"
	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/sequence"
	"github.com/lixenwraith/schmetterling/stage"
)

// Sprite rows; wing frames alternate with the flap period
var (
	spriteOpen   = [3]string{`(\ /)`, ` (o) `, `(/ \)`}
	spriteClosed = [3]string{` \ / `, ` |o| `, ` / \ `}
)

// waveLevels are the bar glyphs of the stage wave
var waveLevels = []rune("▁▂▃▄▅▆▇█")

// Frame is everything drawn in one pass
type Frame struct {
	Now         time.Time
	Headline    string
	Stage       stage.View
	Butterflies []*butterfly.Butterfly
	Active      [constants.KeyCount]bool
}

// Renderer draws frames to a screen
type Renderer struct {
	screen tcell.Screen
	layout Layout
}

// NewRenderer creates a renderer sized to the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{screen: screen, layout: NewLayout(w, h)}
}

// Resize recomputes the layout for a new terminal size
func (r *Renderer) Resize(w, h int) {
	r.layout = NewLayout(w, h)
}

// Layout returns the current layout
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Draw renders f and shows the screen
func (r *Renderer) Draw(f Frame) {
	bg := tcell.StyleDefault.Background(RgbBackground.Color())
	r.screen.Clear()
	fill(r.screen, Rect{W: r.layout.Width, H: r.layout.Height}, ' ', bg)

	r.drawHeadline(f, bg)
	r.drawStage(f, bg)
	r.drawButterflies(f, bg)
	r.drawPiano(f, bg)

	r.screen.Show()
}

func (r *Renderer) drawHeadline(f Frame, bg tcell.Style) {
	hl := r.layout.Headline
	if hl.H == 0 {
		return
	}
	headline := f.Headline
	if headline == "" {
		headline = constants.DefaultHeadline
	}
	drawCentered(r.screen, hl.X, hl.Y, hl.W, headline, bg.Foreground(RgbHeadline.Color()).Bold(true))

	label := "[b] " + f.Stage.BGMLabel
	labelColor := RgbBGMOff
	if f.Stage.BGMOn {
		labelColor = RgbBGMOn
	}
	x := max(0, hl.W-StringWidth(label)-1)
	drawText(r.screen, x, hl.Y, hl.W, label, bg.Foreground(labelColor.Color()))

	if hl.H > 1 {
		drawCentered(r.screen, hl.X, hl.Y+1, hl.W, "press 1-9 0 or click a key, q to quit", bg.Foreground(RgbHint.Color()))
	}
}

func (r *Renderer) drawStage(f Frame, bg tcell.Style) {
	s := r.layout.Stage
	if s.W < 4 || s.H < 3 {
		return
	}
	frame := bg.Foreground(RgbStageFrame.Color())
	r.drawBox(s, frame)

	inner := Rect{X: s.X + 1, Y: s.Y + 1, W: s.W - 2, H: s.H - 2}
	midY := inner.Y + inner.H/2

	if f.Stage.Playing == nil {
		drawCentered(r.screen, inner.X, midY, inner.W, constants.IdleIcon, bg.Foreground(RgbIdle.Color()).Bold(true))
		return
	}

	p := f.Stage.Playing
	title := p.Clip.Name
	if p.Special != sequence.TagNone {
		title = fmt.Sprintf("★ %s ★", p.Clip.Name)
	}
	drawCentered(r.screen, inner.X, inner.Y, inner.W, title, bg.Foreground(RgbHeadline.Color()).Bold(true))

	if inner.H >= 3 {
		r.drawWave(Rect{X: inner.X + 1, Y: midY, W: inner.W - 2, H: 1}, f.Now.Sub(p.Started), bg.Foreground(RgbStageWave.Color()))
	}
	if inner.H >= 2 {
		r.drawProgress(Rect{X: inner.X + 1, Y: inner.Y + inner.H - 1, W: inner.W - 2, H: 1}, f.Stage.Progress, bg)
	}
}

func (r *Renderer) drawBox(b Rect, style tcell.Style) {
	right, bottom := b.X+b.W-1, b.Y+b.H-1
	for x := b.X + 1; x < right; x++ {
		r.screen.SetContent(x, b.Y, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := b.Y + 1; y < bottom; y++ {
		r.screen.SetContent(b.X, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(b.X, b.Y, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(right, b.Y, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(b.X, bottom, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// drawWave animates bars by elapsed clip time
func (r *Renderer) drawWave(row Rect, elapsed time.Duration, style tcell.Style) {
	phase := elapsed.Seconds() * 6
	top := len(waveLevels) - 1
	for i := 0; i < row.W; i++ {
		v := (math.Sin(phase+float64(i)*0.55) + math.Sin(phase*0.7+float64(i)*0.23)) / 4
		level := int(math.Round((v + 0.5) * float64(top)))
		r.screen.SetContent(row.X+i, row.Y, waveLevels[min(max(level, 0), top)], nil, style)
	}
}

func (r *Renderer) drawProgress(row Rect, progress float64, bg tcell.Style) {
	if row.W <= 0 {
		return
	}
	filled := int(math.Round(min(max(progress, 0), 1) * float64(row.W)))
	done := bg.Foreground(RgbProgress.Color())
	todo := bg.Foreground(RgbHint.Color())
	for i := 0; i < row.W; i++ {
		if i < filled {
			r.screen.SetContent(row.X+i, row.Y, '━', nil, done)
		} else {
			r.screen.SetContent(row.X+i, row.Y, '─', nil, todo)
		}
	}
}

func (r *Renderer) drawButterflies(f Frame, bg tcell.Style) {
	top := r.layout.Headline.Y + r.layout.Headline.H
	bottom := r.layout.Piano.Y

	for _, b := range f.Butterflies {
		alpha := b.Opacity(f.Now)
		if alpha <= 0 {
			continue
		}
		body := Lerp(RgbBackground, HSL(b.Hue, butterflySaturation, butterflyLightness), alpha)
		wing := Lerp(RgbBackground, HSL(b.Accent, butterflySaturation, butterflyLightness), alpha)

		sprite := spriteOpen
		if !b.WingsOpen(f.Now) {
			sprite = spriteClosed
		}

		cx, cy := ToCell(b.Position(f.Now))
		x0, y0 := cx-2, cy-1
		for dy, line := range sprite {
			y := y0 + dy
			// in flight a sprite may cross the piano; only the band is drawn
			if y < top || y >= bottom {
				continue
			}
			for dx, ch := range line {
				x := x0 + dx
				if ch == ' ' || x < 0 || x >= r.layout.Width {
					continue
				}
				color := wing
				if ch == 'o' || ch == '|' {
					color = body
				}
				r.screen.SetContent(x, y, ch, nil, bg.Foreground(color.Color()))
			}
		}
	}
}

func (r *Renderer) drawPiano(f Frame, bg tcell.Style) {
	for i, k := range r.layout.Keys {
		if k.H == 0 || k.X >= r.layout.Width {
			continue
		}
		face := RgbKey
		if f.Active[i] {
			face = RgbKeyActive
		}
		style := tcell.StyleDefault.Background(face.Color()).Foreground(RgbKeyText.Color())
		fill(r.screen, Rect{X: k.X, Y: k.Y, W: k.W - 1, H: k.H}, ' ', style)

		edge := bg.Foreground(RgbKeyEdge.Color())
		for y := k.Y; y < k.Y+k.H; y++ {
			r.screen.SetContent(k.X+k.W-1, y, tcell.RuneVLine, nil, edge)
		}

		label := string(sequence.SymbolAt(i).Rune())
		drawCentered(r.screen, k.X, k.Y+k.H-1, k.W-1, label, style.Bold(f.Active[i]))
	}
}
