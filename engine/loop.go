package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/schmetterling/constants"
	"github.com/lixenwraith/schmetterling/core"
	"github.com/lixenwraith/schmetterling/render"
)

// Loop drives a session from terminal events and a frame ticker
type Loop struct {
	screen   tcell.Screen
	session  *Session
	renderer *render.Renderer
	clock    Clock
	interval time.Duration
	logger   *slog.Logger

	crashHandler func(any)
}

// NewLoop binds a session to a screen. clock may be nil for wall time.
func NewLoop(screen tcell.Screen, session *Session, clock Clock, logger *slog.Logger) *Loop {
	if clock == nil {
		clock = NewTimeProvider()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		screen:       screen,
		session:      session,
		renderer:     render.NewRenderer(screen),
		clock:        clock,
		interval:     constants.FrameUpdateInterval,
		logger:       logger,
		crashHandler: core.HandleCrash,
	}
}

// SetCrashHandler replaces the handler for panics in the event poller,
// core.HandleCrash by default
func (l *Loop) SetCrashHandler(fn func(any)) {
	l.crashHandler = fn
}

// Run processes events and renders frames until the user quits or ctx is done
func (l *Loop) Run(ctx context.Context) error {
	w, h := l.screen.Size()
	l.session.Resize(w, h)
	l.renderer.Resize(w, h)
	l.session.Start()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, constants.EventQueueSize)
	go l.poll(eventChan, done)

	frameTicker := time.NewTicker(l.interval)
	defer frameTicker.Stop()

	l.draw()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("loop stopped", "reason", ctx.Err())
			return nil

		case ev := <-eventChan:
			if l.session.HandleEvent(ev, l.clock.Now()) {
				l.logger.Info("quit requested")
				return nil
			}
			if ev, ok := ev.(*tcell.EventResize); ok {
				l.renderer.Resize(ev.Size())
				l.screen.Sync()
			}

		case <-frameTicker.C:
			l.draw()
		}
	}
}

func (l *Loop) draw() {
	now := l.clock.Now()
	l.session.Update(now)
	l.renderer.Draw(l.session.Frame(now))
}

// poll forwards terminal events until the screen is finalized or the loop exits
func (l *Loop) poll(out chan<- tcell.Event, done <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			l.crashHandler(r)
		}
	}()

	for {
		ev := l.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}
