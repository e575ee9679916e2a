// internal/term/app.go
//
// Terminal host for the client.
// Responsibilities:
//   - Run the single-threaded event loop: screen events and posted
//     continuations are handled one at a time on the Run goroutine.
//   - Translate tcell key, paste, and mouse events into input.Controller calls.
//   - Redraw the view tree after every handled event.
//
// App implements phase.Poster.

package term

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/input"
	"github.com/robalobadob/hangman/internal/view"
)

// App binds a screen, a document, and an input controller.
type App struct {
	screen tcell.Screen
	doc    *view.Document
	in     *input.Controller

	events chan tcell.Event
	funcs  chan func()
	done   chan struct{}

	hits      []hitArea // clickable regions from the last draw
	mouseDown bool
	pasting   bool
	paste     strings.Builder
}

// New returns an App. The screen must already be initialized.
func New(screen tcell.Screen, doc *view.Document, in *input.Controller) *App {
	return &App{
		screen: screen,
		doc:    doc,
		in:     in,
		events: make(chan tcell.Event),
		funcs:  make(chan func(), 16),
		done:   make(chan struct{}),
	}
}

// Post queues fn to run on the loop. It blocks while the queue is full
// and returns without running fn once the loop has stopped.
func (a *App) Post(fn func()) {
	select {
	case a.funcs <- fn:
	case <-a.done:
	}
}

// Run drives the loop until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	defer close(a.done)
	a.screen.EnableMouse()
	a.screen.EnablePaste()
	go a.poll()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-a.funcs:
			fn()
		case ev := <-a.events:
			if a.Handle(ev) {
				log.Debug().Msg("quit requested")
				return nil
			}
		}
		a.Draw()
	}
}

func (a *App) poll() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.done:
			return
		}
	}
}

// Handle processes one screen event and reports whether the app should quit.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventPaste:
		a.handlePaste(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyEnter:
		if a.pasting {
			return false
		}
		a.in.Key(input.KeyEvent{Key: input.KeyEnter})
	case tcell.KeyRune:
		if a.pasting {
			a.paste.WriteRune(ev.Rune())
			return false
		}
		a.in.Key(input.KeyEvent{Key: input.KeyRune, Text: string(ev.Rune())})
	default:
		a.in.Key(input.KeyEvent{Key: input.KeyOther})
	}
	return false
}

// handlePaste collects bracketed paste into one event so a pasted word
// is filtered as a whole instead of guessing letter by letter.
func (a *App) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.paste.Reset()
		return
	}
	if ev.End() {
		a.pasting = false
		a.in.Key(input.KeyEvent{Key: input.KeyRune, Text: a.paste.String()})
		a.paste.Reset()
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !a.mouseDown
	a.mouseDown = down
	if !pressed {
		return
	}
	x, y := ev.Position()
	for _, h := range a.hits {
		if h.contains(x, y) {
			a.in.Press()
			return
		}
	}
}
