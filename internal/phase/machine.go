// internal/phase/machine.go
//
// Phase state machine: Title → Ongoing → {Won, Lost} → Ongoing (new game).
//
// Responsibilities:
//   - Read the authority's status as the next phase; never compute win/loss.
//   - Own every listener attach/detach and every scene render (see enter).
//   - Allow at most one request in flight per kind (guess, new game).
//   - Drop continuations that belong to an older epoch, so a late response
//     cannot undo a transition the user has already made.
//
// Concurrency: every method must run on the UI event loop. Network calls run
// on their own goroutine and come back through Poster.

package phase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/api"
	"github.com/robalobadob/hangman/internal/input"
	"github.com/robalobadob/hangman/internal/scene"
	"github.com/robalobadob/hangman/internal/state"
)

// GameAPI is the remote authority as the machine sees it. *api.Client implements it.
type GameAPI interface {
	NewGame(ctx context.Context) (state.Payload, error)
	CurrentGame(ctx context.Context) (state.Payload, error)
	Guess(ctx context.Context, letter string) (state.Payload, error)
}

// Poster runs fn on the UI event loop.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(fn func())

func (f PosterFunc) Post(fn func()) { f(fn) }

// Machine is the single authority over phase, listeners, and scenes.
type Machine struct {
	ctx   context.Context
	api   GameAPI
	store *state.Store
	input *input.Controller
	view  *scene.Renderer
	post  Poster

	phase state.Status
	epoch uint64

	guessPending bool
	newPending   bool
}

// New wires a machine. ctx bounds every request it issues.
func New(ctx context.Context, a GameAPI, st *state.Store, in *input.Controller, r *scene.Renderer, p Poster) *Machine {
	return &Machine{
		ctx:   ctx,
		api:   a,
		store: st,
		input: in,
		view:  r,
		post:  p,
		phase: state.StatusTitle,
	}
}

// Phase returns the active phase.
func (m *Machine) Phase() state.Status { return m.phase }

// GuessPending reports whether a guess request is in flight.
func (m *Machine) GuessPending() bool { return m.guessPending }

// NewGamePending reports whether a new-game request is in flight.
func (m *Machine) NewGamePending() bool { return m.newPending }

// Start shows the title scene and tries to recover an existing session.
// A missing session is the normal case and leaves the title scene up.
func (m *Machine) Start() {
	m.enter(state.StatusTitle)
	epoch := m.epoch
	m.run(m.api.CurrentGame, func(p state.Payload, err error) {
		if epoch != m.epoch {
			log.Debug().Msg("dropping stale session recovery")
			return
		}
		if err != nil {
			if api.IsNoSession(err) {
				log.Debug().Msg("no session to recover")
			} else {
				log.Warn().Err(err).Msg("session recovery failed")
			}
			return
		}
		m.apply(p, true)
	})
}

// NewGame asks the authority for a fresh game. It is the activation handler
// on the title and game-over scenes. Ignored while another request is pending.
func (m *Machine) NewGame() {
	if m.newPending {
		log.Debug().Msg("new game already requested")
		return
	}
	m.newPending = true
	// A new game supersedes anything still in flight.
	m.epoch++
	m.guessPending = false
	epoch := m.epoch

	m.run(m.api.NewGame, func(p state.Payload, err error) {
		if epoch != m.epoch {
			return
		}
		m.newPending = false
		if err != nil {
			log.Error().Err(err).Msg("new game failed")
			m.reset()
			m.view.ShowError("Could not start a new game: " + userMessage(err))
			return
		}
		m.apply(p, true)
	})
}

// Guess submits letter. It is the guess listener while a game is in progress.
// A guess made while another is pending is ignored, never interleaved.
func (m *Machine) Guess(letter string) {
	if m.phase != state.StatusOngoing {
		return
	}
	if m.guessPending {
		log.Debug().Str("letter", letter).Msg("guess ignored: previous guess pending")
		return
	}
	m.guessPending = true
	m.store.SetLastGuess(letter)
	epoch := m.epoch

	m.run(func(ctx context.Context) (state.Payload, error) {
		return m.api.Guess(ctx, letter)
	}, func(p state.Payload, err error) {
		if epoch != m.epoch {
			return
		}
		m.guessPending = false
		if err != nil {
			m.guessFailed(letter, err)
			return
		}
		m.apply(p, false)
	})
}

// Apply reconciles an unsolicited server push (same rules as a guess response).
func (m *Machine) Apply(p state.Payload) { m.apply(p, false) }

// apply validates the reported status, updates the store, and transitions.
func (m *Machine) apply(p state.Payload, replace bool) {
	next := p.StatusOr(m.store.Snapshot().Status)
	if replace {
		next = p.StatusOr("")
	}
	if !next.FromServer() {
		log.Error().Str("status", string(next)).Msg("unrecognized game status; resetting session")
		m.reset()
		return
	}
	if replace {
		m.store.Replace(p)
	} else {
		m.store.Merge(p)
	}
	m.enter(next)
}

// enter is the one place listeners change and scenes render.
// Re-entering the current phase is safe: attach and render are idempotent.
func (m *Machine) enter(next state.Status) {
	g := m.store.Snapshot()
	switch next {
	case state.StatusOngoing:
		m.input.Detach(input.Activate)
		m.input.AttachGuess(m.Guess)
		m.view.OngoingScene(g)
	case state.StatusWon:
		m.input.Detach(input.Guess)
		m.input.AttachActivate(m.NewGame)
		m.view.WonScene(g)
	case state.StatusLost:
		m.input.Detach(input.Guess)
		m.input.AttachActivate(m.NewGame)
		m.view.LostScene(g)
	default:
		next = state.StatusTitle
		m.input.Detach(input.Guess)
		m.input.AttachActivate(m.NewGame)
		m.view.TitleScene()
	}
	if next != m.phase {
		log.Debug().Str("from", string(m.phase)).Str("to", string(next)).Msg("phase transition")
	}
	m.phase = next
}

// reset abandons the session: local state, pending requests, and scene.
func (m *Machine) reset() {
	m.epoch++
	m.guessPending = false
	m.newPending = false
	m.store.Reset()
	m.enter(state.StatusTitle)
}

// guessFailed reports a failed guess in place; input stays enabled.
func (m *Machine) guessFailed(letter string, err error) {
	var f *api.Failure
	if errors.As(err, &f) && f.Rejected() {
		log.Info().Str("letter", letter).Str("reason", f.UserMessage()).Msg("guess rejected")
	} else {
		log.Warn().Err(err).Str("letter", letter).Msg("guess failed")
	}
	msg := userMessage(err)
	if guessed := m.store.Snapshot().SortedGuesses(); len(guessed) > 0 {
		msg = fmt.Sprintf("%s\nGuessed so far: %s", msg, strings.Join(guessed, ", "))
	}
	m.view.ShowError(msg)
}

// run performs call off the loop and posts done back onto it.
func (m *Machine) run(call func(context.Context) (state.Payload, error), done func(state.Payload, error)) {
	go func() {
		p, err := call(m.ctx)
		m.post.Post(func() { done(p, err) })
	}()
}

func userMessage(err error) string {
	var f *api.Failure
	if errors.As(err, &f) {
		return f.UserMessage()
	}
	return err.Error()
}
