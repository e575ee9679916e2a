// internal/httpserver/server.go
//
// HTTP server wiring for the hangman authority.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs, access log).
//   - Diagnostics: "/", "/health".
//   - Game endpoints: POST /game/new, GET /game, POST /guess/{letter}.
//   - Per-client sessions keyed by a signed cookie (see session.go).
//
// Notes:
//   - Every response body is JSON. Failures carry {"message": "..."}; a
//     rejected guess also carries the unchanged game state.
//   - Handlers that modify a session hold s.mu across load → mutate → save,
//     so concurrent requests on one session cannot lose updates.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Options tune a Server. Zero values fall back to defaults.
type Options struct {
	Secret      string        // HS256 key for session cookies
	SessionDays int           // cookie/token lifetime
	MaxGuesses  int           // wrong guesses allowed per game
	Pick        func() string // answer source; defaults to words.RandomWord
}

// Server bundles router, session store, and game settings.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options

	mu sync.Mutex // serializes session mutations
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Secret == "" {
		opts.Secret = "dev_secret_change_me"
	}
	if opts.SessionDays <= 0 {
		opts.SessionDays = 14
	}
	if opts.MaxGuesses <= 0 {
		opts.MaxGuesses = game.DefaultMaxGuesses
	}
	if opts.Pick == nil {
		opts.Pick = words.RandomWord
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","POST /game/new","GET /game","POST /guess/{letter}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "words": words.Count()})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Get("/game", s.handleGetGame)
	s.r.Post("/guess/{letter}", s.handleGuess)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

const msgNoGame = "no active game"

// guessFailure is the 400 body for a rejected guess: message plus state.
type guessFailure struct {
	Message string `json:"message"`
	game.State
}

// handleGetGame reports the caller's current game, or 404 if there is none.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.internalError(w, err, "load session")
		return
	}
	if sess == nil || sess.Game == nil {
		writeMessage(w, http.StatusNotFound, msgNoGame)
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// handleNewGame starts a game, creating the session and cookie on first use.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(r)
	if err != nil {
		s.internalError(w, err, "load session")
		return
	}
	if sess == nil {
		sid := sessionID(r, s.opts.Secret)
		if sid == "" {
			sid = uuid.NewString()
			if err := s.setSessionCookie(w, sid); err != nil {
				s.internalError(w, err, "sign session")
				return
			}
		}
		sess = game.NewSession(sid)
	}

	sess.NewGame(s.opts.Pick(), s.opts.MaxGuesses)
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.internalError(w, err, "save session")
		return
	}
	log.Info().Str("session", sess.ID).Int("length", len(sess.Game.Answer)).Msg("new game")
	writeJSON(w, http.StatusOK, sess.State())
}

// handleGuess applies one letter to the caller's game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	letter := chi.URLParam(r, "letter")

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(r)
	if err != nil {
		s.internalError(w, err, "load session")
		return
	}
	if sess == nil || sess.Game == nil {
		writeMessage(w, http.StatusNotFound, msgNoGame)
		return
	}

	st, err := sess.Guess(letter)
	var ge *game.GuessError
	switch {
	case errors.As(err, &ge), errors.Is(err, game.ErrGameOver):
		log.Debug().Str("session", sess.ID).Str("letter", letter).Err(err).Msg("guess rejected")
		writeJSON(w, http.StatusBadRequest, guessFailure{Message: err.Error(), State: st})
		return
	case err != nil:
		s.internalError(w, err, "guess")
		return
	}

	if err := s.store.Save(r.Context(), sess); err != nil {
		s.internalError(w, err, "save session")
		return
	}
	if st.Status != game.StatusOngoing {
		log.Info().Str("session", sess.ID).Str("status", string(st.Status)).
			Int("won", st.Won).Int("lost", st.Lost).Msg("game over")
	}
	writeJSON(w, http.StatusOK, st)
}

// loadSession returns the caller's stored session, or nil if the request
// carries no valid cookie or the session is unknown.
func (s *Server) loadSession(r *http.Request) (*game.Session, error) {
	sid := sessionID(r, s.opts.Secret)
	if sid == "" {
		return nil, nil
	}
	sess, err := s.store.Get(r.Context(), sid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return sess, err
}

func (s *Server) internalError(w http.ResponseWriter, err error, what string) {
	log.Error().Err(err).Msg(what)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}
