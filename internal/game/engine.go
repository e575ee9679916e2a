// internal/game/engine.go
//
// Core game engine for a hangman session.
// Responsibilities:
//   - Start new games against a given answer.
//   - Validate and apply single-letter guesses.
//   - Track state transitions: ongoing → won/lost, bumping session tallies.
//   - Produce the client-facing State (answer only once the game is over).

package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNoGame is returned when a session has not started a game yet.
	ErrNoGame = errors.New("no active game")
	// ErrGameOver is returned for guesses after a win or loss.
	ErrGameOver = errors.New("Game is already over")
)

// GuessError rejects a malformed or repeated letter.
type GuessError struct {
	Letter string
	Repeat bool
}

func (e *GuessError) Error() string {
	if e.Repeat {
		return fmt.Sprintf("You already guessed '%s'", e.Letter)
	}
	return fmt.Sprintf("Invalid guess '%s' was made", e.Letter)
}

// NewSession returns an empty session with the given id.
func NewSession(id string) *Session {
	return &Session{ID: id, UpdatedAt: time.Now().UTC()}
}

// NewGame replaces the current game. Tallies carry over.
func (s *Session) NewGame(answer string, maxGuesses int) {
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	s.Game = &Game{
		Answer:     strings.ToLower(strings.TrimSpace(answer)),
		Guessed:    []string{},
		MaxGuesses: maxGuesses,
		Status:     StatusOngoing,
	}
	s.UpdatedAt = time.Now().UTC()
}

// Guess validates and applies letter, returning the new state.
//
// Validation rules:
//   - A game must exist and still be ongoing.
//   - letter must be exactly one character a–z (case-insensitive).
//   - letter must not have been guessed before.
func (s *Session) Guess(letter string) (State, error) {
	if s.Game == nil {
		return State{}, ErrNoGame
	}
	g := s.Game
	letter = strings.ToLower(letter)
	if g.Status != StatusOngoing {
		return s.State(), ErrGameOver
	}
	if len(letter) != 1 || !isAlpha(letter) {
		return s.State(), &GuessError{Letter: letter}
	}
	if g.guessed(letter) {
		return s.State(), &GuessError{Letter: letter, Repeat: true}
	}

	if !strings.Contains(g.Answer, letter) {
		g.IncorrectGuesses++
	}
	g.Guessed = append(g.Guessed, letter)
	sort.Strings(g.Guessed)

	switch {
	case len(g.lettersLeft()) == 0:
		g.Status = StatusWon
		s.Won++
	case g.IncorrectGuesses >= g.MaxGuesses:
		g.Status = StatusLost
		s.Lost++
	}
	s.UpdatedAt = time.Now().UTC()
	return s.State(), nil
}

// State reports the session as clients see it.
func (s *Session) State() State {
	st := State{Won: s.Won, Lost: s.Lost, LettersGuessed: []string{}}
	g := s.Game
	if g == nil {
		return st
	}
	st.Status = g.Status
	st.WordWithBlanks = g.blanks()
	st.LettersGuessed = append(st.LettersGuessed, g.Guessed...)
	st.MaxGuesses = g.MaxGuesses
	st.IncorrectGuesses = g.IncorrectGuesses
	st.GuessesLeft = g.MaxGuesses - g.IncorrectGuesses
	if st.GuessesLeft < 0 {
		st.GuessesLeft = 0
	}
	if g.Status != StatusOngoing {
		st.Answer = g.Answer
		st.LettersLeft = g.lettersLeft()
	}
	return st
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.Game != nil {
		g := *s.Game
		g.Guessed = append([]string{}, s.Game.Guessed...)
		c.Game = &g
	}
	return &c
}

func (g *Game) guessed(letter string) bool {
	i := sort.SearchStrings(g.Guessed, letter)
	return i < len(g.Guessed) && g.Guessed[i] == letter
}

// lettersLeft returns the distinct answer letters not yet guessed, sorted.
func (g *Game) lettersLeft() []string {
	seen := map[rune]bool{}
	out := []string{}
	for _, r := range g.Answer {
		l := string(r)
		if seen[r] || g.guessed(l) {
			continue
		}
		seen[r] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (g *Game) blanks() string {
	var b strings.Builder
	for _, r := range g.Answer {
		if g.guessed(string(r)) {
			b.WriteRune(r)
		} else {
			b.WriteRune(BlankChar)
		}
	}
	return b.String()
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
