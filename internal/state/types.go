// internal/state/types.go
//
// Core type definitions for the client's view of a hangman game.
// Defines:
//   - Status: the phase reported by the authority (plus the client-only title).
//   - GameState: the last known snapshot, owned by Store.
//   - Payload: the wire shape; absent keys decode to nil so a merge can skip them.

package state

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// Status names a game phase.
// The authority only ever sends ongoing/won/lost; title exists on the client alone.
type Status string

const (
	StatusTitle   Status = "title"
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Blank is the placeholder for an unrevealed position.
const Blank = "_"

// FromServer reports whether s is a status the authority is allowed to send.
func (s Status) FromServer() bool {
	switch s {
	case StatusOngoing, StatusWon, StatusLost:
		return true
	}
	return false
}

// Terminal reports whether s ends a game.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// GameState is the client's snapshot of the game.
type GameState struct {
	Status           Status
	WordWithBlanks   []string // one entry per position: a letter or Blank
	LettersGuessed   []string // unique, kept sorted
	GuessesLeft      int
	MaxGuesses       int
	IncorrectGuesses int
	Answer           string   // terminal states only
	LettersLeft      []string // loss (and win, where it is empty)
	Won              int
	Lost             int
	LastGuess        string // client-local
}

// SortedGuesses returns the guessed letters in display order.
func (g GameState) SortedGuesses() []string {
	out := append([]string(nil), g.LettersGuessed...)
	sort.Strings(out)
	return out
}

// Missed reports whether letter was still hidden when the game was lost.
func (g GameState) Missed(letter string) bool {
	for _, l := range g.LettersLeft {
		if l == letter {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (g GameState) Clone() GameState {
	c := g
	c.WordWithBlanks = append([]string(nil), g.WordWithBlanks...)
	c.LettersGuessed = append([]string(nil), g.LettersGuessed...)
	c.LettersLeft = append([]string(nil), g.LettersLeft...)
	return c
}

// Blanks decodes word_with_blanks from either a JSON string ("c_t")
// or an array of single characters (["c","_","t"]).
type Blanks []string

// UnmarshalJSON implements json.Unmarshaler.
func (b *Blanks) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		out := make(Blanks, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		*b = out
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("word_with_blanks: want string or array of strings")
	}
	if list == nil {
		list = []string{}
	}
	*b = list
	return nil
}

// String joins the positions, e.g. "c_t".
func (b Blanks) String() string { return strings.Join(b, "") }

// Payload is the authority's JSON game state.
// Every field is optional so a partial response merges cleanly.
type Payload struct {
	Status           *Status  `json:"status,omitempty"`
	WordWithBlanks   Blanks   `json:"word_with_blanks,omitempty"`
	LettersGuessed   []string `json:"letters_guessed,omitempty"`
	GuessesLeft      *int     `json:"guesses_left,omitempty"`
	MaxGuesses       *int     `json:"max_guesses,omitempty"`
	IncorrectGuesses *int     `json:"incorrect_guesses,omitempty"`
	Won              *int     `json:"won,omitempty"`
	Lost             *int     `json:"lost,omitempty"`
	LettersLeft      []string `json:"letters_left,omitempty"`
	Answer           *string  `json:"answer,omitempty"`
}

// StatusOr returns the payload status, or def if absent.
func (p Payload) StatusOr(def Status) Status {
	if p.Status == nil {
		return def
	}
	return *p.Status
}
