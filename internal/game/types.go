// internal/game/types.go
//
// Core type definitions for the hangman authority.
// Defines:
//   - Status: ongoing → won/lost.
//   - Game: one round against a single answer.
//   - Session: a player's cumulative tallies plus the current game.
//   - State: the JSON shape sent to clients.

package game

import "time"

// Status is the coarse game state reported to clients.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

const (
	// DefaultMaxGuesses is how many wrong guesses end a game.
	DefaultMaxGuesses = 10
	// BlankChar stands in for an unrevealed letter.
	BlankChar = '_'
)

// Game holds one round.
type Game struct {
	Answer           string   // lowercase solution
	Guessed          []string // letters guessed so far, sorted
	IncorrectGuesses int
	MaxGuesses       int
	Status           Status
}

// Session belongs to one client cookie.
type Session struct {
	ID        string
	Won       int
	Lost      int
	Game      *Game // nil until the first new game
	UpdatedAt time.Time
}

// State is the authority's response body.
type State struct {
	Status           Status   `json:"status"`
	WordWithBlanks   string   `json:"word_with_blanks"`
	LettersGuessed   []string `json:"letters_guessed"`
	GuessesLeft      int      `json:"guesses_left"`
	MaxGuesses       int      `json:"max_guesses"`
	IncorrectGuesses int      `json:"incorrect_guesses"`
	Won              int      `json:"won"`
	Lost             int      `json:"lost"`
	LettersLeft      []string `json:"letters_left,omitempty"`
	Answer           string   `json:"answer,omitempty"`
}
