// internal/state/store.go
//
// Local state store: the single owned GameState.
//
// The store is owned by the UI event loop and is not safe for concurrent use.
// Only the merge step after a server response writes game fields; the phase
// machine annotates LastGuess before a request goes out.

package state

import (
	"sort"
	"strings"
)

// Store holds the last known snapshot.
type Store struct {
	cur GameState
}

// NewStore returns an empty store in the title phase.
func NewStore() *Store {
	return &Store{cur: GameState{Status: StatusTitle}}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() GameState { return s.cur.Clone() }

// Reset discards everything, including the session counters.
func (s *Store) Reset() {
	s.cur = GameState{Status: StatusTitle}
}

// Replace starts a new game from p. Per-game fields are cleared first.
// The win/loss counters survive only when p omits them; a reported value
// is taken as is, since a fresh server session starts again at zero.
func (s *Store) Replace(p Payload) {
	won, lost := s.cur.Won, s.cur.Lost
	s.cur = GameState{Status: StatusTitle, Won: won, Lost: lost}
	s.apply(p, false)
}

// Merge folds a response into the current game field by field.
// Absent fields keep their value; within a game guessed letters and
// counters only ever grow. A payload that describes a different game
// is handled by Replace.
func (s *Store) Merge(p Payload) {
	if s.startsNewGame(p) {
		s.Replace(p)
		return
	}
	s.apply(p, true)
}

// startsNewGame reports whether p cannot belong to the current game:
// the word changed length, a revealed letter changed, or the number of
// wrong guesses went down.
func (s *Store) startsNewGame(p Payload) bool {
	c := s.cur
	if p.IncorrectGuesses != nil && *p.IncorrectGuesses < c.IncorrectGuesses {
		return true
	}
	if p.WordWithBlanks == nil || c.WordWithBlanks == nil {
		return false
	}
	if len(p.WordWithBlanks) != len(c.WordWithBlanks) {
		return true
	}
	for i, l := range c.WordWithBlanks {
		if l != Blank && !strings.EqualFold(l, p.WordWithBlanks[i]) {
			return true
		}
	}
	return false
}

// SetLastGuess records the letter most recently sent to the authority.
func (s *Store) SetLastGuess(letter string) {
	s.cur.LastGuess = letter
}

// apply writes p over the current state. With union set, guessed letters
// and the win/loss counters never decrease.
func (s *Store) apply(p Payload, union bool) {
	c := &s.cur
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.WordWithBlanks != nil {
		c.WordWithBlanks = append([]string(nil), p.WordWithBlanks...)
	}
	if p.LettersGuessed != nil {
		if union {
			c.LettersGuessed = letterSet(c.LettersGuessed, p.LettersGuessed)
		} else {
			c.LettersGuessed = letterSet(nil, p.LettersGuessed)
		}
	}
	if p.GuessesLeft != nil {
		c.GuessesLeft = *p.GuessesLeft
	}
	if p.MaxGuesses != nil {
		c.MaxGuesses = *p.MaxGuesses
	}
	if p.IncorrectGuesses != nil {
		c.IncorrectGuesses = *p.IncorrectGuesses
	}
	if p.Won != nil && (!union || *p.Won >= c.Won) {
		c.Won = *p.Won
	}
	if p.Lost != nil && (!union || *p.Lost >= c.Lost) {
		c.Lost = *p.Lost
	}
	if p.LettersLeft != nil {
		c.LettersLeft = letterSet(nil, p.LettersLeft)
	}
	if p.Answer != nil {
		c.Answer = strings.ToLower(*p.Answer)
	}
	if c.Status == StatusOngoing {
		// Never carry a solution into a game that is still being played.
		c.Answer = ""
		c.LettersLeft = nil
	}
}

// letterSet returns the sorted union of a and b with empties and duplicates removed.
func letterSet(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, l := range list {
			l = strings.ToLower(strings.TrimSpace(l))
			if l == "" {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
