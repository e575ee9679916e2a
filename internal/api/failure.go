package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Operation names carried by Failure.
const (
	OpNewGame     = "new game"
	OpCurrentGame = "current game"
	OpGuess       = "guess"
)

// Failure is the typed error every Client call returns.
// StatusCode is zero for transport failures (no response at all).
type Failure struct {
	Op         string
	StatusCode int
	Message    string // server-supplied when available
	Err        error
}

func (f *Failure) Error() string {
	switch {
	case f.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", f.Op, f.Message, f.StatusCode)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Op, f.Err)
	}
	return fmt.Sprintf("%s: status %d", f.Op, f.StatusCode)
}

func (f *Failure) Unwrap() error { return f.Err }

// UserMessage is the text to show in place of the failed action.
func (f *Failure) UserMessage() string {
	if f.Message != "" {
		return f.Message
	}
	if f.StatusCode == 0 {
		return "Could not reach the game server"
	}
	return http.StatusText(f.StatusCode)
}

// Rejected reports whether the authority answered with a 4xx.
func (f *Failure) Rejected() bool { return f.StatusCode >= 400 && f.StatusCode < 500 }

// IsNoSession reports whether err means there is no game to recover.
func IsNoSession(err error) bool {
	var f *Failure
	if !errors.As(err, &f) || f.Op != OpCurrentGame {
		return false
	}
	switch f.StatusCode {
	case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}
