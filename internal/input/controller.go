// internal/input/controller.go
//
// Input controller: owns the keyboard/pointer listener slots.
//
// There are two listener kinds. Guess receives validated letters while a game
// is in progress; Activate receives the start / play-again trigger on the
// title and game-over scenes. Each kind has a single slot, so attaching twice
// still leaves exactly one handler, and detaching an empty slot does nothing.
// Only the phase machine calls Attach/Detach.

package input

import (
	"strings"
	"unicode/utf8"
)

// Kind selects a listener slot.
type Kind int

const (
	Guess Kind = iota
	Activate
)

func (k Kind) String() string {
	switch k {
	case Guess:
		return "guess"
	case Activate:
		return "activate"
	}
	return "unknown"
}

// Key classifies a raw key event.
type Key int

const (
	KeyRune  Key = iota // printable text in KeyEvent.Text
	KeyEnter            // the distinguished activation key
	KeyOther            // arrows, function keys, control keys...
)

// KeyEvent is a host-neutral keypress (or paste, when Text holds several runes).
type KeyEvent struct {
	Key  Key
	Text string
}

// Controller dispatches input to at most one handler per kind.
type Controller struct {
	guess    func(letter string)
	activate func()
}

// New returns a controller with nothing attached.
func New() *Controller { return &Controller{} }

// AttachGuess installs fn as the letter handler.
// It reports false when a handler was already attached; fn then replaces it.
func (c *Controller) AttachGuess(fn func(letter string)) bool {
	fresh := c.guess == nil
	c.guess = fn
	return fresh
}

// AttachActivate installs fn as the activation handler, with AttachGuess's semantics.
func (c *Controller) AttachActivate(fn func()) bool {
	fresh := c.activate == nil
	c.activate = fn
	return fresh
}

// Detach clears slot k. It reports whether anything was attached.
func (c *Controller) Detach(k Kind) bool {
	switch k {
	case Guess:
		had := c.guess != nil
		c.guess = nil
		return had
	case Activate:
		had := c.activate != nil
		c.activate = nil
		return had
	}
	return false
}

// Active reports whether slot k holds a handler.
func (c *Controller) Active(k Kind) bool {
	switch k {
	case Guess:
		return c.guess != nil
	case Activate:
		return c.activate != nil
	}
	return false
}

// Listeners returns how many slots are occupied.
func (c *Controller) Listeners() int {
	n := 0
	if c.guess != nil {
		n++
	}
	if c.activate != nil {
		n++
	}
	return n
}

// Key routes one key event. Invalid input is dropped silently.
// It reports whether a handler ran.
func (c *Controller) Key(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return c.Press()
	case KeyRune:
		if c.guess == nil {
			return false
		}
		letter, ok := ParseLetter(ev.Text)
		if !ok {
			return false
		}
		c.guess(letter)
		return true
	}
	return false
}

// Press is the pointer activation of the action button.
// It shares the Enter key's handler.
func (c *Controller) Press() bool {
	if c.activate == nil {
		return false
	}
	c.activate()
	return true
}

// ParseLetter lowercases and trims text and accepts exactly one letter a–z.
func ParseLetter(text string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if utf8.RuneCountInString(s) != 1 {
		return "", false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return "", false
	}
	return s, true
}
