package config

import (
	"testing"
	"time"
)

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv("HANGMAN_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("LOG_FILE", "")

	c := LoadClient()
	if c.BaseURL != "http://localhost:5175" {
		t.Errorf("BaseURL %q, want http://localhost:5175", c.BaseURL)
	}
	if c.Timeout != 10*time.Second {
		t.Errorf("Timeout %v, want 10s", c.Timeout)
	}
	if c.LogFile != "hangman.log" {
		t.Errorf("LogFile %q, want hangman.log", c.LogFile)
	}
}

func TestLoadClient_Overrides(t *testing.T) {
	t.Setenv("HANGMAN_URL", "http://example.test:9000/")
	t.Setenv("HTTP_TIMEOUT", "2s")

	c := LoadClient()
	if c.BaseURL != "http://example.test:9000" {
		t.Errorf("BaseURL %q, want trailing slash trimmed", c.BaseURL)
	}
	if c.Timeout != 2*time.Second {
		t.Errorf("Timeout %v, want 2s", c.Timeout)
	}
}

func TestLoadServer_BadNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_GUESSES", "lots")
	t.Setenv("SESSION_DAYS", "-3")

	s := LoadServer()
	if s.MaxGuesses != 10 {
		t.Errorf("MaxGuesses %d, want 10", s.MaxGuesses)
	}
	if s.SessionDays != 14 {
		t.Errorf("SessionDays %d, want 14", s.SessionDays)
	}
}
