package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/hangman/internal/state"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/game/new", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
		_, _ = w.Write([]byte(`{"status":"ongoing","word_with_blanks":["_","_","_"],"letters_guessed":[],
			"guesses_left":6,"max_guesses":6,"incorrect_guesses":0,"won":0,"lost":0}`))
	})
	r.Get("/game", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sid"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no active game"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ongoing","word_with_blanks":"c__"}`))
	})
	r.Post("/guess/{letter}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "letter") {
		case "a":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"You already guessed 'a'","status":"ongoing"}`))
		case "b":
			w.WriteHeader(http.StatusBadGateway) // empty body
		case "c":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<html>oops</html>`))
		case "d":
			_, _ = w.Write([]byte(`not json`))
		case "e":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad_letter"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"ongoing","guesses_left":5,"incorrect_guesses":1,"letters_guessed":["z"]}`))
		}
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(url, 2*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClient_NewGame(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts.URL)

	p, err := c.NewGame(context.Background())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if p.StatusOr("") != state.StatusOngoing {
		t.Errorf("status %q, want ongoing", p.StatusOr(""))
	}
	if len(p.WordWithBlanks) != 3 {
		t.Errorf("len(word_with_blanks) %d, want 3", len(p.WordWithBlanks))
	}
	if p.GuessesLeft == nil || *p.GuessesLeft != 6 {
		t.Errorf("guesses_left %v, want 6", p.GuessesLeft)
	}
}

func TestClient_CurrentGame_NoSession(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts.URL)

	_, err := c.CurrentGame(context.Background())
	if err == nil {
		t.Fatal("CurrentGame without session should fail")
	}
	if !IsNoSession(err) {
		t.Errorf("IsNoSession(%v) = false, want true", err)
	}
	var f *Failure
	if !errors.As(err, &f) || f.Message != "no active game" {
		t.Errorf("failure %+v, want message 'no active game'", f)
	}
}

func TestClient_CookieCarriedBetweenCalls(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts.URL)

	if _, err := c.NewGame(context.Background()); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	p, err := c.CurrentGame(context.Background())
	if err != nil {
		t.Fatalf("CurrentGame after NewGame: %v", err)
	}
	if p.WordWithBlanks.String() != "c__" {
		t.Errorf("word_with_blanks %q, want c__", p.WordWithBlanks.String())
	}
}

func TestClient_Guess(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts.URL)

	p, err := c.Guess(context.Background(), "z")
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if p.GuessesLeft == nil || *p.GuessesLeft != 5 {
		t.Errorf("guesses_left %v, want 5", p.GuessesLeft)
	}
	if p.WordWithBlanks != nil {
		t.Errorf("word_with_blanks %v, want absent", p.WordWithBlanks)
	}
}

func TestClient_GuessFailures(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts.URL)

	cases := []struct {
		letter   string
		status   int
		message  string
		rejected bool
	}{
		{"a", http.StatusBadRequest, "You already guessed 'a'", true},
		{"b", http.StatusBadGateway, "Bad Gateway", false},
		{"c", http.StatusInternalServerError, "Internal Server Error", false},
		{"e", http.StatusBadRequest, "bad_letter", true},
	}
	for _, tc := range cases {
		_, err := c.Guess(context.Background(), tc.letter)
		var f *Failure
		if !errors.As(err, &f) {
			t.Fatalf("Guess(%q) err %v, want *Failure", tc.letter, err)
		}
		if f.Op != OpGuess {
			t.Errorf("Guess(%q) Op %q, want %q", tc.letter, f.Op, OpGuess)
		}
		if f.StatusCode != tc.status {
			t.Errorf("Guess(%q) StatusCode %d, want %d", tc.letter, f.StatusCode, tc.status)
		}
		if f.UserMessage() != tc.message {
			t.Errorf("Guess(%q) UserMessage %q, want %q", tc.letter, f.UserMessage(), tc.message)
		}
		if f.Rejected() != tc.rejected {
			t.Errorf("Guess(%q) Rejected %v, want %v", tc.letter, f.Rejected(), tc.rejected)
		}
		if IsNoSession(err) {
			t.Errorf("Guess(%q) classified as no-session", tc.letter)
		}
	}
}

func TestClient_UndecodableSuccessBody(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts.URL)

	_, err := c.Guess(context.Background(), "d")
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("err %v, want *Failure", err)
	}
	if f.Err == nil || !strings.Contains(f.Error(), "decode game state") {
		t.Errorf("Error() %q, want decode failure", f.Error())
	}
}

func TestClient_TransportFailure(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL
	ts.Close()
	c := newClient(t, url)

	_, err := c.NewGame(context.Background())
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("err %v, want *Failure", err)
	}
	if f.StatusCode != 0 {
		t.Errorf("StatusCode %d, want 0", f.StatusCode)
	}
	if f.UserMessage() != "Could not reach the game server" {
		t.Errorf("UserMessage %q", f.UserMessage())
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c, err := New(ts.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Guess(context.Background(), "q"); err == nil {
		t.Fatal("expected timeout failure")
	}
}
