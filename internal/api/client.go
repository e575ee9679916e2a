// internal/api/client.go
//
// Thin typed request layer over the game authority's JSON API.
// Responsibilities:
//   - One network round-trip per call, bounded by the client timeout.
//   - Carry the session cookie between calls (same-origin credentials).
//   - Turn every non-2xx response or transport error into a *Failure.
//
// Endpoints:
//   POST /game/new         → GameState
//   GET  /game             → GameState | 404 (no active session)
//   POST /guess/{letter}   → GameState | 4xx {message}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/robalobadob/hangman/internal/state"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Client talks to one authority base URL.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for baseURL with its own cookie jar.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// NewGame asks the authority to allocate a fresh game for this session.
func (c *Client) NewGame(ctx context.Context) (state.Payload, error) {
	return c.do(ctx, OpNewGame, http.MethodPost, "/game/new")
}

// CurrentGame recovers the session's game, if any. A *Failure here is
// expected when no session exists; see IsNoSession.
func (c *Client) CurrentGame(ctx context.Context) (state.Payload, error) {
	return c.do(ctx, OpCurrentGame, http.MethodGet, "/game")
}

// Guess submits a single letter.
func (c *Client) Guess(ctx context.Context, letter string) (state.Payload, error) {
	return c.do(ctx, OpGuess, http.MethodPost, "/guess/"+url.PathEscape(letter))
}

func (c *Client) do(ctx context.Context, op, method, path string) (state.Payload, error) {
	var p state.Payload
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return p, &Failure{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return p, &Failure{Op: op, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return p, &Failure{Op: op, StatusCode: res.StatusCode, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return p, &Failure{Op: op, StatusCode: res.StatusCode, Message: messageFrom(body, res.StatusCode)}
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return state.Payload{}, &Failure{Op: op, StatusCode: res.StatusCode, Err: fmt.Errorf("decode game state: %w", err)}
	}
	return p, nil
}

// messageFrom extracts a human-readable message from an error body.
// Bodies that are empty or not JSON fall back to the status text.
func messageFrom(body []byte, code int) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if len(body) > 0 && json.Unmarshal(body, &e) == nil {
		if m := strings.TrimSpace(e.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(e.Error); m != "" {
			return m
		}
	}
	if t := http.StatusText(code); t != "" {
		return t
	}
	return fmt.Sprintf("HTTP %d", code)
}
