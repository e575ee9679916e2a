// internal/config/config.go
//
// Environment-driven configuration for both binaries.
// Responsibilities:
//   - Load a .env file when present (development convenience).
//   - Read typed values (string, int, duration) with defaults.
//   - Configure the global zerolog level and sink.
//
// Environment variables (client):
//   HANGMAN_URL   base URL of the game authority (default http://localhost:5175)
//   HTTP_TIMEOUT  per-request timeout, Go duration syntax (default 10s)
//   LOG_FILE      JSON log sink; the terminal owns stdout (default hangman.log)
//
// Environment variables (server):
//   PORT, DB_PATH, SESSION_SECRET, SESSION_DAYS, MAX_GUESSES, WORDS_FILE
//
// Shared:
//   LOG_LEVEL     zerolog level name (default info)

package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client holds settings for the terminal client.
type Client struct {
	BaseURL  string
	Timeout  time.Duration
	LogLevel string
	LogFile  string
}

// Server holds settings for the game authority.
type Server struct {
	Port          string
	DBPath        string // empty → in-memory store
	SessionSecret string
	SessionDays   int
	MaxGuesses    int
	WordsFile     string
	LogLevel      string
}

// LoadClient reads client settings from the environment (and .env).
func LoadClient() Client {
	_ = godotenv.Load()
	return Client{
		BaseURL:  strings.TrimRight(getEnv("HANGMAN_URL", "http://localhost:5175"), "/"),
		Timeout:  envDuration("HTTP_TIMEOUT", 10*time.Second),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", "hangman.log"),
	}
}

// LoadServer reads server settings from the environment (and .env).
func LoadServer() Server {
	_ = godotenv.Load()
	return Server{
		Port:          getEnv("PORT", "5175"),
		DBPath:        os.Getenv("DB_PATH"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		SessionDays:   envInt("SESSION_DAYS", 14),
		MaxGuesses:    envInt("MAX_GUESSES", 10),
		WordsFile:     os.Getenv("WORDS_FILE"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// SetupLogging points the global zerolog logger at w and applies level.
// Unknown level names leave the global level untouched.
func SetupLogging(w io.Writer, level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
