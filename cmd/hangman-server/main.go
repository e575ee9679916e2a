// Command hangman-server is the game authority the terminal client talks to.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup (the SQLite handle) runs.
func run() error {
	cfg := config.LoadServer()
	config.SetupLogging(os.Stderr, cfg.LogLevel)

	if err := words.Init(cfg.WordsFile); err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	var st store.Store = store.NewMemoryStore()
	if cfg.DBPath != "" {
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
		}
		defer db.Close()
		st = db
	}

	srv := httpserver.New(st, httpserver.Options{
		Secret:      cfg.SessionSecret,
		SessionDays: cfg.SessionDays,
		MaxGuesses:  cfg.MaxGuesses,
	})
	log.Info().Str("port", cfg.Port).Int("words", words.Count()).
		Bool("persistent", cfg.DBPath != "").Msg("starting hangman-server")
	return srv.Start(":" + cfg.Port)
}
