// Command hangman is the terminal client for the hangman authority.
//
// It recovers an in-progress game on startup, then drives the title →
// ongoing → won/lost phases from the keyboard and mouse. Logs go to
// LOG_FILE because the terminal belongs to the UI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/api"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/input"
	"github.com/robalobadob/hangman/internal/phase"
	"github.com/robalobadob/hangman/internal/scene"
	"github.com/robalobadob/hangman/internal/state"
	"github.com/robalobadob/hangman/internal/term"
	"github.com/robalobadob/hangman/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "hangman:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadClient()

	logf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logf.Close()
	config.SetupLogging(logf, cfg.LogLevel)

	client, err := api.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc := view.NewDocument()
	in := input.New()
	app := term.New(screen, doc, in)
	m := phase.New(ctx, client, state.NewStore(), in, scene.New(doc), app)

	log.Info().Str("server", cfg.BaseURL).Msg("client starting")
	m.Start()
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Msg("client exited")
	return nil
}
