// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Persisting sessions as one row each: tallies plus the current game.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite is a Store backed by a single database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn and
// applies pending migrations.
func OpenSQLite(dsn string) (*SQLite, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// migrate applies embedded migrations in lexical order, each in its own tx.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		text, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(text)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, sess *game.Session) error {
	var (
		answer, status   sql.NullString
		guessed          string
		incorrect, limit int
	)
	if g := sess.Game; g != nil {
		answer = sql.NullString{String: g.Answer, Valid: true}
		status = sql.NullString{String: string(g.Status), Valid: true}
		guessed = strings.Join(g.Guessed, "")
		incorrect, limit = g.IncorrectGuesses, g.MaxGuesses
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions
            (id, won, lost, answer, guessed, incorrect_guesses, max_guesses, status, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            won=excluded.won, lost=excluded.lost, answer=excluded.answer,
            guessed=excluded.guessed, incorrect_guesses=excluded.incorrect_guesses,
            max_guesses=excluded.max_guesses, status=excluded.status,
            updated_at=excluded.updated_at`,
		sess.ID, sess.Won, sess.Lost, answer, guessed, incorrect, limit, status,
		sess.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*game.Session, error) {
	var (
		sess             = &game.Session{ID: id}
		answer, status   sql.NullString
		guessed, ts      string
		incorrect, limit int
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT won, lost, answer, guessed, incorrect_guesses, max_guesses, status, updated_at
        FROM sessions WHERE id=?`, id,
	).Scan(&sess.Won, &sess.Lost, &answer, &guessed, &incorrect, &limit, &status, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		sess.UpdatedAt = t
	}
	if answer.Valid {
		g := &game.Game{
			Answer:           answer.String,
			Guessed:          []string{},
			IncorrectGuesses: incorrect,
			MaxGuesses:       limit,
			Status:           game.Status(status.String),
		}
		for _, r := range guessed {
			g.Guessed = append(g.Guessed, string(r))
		}
		sess.Game = g
	}
	return sess, nil
}
