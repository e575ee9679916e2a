// internal/words/words.go
//
// Provides the vocabulary for the hangman authority.
//
// Responsibilities:
//   - Load words from a configured file or fall back to the embedded list.
//   - Keep only purely alphabetic words (lowercased, any length ≥ 2).
//   - Supply RandomWord for new games.
//
// Initialization behavior (Init):
//   1. If path is non-empty, load that file (one word per line).
//   2. Otherwise use assets/words.txt.
//
// Init is safe to call more than once; only the first call loads.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/robalobadob/hangman/assets"
)

var (
	initOnce   sync.Once
	vocab      []string
	initialErr error
)

// Init loads the vocabulary exactly once.
// Returns an error if the list ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		vocab, initialErr = Load(path)
	})
	return initialErr
}

// Load reads a vocabulary without touching the package state.
func Load(path string) ([]string, error) {
	var raw []string
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("words: read %s: %w", path, err)
		}
		raw = assets.ParseLines(string(b))
	} else {
		var err error
		if raw, err = assets.WordList(); err != nil {
			return nil, fmt.Errorf("words: embedded list: %w", err)
		}
	}
	out := Filter(raw)
	if len(out) == 0 {
		return nil, errors.New("words: vocabulary is empty")
	}
	return out, nil
}

// Filter keeps lowercase alphabetic words of at least two letters.
func Filter(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if len(w) >= 2 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomWord returns a cryptographically random word from the vocabulary.
// If nothing is loaded yet, falls back to "hangman".
func RandomWord() string {
	return Pick(vocab)
}

// Pick returns a random element of list, or "hangman" if list is empty.
func Pick(list []string) string {
	if len(list) == 0 {
		return "hangman"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	return list[nBig.Int64()]
}

// Count returns how many words are loaded.
func Count() int {
	return len(vocab)
}
