// Package assets embeds the default hangman word list so the server runs
// without any configured files.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// ParseLines reads one entry per line, skipping blanks and # comments.
func ParseLines(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out
}

// WordList returns the embedded default words.
func WordList() ([]string, error) {
	b, err := FS.ReadFile("words.txt")
	if err != nil {
		return nil, err
	}
	return ParseLines(string(b)), nil
}
