package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/robalobadob/hangman/internal/scene"
	"github.com/robalobadob/hangman/internal/view"
)

const (
	margin      = 2
	figureWidth = 12
)

var (
	styleBase   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWon    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleMissed = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleButton = tcell.StyleDefault.Reverse(true).Bold(true)
	styleFigure = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

type hitArea struct{ x, y, w, h int }

func (r hitArea) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Draw paints the whole document. The left column stacks header, content,
// and footer; the gallows sits on the right.
func (a *App) Draw() {
	a.screen.Clear()
	a.hits = a.hits[:0]
	w, _ := a.screen.Size()

	y := 1
	for _, id := range []string{view.Header, view.Content, view.Footer} {
		anchor := a.doc.Anchor(id)
		if anchor == nil {
			continue
		}
		for _, n := range anchor.Children() {
			y += a.drawNode(n, margin, y) + 1
		}
	}
	if h := a.doc.Anchor(view.Hangman); h != nil {
		x := w - figureWidth - margin
		if x < margin {
			x = margin
		}
		a.drawFigure(h, x, 1)
	}
	a.screen.Show()
}

// drawNode draws n at (x, y) and returns the rows used.
func (a *App) drawNode(n *view.Node, x, y int) int {
	if n.Hidden {
		return 0
	}
	st := styleFor(n)
	rows := 0
	if n.Text != "" {
		for i, line := range strings.Split(n.Text, "\n") {
			if n.HasClass(scene.ClassButton) {
				line = "[ " + line + " ]"
				a.hits = append(a.hits, hitArea{x: x, y: y + i, w: runewidth.StringWidth(line), h: 1})
			}
			a.print(x, y+i, line, st)
			rows++
		}
	}
	if n.Inline {
		cx, tall := x, 0
		for _, c := range n.Children() {
			h := a.drawNode(c, cx, y+rows)
			if h > tall {
				tall = h
			}
			cx += textWidth(c) + 1
		}
		return rows + tall
	}
	for _, c := range n.Children() {
		rows += a.drawNode(c, x, y+rows)
	}
	return rows
}

func (a *App) print(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}

func textWidth(n *view.Node) int {
	w := 0
	for _, line := range strings.Split(n.Text, "\n") {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

func styleFor(n *view.Node) tcell.Style {
	switch {
	case n.HasClass(scene.ClassButton):
		return styleButton
	case n.HasClass(scene.ClassMissed):
		return styleMissed
	case n.HasClass(scene.ClassWon):
		return styleWon
	case n.HasClass(scene.ClassError):
		return styleError
	case n.ID == string(scene.Title):
		return styleTitle
	}
	return styleBase
}

type cell struct {
	x, y int
	r    rune
}

// gallows lists the figure's segments in reveal order.
var gallows = [][]cell{
	{{0, 6, '='}, {1, 6, '='}, {2, 6, '='}, {3, 6, '='}, {4, 6, '='}, {5, 6, '='}, {6, 6, '='}}, // base
	{{5, 1, '|'}, {5, 2, '|'}, {5, 3, '|'}, {5, 4, '|'}, {5, 5, '|'}},                           // pole
	{{1, 0, '+'}, {2, 0, '-'}, {3, 0, '-'}, {4, 0, '-'}, {5, 0, '+'}},                           // beam
	{{1, 1, '|'}},  // rope
	{{1, 2, 'O'}},  // head
	{{1, 3, '|'}},  // body
	{{0, 3, '/'}},  // left arm
	{{2, 3, '\\'}}, // right arm
	{{0, 4, '/'}},  // left leg
	{{2, 4, '\\'}}, // right leg
}

// drawFigure reveals gallows segments in proportion to the visible pieces,
// so any maximum maps onto the same drawing.
func (a *App) drawFigure(h *view.Node, x, y int) {
	total := len(h.Children())
	if total == 0 {
		return
	}
	visible := 0
	for _, p := range h.Children() {
		if !p.Hidden {
			visible++
		}
	}
	segments := (visible*len(gallows) + total - 1) / total
	for _, seg := range gallows[:segments] {
		for _, c := range seg {
			a.screen.SetContent(x+c.x, y+c.y, c.r, nil, styleFigure)
		}
	}
}
