// internal/scene/renderer.go
//
// Scene renderer: materializes a phase + state snapshot into the view tree.
// Responsibilities:
//   - Keep a registry of mounted regions (region → node) and consult it
//     instead of searching the live tree.
//   - Reconcile: update a mounted region in place, mount it once if missing,
//     unmount regions the current scene does not use.
//   - Keep exactly IncorrectGuesses hangman pieces visible.
//
// Every scene function is idempotent: rendering the same snapshot twice
// leaves the tree unchanged.

package scene

import (
	"fmt"
	"strings"

	"github.com/robalobadob/hangman/internal/state"
	"github.com/robalobadob/hangman/internal/view"
)

// Region names a dynamic part of a scene. The value doubles as the node id.
type Region string

const (
	Title      Region = "title"
	Directions Region = "directions"
	Blanks     Region = "blanks"
	Counter    Region = "counter"
	Message    Region = "message"
	Button     Region = "btn"
)

// Class names used as visual markers.
const (
	ClassLetter = "letter"
	ClassWon    = "won"
	ClassMissed = "missed"
	ClassError  = "error"
	ClassPiece  = "piece"
	ClassButton = "button"
)

// DefaultPieces is how many hangman pieces the title scene shows before
// any game has told us the real maximum.
const DefaultPieces = 10

// anchors says where each region mounts.
var anchors = map[Region]string{
	Title:      view.Header,
	Directions: view.Content,
	Blanks:     view.Content,
	Counter:    view.Content,
	Message:    view.Footer,
	Button:     view.Footer,
}

// Renderer owns the dynamic nodes of a document.
type Renderer struct {
	doc     *view.Document
	mounted map[Region]*view.Node
}

// New returns a renderer for doc. Nothing is mounted yet.
func New(doc *view.Document) *Renderer {
	return &Renderer{doc: doc, mounted: make(map[Region]*view.Node)}
}

// Document returns the tree being rendered into.
func (r *Renderer) Document() *view.Document { return r.doc }

// Mounted returns the node for reg, if mounted.
func (r *Renderer) Mounted(reg Region) (*view.Node, bool) {
	n, ok := r.mounted[reg]
	return n, ok
}

// TitleScene renders the start screen: title, directions, full gallows, start button.
func (r *Renderer) TitleScene() {
	r.keep(Title, Directions, Button)
	r.title()
	d := r.ensure(Directions)
	if len(d.Children()) == 0 {
		for _, line := range []string{
			"This is a game of Hangman",
			"Press a letter on the keyboard to make a guess",
			"Press Enter or click 'Start Game!' to play",
		} {
			n := view.NewNode("", "direction")
			n.Text = line
			d.Append(n)
		}
	}
	r.button("Start Game!")
	total := len(r.anchor(view.Hangman).Children())
	if total == 0 {
		total = DefaultPieces
	}
	r.pieces(total, total)
}

// OngoingScene renders a game in progress.
func (r *Renderer) OngoingScene(g state.GameState) {
	regions := []Region{Title, Blanks, Counter}
	if g.LastGuess != "" {
		regions = append(regions, Message)
	}
	r.keep(regions...)
	r.title()
	r.blanks(g.WordWithBlanks, func(string) string { return "" })
	r.ensure(Counter).Text = fmt.Sprintf("%d guesses remaining", g.GuessesLeft)
	if g.LastGuess != "" {
		r.message(fmt.Sprintf("You guessed '%s'", g.LastGuess), false)
	}
	r.pieces(g.MaxGuesses, g.IncorrectGuesses)
}

// WonScene renders a win: every letter revealed with the won marker.
func (r *Renderer) WonScene(g state.GameState) {
	r.keep(Title, Blanks, Message, Button)
	r.title()
	r.blanks(revealed(g), func(string) string { return ClassWon })
	r.message("You won!\n"+tally(g), false)
	r.button("Play again?")
	r.pieces(g.MaxGuesses, g.IncorrectGuesses)
}

// LostScene renders a loss: letters never found carry the missed marker.
func (r *Renderer) LostScene(g state.GameState) {
	r.keep(Title, Blanks, Message, Button)
	r.title()
	r.blanks(revealed(g), func(l string) string {
		if g.Missed(l) {
			return ClassMissed
		}
		return ""
	})
	r.message("You lost!\n"+tally(g), false)
	r.button("Play again?")
	r.pieces(g.MaxGuesses, g.IncorrectGuesses)
}

// ShowError puts text in the message region, marked as an error,
// leaving the rest of the scene alone.
func (r *Renderer) ShowError(text string) {
	r.message(text, true)
}

// keep unmounts every region not listed.
func (r *Renderer) keep(regions ...Region) {
	want := make(map[Region]bool, len(regions))
	for _, reg := range regions {
		want[reg] = true
	}
	for reg, n := range r.mounted {
		if !want[reg] {
			n.Detach()
			delete(r.mounted, reg)
		}
	}
}

// ensure returns the node for reg, mounting it at the end of its anchor when absent.
func (r *Renderer) ensure(reg Region) *view.Node {
	if n, ok := r.mounted[reg]; ok {
		return n
	}
	n := view.NewNode(string(reg))
	r.anchor(anchors[reg]).Append(n)
	r.mounted[reg] = n
	return n
}

func (r *Renderer) anchor(id string) *view.Node { return r.doc.Anchor(id) }

func (r *Renderer) title() {
	r.ensure(Title).Text = "Hangman"
}

func (r *Renderer) button(text string) {
	b := r.ensure(Button)
	b.Text = text
	b.AddClass(ClassButton)
}

func (r *Renderer) message(text string, isError bool) {
	m := r.ensure(Message)
	m.Text = text
	m.SetClass(ClassError, isError)
}

// blanks reconciles one letter cell per position, reusing existing cells.
func (r *Renderer) blanks(letters []string, marker func(letter string) string) {
	b := r.ensure(Blanks)
	b.Inline = true
	kids := b.Children()
	for i, l := range letters {
		var cell *view.Node
		if i < len(kids) {
			cell = kids[i]
		} else {
			cell = view.NewNode("", ClassLetter)
			b.Append(cell)
			kids = b.Children()
		}
		cell.Text = strings.ToUpper(l)
		m := marker(l)
		cell.SetClass(ClassWon, m == ClassWon)
		cell.SetClass(ClassMissed, m == ClassMissed)
	}
	b.Truncate(len(letters))
}

// pieces keeps total piece nodes under the hangman anchor with the first
// visible of them shown. total <= 0 keeps the current piece count.
func (r *Renderer) pieces(total, visible int) {
	h := r.anchor(view.Hangman)
	if total <= 0 {
		total = len(h.Children())
	}
	if visible < 0 {
		visible = 0
	}
	if visible > total {
		visible = total
	}
	for i := len(h.Children()); i < total; i++ {
		h.Append(view.NewNode(fmt.Sprintf("hangman-%d", i), ClassPiece))
	}
	h.Truncate(total)
	for i, p := range h.Children() {
		p.Hidden = i >= visible
	}
}

// VisiblePieces counts the revealed hangman pieces.
func (r *Renderer) VisiblePieces() int {
	n := 0
	for _, p := range r.anchor(view.Hangman).Children() {
		if !p.Hidden {
			n++
		}
	}
	return n
}

// revealed returns the full answer one letter per position, falling back to
// the server's blanks when no answer was sent.
func revealed(g state.GameState) []string {
	if g.Answer == "" {
		return g.WordWithBlanks
	}
	out := make([]string, 0, len(g.Answer))
	for _, c := range g.Answer {
		out = append(out, string(c))
	}
	return out
}

func tally(g state.GameState) string {
	return fmt.Sprintf("Wins: %d Losses: %d", g.Won, g.Lost)
}
