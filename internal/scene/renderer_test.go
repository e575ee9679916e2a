package scene

import (
	"testing"

	"github.com/robalobadob/hangman/internal/state"
	"github.com/robalobadob/hangman/internal/view"
)

func ongoing() state.GameState {
	return state.GameState{
		Status:         state.StatusOngoing,
		WordWithBlanks: []string{"_", "_", "_"},
		GuessesLeft:    6,
		MaxGuesses:     6,
	}
}

func letters(t *testing.T, r *Renderer) []*view.Node {
	t.Helper()
	b, ok := r.Mounted(Blanks)
	if !ok {
		t.Fatal("blanks region not mounted")
	}
	return b.Children()
}

func TestOngoingScene_FreshGame(t *testing.T) {
	r := New(view.NewDocument())
	r.OngoingScene(ongoing())

	cells := letters(t, r)
	if len(cells) != 3 {
		t.Fatalf("letter cells %d, want 3", len(cells))
	}
	for i, c := range cells {
		if c.Text != "_" {
			t.Errorf("cell %d text %q, want _", i, c.Text)
		}
	}
	c, _ := r.Mounted(Counter)
	if c.Text != "6 guesses remaining" {
		t.Errorf("counter %q, want '6 guesses remaining'", c.Text)
	}
	if _, ok := r.Mounted(Message); ok {
		t.Error("message should not be mounted before any guess")
	}
	if r.VisiblePieces() != 0 {
		t.Errorf("visible pieces %d, want 0", r.VisiblePieces())
	}
}

func TestOngoingScene_RerenderDoesNotDuplicate(t *testing.T) {
	doc := view.NewDocument()
	r := New(doc)
	g := ongoing()
	g.LastGuess = "e"
	r.OngoingScene(g)
	counter, _ := r.Mounted(Counter)

	r.OngoingScene(g)
	r.OngoingScene(g)

	if n := doc.Count(string(Counter)); n != 1 {
		t.Errorf("counter nodes %d, want 1", n)
	}
	if n := doc.Count(string(Message)); n != 1 {
		t.Errorf("message nodes %d, want 1", n)
	}
	if again, _ := r.Mounted(Counter); again != counter {
		t.Error("counter was remounted instead of updated in place")
	}
	if got := len(letters(t, r)); got != 3 {
		t.Errorf("letter cells %d, want 3", got)
	}
}

func TestOngoingScene_WrongGuessRevealsOnePiece(t *testing.T) {
	r := New(view.NewDocument())
	r.OngoingScene(ongoing())
	counter, _ := r.Mounted(Counter)

	g := ongoing()
	g.GuessesLeft, g.IncorrectGuesses = 5, 1
	g.LettersGuessed = []string{"z"}
	g.LastGuess = "z"
	for i := 0; i < 3; i++ {
		r.OngoingScene(g)
		if r.VisiblePieces() != 1 {
			t.Fatalf("render %d: visible pieces %d, want 1", i, r.VisiblePieces())
		}
	}
	c, _ := r.Mounted(Counter)
	if c != counter {
		t.Error("counter remounted on text change")
	}
	if c.Text != "5 guesses remaining" {
		t.Errorf("counter %q, want '5 guesses remaining'", c.Text)
	}
	m, _ := r.Mounted(Message)
	if m.Text != "You guessed 'z'" {
		t.Errorf("message %q", m.Text)
	}
	if got := len(r.Document().Anchor(view.Hangman).Children()); got != 6 {
		t.Errorf("piece nodes %d, want 6", got)
	}
}

func TestLostScene_MarksMissedLetters(t *testing.T) {
	r := New(view.NewDocument())
	r.OngoingScene(ongoing())

	g := ongoing()
	g.Status = state.StatusLost
	g.GuessesLeft, g.IncorrectGuesses = 0, 6
	g.Answer = "cat"
	g.LettersLeft = []string{"a", "c", "t"}
	g.Lost = 1
	r.LostScene(g)

	cells := letters(t, r)
	if len(cells) != 3 {
		t.Fatalf("cells %d, want 3", len(cells))
	}
	for i, want := range []string{"C", "A", "T"} {
		if cells[i].Text != want {
			t.Errorf("cell %d %q, want %q", i, cells[i].Text, want)
		}
		if !cells[i].HasClass(ClassMissed) {
			t.Errorf("cell %d missing %q marker", i, ClassMissed)
		}
	}
	if _, ok := r.Mounted(Counter); ok {
		t.Error("counter should be unmounted on the lost scene")
	}
	b, ok := r.Mounted(Button)
	if !ok || b.Text != "Play again?" {
		t.Errorf("button %+v, want 'Play again?'", b)
	}
	m, _ := r.Mounted(Message)
	if m.Text != "You lost!\nWins: 0 Losses: 1" {
		t.Errorf("message %q", m.Text)
	}
	if r.VisiblePieces() != 6 {
		t.Errorf("visible pieces %d, want 6", r.VisiblePieces())
	}
}

func TestLostScene_OnlyHiddenLettersMissed(t *testing.T) {
	r := New(view.NewDocument())
	g := state.GameState{
		Status: state.StatusLost, Answer: "dog", LettersLeft: []string{"o"},
		WordWithBlanks: []string{"d", "_", "g"}, MaxGuesses: 6, IncorrectGuesses: 6,
	}
	r.LostScene(g)
	cells := letters(t, r)
	want := []bool{false, true, false}
	for i, c := range cells {
		if c.HasClass(ClassMissed) != want[i] {
			t.Errorf("cell %d missed=%v, want %v", i, c.HasClass(ClassMissed), want[i])
		}
	}
}

func TestWonScene_AllCorrect(t *testing.T) {
	r := New(view.NewDocument())
	g := state.GameState{
		Status: state.StatusWon, Answer: "ox", WordWithBlanks: []string{"o", "x"},
		MaxGuesses: 10, GuessesLeft: 8, IncorrectGuesses: 2, Won: 4, Lost: 1,
	}
	r.WonScene(g)
	for i, c := range letters(t, r) {
		if !c.HasClass(ClassWon) || c.HasClass(ClassMissed) {
			t.Errorf("cell %d classes %v, want won only", i, c.Classes())
		}
	}
	m, _ := r.Mounted(Message)
	if m.Text != "You won!\nWins: 4 Losses: 1" {
		t.Errorf("message %q", m.Text)
	}
	if r.VisiblePieces() != 2 {
		t.Errorf("visible pieces %d, want 2", r.VisiblePieces())
	}
}

func TestNewGameAfterWin_ClearsMarkersAndShrinksBlanks(t *testing.T) {
	r := New(view.NewDocument())
	r.WonScene(state.GameState{Status: state.StatusWon, Answer: "fourth", MaxGuesses: 10, IncorrectGuesses: 3})
	r.OngoingScene(ongoing())

	cells := letters(t, r)
	if len(cells) != 3 {
		t.Fatalf("cells %d, want 3", len(cells))
	}
	for i, c := range cells {
		if c.HasClass(ClassWon) {
			t.Errorf("cell %d kept won marker", i)
		}
	}
	if _, ok := r.Mounted(Button); ok {
		t.Error("play-again button survived into the new game")
	}
	if r.VisiblePieces() != 0 {
		t.Errorf("visible pieces %d, want 0", r.VisiblePieces())
	}
}

func TestTitleScene(t *testing.T) {
	doc := view.NewDocument()
	r := New(doc)
	r.TitleScene()
	r.TitleScene()

	if doc.Count(string(Button)) != 1 || doc.Count(string(Title)) != 1 {
		t.Errorf("duplicate title/button nodes")
	}
	d, _ := r.Mounted(Directions)
	if len(d.Children()) != 3 {
		t.Errorf("direction lines %d, want 3", len(d.Children()))
	}
	b, _ := r.Mounted(Button)
	if b.Text != "Start Game!" || b.Parent() != doc.Anchor(view.Footer) {
		t.Errorf("button %q under %v", b.Text, b.Parent())
	}
	if r.VisiblePieces() != DefaultPieces {
		t.Errorf("visible pieces %d, want %d", r.VisiblePieces(), DefaultPieces)
	}
}

func TestShowError_KeepsScene(t *testing.T) {
	r := New(view.NewDocument())
	r.OngoingScene(ongoing())
	r.ShowError("You already guessed 'a'")

	m, ok := r.Mounted(Message)
	if !ok || !m.HasClass(ClassError) {
		t.Fatal("error message not mounted with error class")
	}
	if _, ok := r.Mounted(Counter); !ok {
		t.Error("counter lost after showing an error")
	}

	g := ongoing()
	g.LastGuess = "b"
	r.OngoingScene(g)
	if m.HasClass(ClassError) {
		t.Error("error marker survived a successful guess")
	}
}
