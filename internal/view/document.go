package view

// Document is the host page: a root holding the four anchors.
type Document struct {
	Root *Node
}

// NewDocument builds the static layout every scene renders into.
func NewDocument() *Document {
	root := NewNode("root")
	for _, id := range []string{Header, Content, Footer, Hangman} {
		root.Append(NewNode(id))
	}
	return &Document{Root: root}
}

// Anchor returns one of the pre-rendered containers.
func (d *Document) Anchor(id string) *Node {
	for _, c := range d.Root.children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Count returns how many nodes in the document carry id.
func (d *Document) Count(id string) int {
	n := 0
	d.Root.Walk(func(x *Node) bool {
		if x.ID == id {
			n++
		}
		return true
	})
	return n
}
