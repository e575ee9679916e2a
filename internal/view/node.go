// internal/view/node.go
//
// A small DOM-like tree: nodes addressable by id and class, with text,
// visibility, and ordered children. The host document pre-creates the
// anchors (header, content, footer, hangman); everything else is appended,
// updated, or removed within them.

package view

import "sort"

// Anchor ids created by NewDocument.
const (
	Header  = "header"
	Content = "content"
	Footer  = "footer"
	Hangman = "hangman"
)

// Node is one element of the tree.
type Node struct {
	ID     string
	Text   string
	Hidden bool
	// Inline lays children out left to right instead of top to bottom.
	Inline bool

	classes  map[string]struct{}
	parent   *Node
	children []*Node
}

// NewNode returns a detached node.
func NewNode(id string, classes ...string) *Node {
	n := &Node{ID: id}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// AddClass adds c; adding twice is harmless.
func (n *Node) AddClass(c string) {
	if n.classes == nil {
		n.classes = make(map[string]struct{})
	}
	n.classes[c] = struct{}{}
}

// RemoveClass removes c if present.
func (n *Node) RemoveClass(c string) { delete(n.classes, c) }

// SetClass adds or removes c.
func (n *Node) SetClass(c string, on bool) {
	if on {
		n.AddClass(c)
	} else {
		n.RemoveClass(c)
	}
}

// HasClass reports whether c is set.
func (n *Node) HasClass(c string) bool {
	_, ok := n.classes[c]
	return ok
}

// Classes returns the class list, sorted.
func (n *Node) Classes() []string {
	out := make([]string, 0, len(n.classes))
	for c := range n.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Parent returns the containing node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Append mounts child as the last child of n, detaching it from any previous parent.
func (n *Node) Append(child *Node) {
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Detach removes n from its parent. Detaching a detached node is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Truncate keeps the first k children and detaches the rest.
func (n *Node) Truncate(k int) {
	if k < 0 {
		k = 0
	}
	if k >= len(n.children) {
		return
	}
	for _, c := range n.children[k:] {
		c.parent = nil
	}
	n.children = n.children[:k]
}

// Attached reports whether n hangs off root.
func (n *Node) Attached(root *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == root {
			return true
		}
	}
	return false
}

// Find returns the first node with id in the subtree rooted at n (depth first).
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every node in the subtree carrying class c, in document order.
func (n *Node) FindAll(c string) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.HasClass(c) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants in document order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
