package outline

import (
	"fmt"
	"strings"
)

// DefaultRootText is the root label used when the text contains no heading.
const DefaultRootText = "Central Topic"

// RootID is the identifier every parse assigns to the root node.
const RootID = "node-0"

// Node is a single entry of a parsed outline.
//
// Children are kept in source order. Expanded is owned by the caller: Parse
// sets it for the root only, and the layout engine skips the descendants of
// any node where it is false.
type Node struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Depth    int     `json:"depth"`
	Level    int     `json:"level"`
	Children []*Node `json:"children,omitempty"`
	Expanded bool    `json:"expanded"`
}

// newRoot returns the default single-node tree.
func newRoot() *Node {
	return &Node{ID: RootID, Text: DefaultRootText, Expanded: true}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Nodes returns every node of the tree in pre-order, regardless of expand state.
func (n *Node) Nodes() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Find returns the node with the given ID.
func (n *Node) Find(id string) (*Node, bool) {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// Visible returns the nodes reachable from n through expanded ancestors,
// n included, in pre-order.
func (n *Node) Visible() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		out = append(out, c)
		return c.Expanded
	})
	return out
}

// VisibleCount returns len(n.Visible()) without allocating the slice.
func (n *Node) VisibleCount() int {
	count := 0
	n.Walk(func(c *Node) bool {
		count++
		return c.Expanded
	})
	return count
}

// MaxDepth returns the deepest Depth in the tree.
func (n *Node) MaxDepth() int {
	depth := 0
	n.Walk(func(c *Node) bool {
		depth = max(depth, c.Depth)
		return true
	})
	return depth
}

// String renders the tree as an indented list, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		marker := " "
		switch {
		case c.HasChildren() && c.Expanded:
			marker = "-"
		case c.HasChildren():
			marker = "+"
		}
		fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat("  ", c.Depth), marker, c.Text)
		return true
	})
	return b.String()
}
