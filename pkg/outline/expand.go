package outline

import "strings"

// State maps node IDs to their expanded flag.
type State map[string]bool

// pathSep joins labels in a [Node.PathState] key.
const pathSep = "/"

// ExpandAll marks every node with children as expanded. Leaves keep their flag.
func (n *Node) ExpandAll() {
	n.Walk(func(c *Node) bool {
		if c.HasChildren() {
			c.Expanded = true
		}
		return true
	})
}

// CollapseAll collapses every node below n. The node itself stays expanded so
// its direct children remain visible.
func (n *Node) CollapseAll() {
	n.Walk(func(c *Node) bool {
		c.Expanded = c == n
		return true
	})
}

// ExpandToDepth expands nodes with children whose Depth is below depth and
// collapses the rest. ExpandToDepth(1) shows the root and its children only.
func (n *Node) ExpandToDepth(depth int) {
	n.Walk(func(c *Node) bool {
		c.Expanded = c == n || (c.HasChildren() && c.Depth < depth)
		return true
	})
}

// Toggle flips the expanded flag of the node with the given ID and returns the
// new value. Unknown IDs are ignored and report false.
func (n *Node) Toggle(id string) bool {
	c, ok := n.Find(id)
	if !ok {
		return false
	}
	c.Expanded = !c.Expanded
	return c.Expanded
}

// State snapshots the expanded flag of every node by ID.
func (n *Node) State() State {
	s := make(State)
	n.Walk(func(c *Node) bool {
		s[c.ID] = c.Expanded
		return true
	})
	return s
}

// ApplyState copies flags from s onto matching nodes. Nodes absent from s keep
// their current flag.
func (n *Node) ApplyState(s State) {
	if len(s) == 0 {
		return
	}
	n.Walk(func(c *Node) bool {
		if v, ok := s[c.ID]; ok {
			c.Expanded = v
		}
		return true
	})
}

// PathState snapshots expanded flags keyed by label path, for example
// "Topic/A/A1". Unlike IDs, label paths survive edits elsewhere in the text.
// Duplicate sibling labels share a key; the last one visited wins.
func (n *Node) PathState() State {
	s := make(State)
	n.walkPaths(func(path string, c *Node) {
		s[path] = c.Expanded
	})
	return s
}

// ApplyPathState copies flags from a [Node.PathState] snapshot onto the nodes
// whose label path still exists.
func (n *Node) ApplyPathState(s State) {
	if len(s) == 0 {
		return
	}
	n.walkPaths(func(path string, c *Node) {
		if v, ok := s[path]; ok {
			c.Expanded = v
		}
	})
}

func (n *Node) walkPaths(fn func(string, *Node)) {
	if n == nil {
		return
	}
	type entry struct {
		node *Node
		path string
	}
	stack := []entry{{n, escapePath(n.Text)}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(e.path, e.node)
		for i := len(e.node.Children) - 1; i >= 0; i-- {
			c := e.node.Children[i]
			stack = append(stack, entry{c, e.path + pathSep + escapePath(c.Text)})
		}
	}
}

func escapePath(label string) string {
	return strings.ReplaceAll(label, pathSep, `\/`)
}
