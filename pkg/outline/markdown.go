package outline

import "strings"

// Markdown renders the tree as canonical outline text: the root as a level-one
// heading followed by a "-" list indented two spaces per depth.
//
// Parsing the result yields a tree with the same labels, depths and structure.
// Labels that start with a bullet or heading marker, or that end in dashes on
// the root, may not survive the round trip unchanged.
func Markdown(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(root.Text)
	b.WriteByte('\n')
	root.Walk(func(c *Node) bool {
		if c == root {
			return true
		}
		b.WriteString(strings.Repeat("  ", c.Depth-root.Depth-1))
		b.WriteString("- ")
		b.WriteString(c.Text)
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
