// Package outline turns loosely structured outline text into a rooted, ordered tree.
//
// # Overview
//
// Three authoring conventions are accepted and may be mixed within one document:
//
//   - Markdown headings: "# Title", "## Section", up to six markers
//   - Bullet lists: "- item" or "* item", nested by indentation
//   - Bare indentation: plain text indented under the previous entry
//
// All three funnel into a single integer level per line, and a stack of
// (node, level) pairs decides the parent of every new node. There is no grammar
// and no failure mode: [Parse] always returns a tree, falling back to a single
// "Central Topic" root for empty or unrecognized input.
//
// # Root Selection
//
// The first heading line becomes the root label and produces no node of its own.
// Every later heading produces a node at its marker level, and re-anchors the
// depth of the list and indentation lines that follow it.
//
//	root := outline.Parse("# Topic\n## A\n- detail\n## B")
//	fmt.Println(root.Text)               // Topic
//	fmt.Println(len(root.Children))      // 2
//	fmt.Println(root.Children[0].Children[0].Text) // detail
//
// # Identity and Expand State
//
// Node IDs are sequential tokens ("node-0" for the root) owned by a single
// [Parse] call. They are stable for unchanged text but not across edits, so
// callers that want to carry expand/collapse flags across re-parses should use
// [Node.PathState] and [Node.ApplyPathState], which key flags by label path.
//
// After parsing only the root is expanded. [Node.ExpandAll], [Node.ExpandToDepth]
// and [Node.Toggle] adjust the flags that the layout engine reads.
package outline
