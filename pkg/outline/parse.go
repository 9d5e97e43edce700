package outline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bulletMarkers are the interchangeable list bullet characters.
const bulletMarkers = "-*"

var (
	// A heading is one to six '#' followed by whitespace; "#######" is plain text.
	headingRe      = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	trailingDashRe = regexp.MustCompile(`[\s\-–—]*[-–—]+\s*$`)
)

// stackEntry pairs a node with the level it was pushed at.
type stackEntry struct {
	node  *Node
	level int
}

// parser owns the ID counter for a single Parse call.
type parser struct {
	next int
}

func (p *parser) newNode(text string, level int) *Node {
	p.next++
	return &Node{ID: fmt.Sprintf("node-%d", p.next), Text: text, Level: level}
}

// Parse converts outline text into a tree rooted at the returned node.
//
// Parse never fails. Text without any recognizable entry yields a root
// labelled [DefaultRootText] with no children. Calling Parse twice on the same
// text yields trees with identical labels, depths and structure.
func Parse(text string) *Node {
	p := &parser{}
	return p.parse(text)
}

func (p *parser) parse(text string) *Node {
	root := newRoot()
	lines := splitLines(text)

	start := 0
	for i, line := range lines {
		if _, label, ok := matchHeading(line); ok {
			if title := stripDecoration(label); title != "" {
				root.Text = title
			}
			start = i + 1
			break
		}
	}

	stack := []stackEntry{{node: root, level: 0}}
	base := 0

	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		node, ok := p.classify(line, base)
		if !ok {
			continue
		}
		if node.Level > 0 && isHeadingLine(line) {
			base = node.Level
		}

		for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		node.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: node.Level})
	}
	return root
}

// classify turns one non-blank line into a node, or reports false when the
// line carries no entry.
func (p *parser) classify(line string, base int) (*Node, bool) {
	if level, label, ok := matchHeading(line); ok {
		return p.newNode(label, level), true
	}

	prefix, rest := splitIndent(line)
	indent := indentLevel(prefix)

	if label, ok := matchBullet(rest); ok {
		return p.newNode(label, base+indent+1), true
	}
	if prefix != "" && !isBareMarker(rest) {
		if label := strings.TrimSpace(rest); label != "" {
			return p.newNode(label, base+indent), true
		}
	}
	return nil, false
}

// matchHeading reports the marker count and trimmed label of a heading line.
func matchHeading(line string) (int, string, bool) {
	m := headingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, "", false
	}
	label := strings.TrimSpace(m[2])
	if label == "" {
		return 0, "", false
	}
	return len(m[1]), label, true
}

func isHeadingLine(line string) bool {
	_, _, ok := matchHeading(line)
	return ok
}

// matchBullet reports the label of a line (already stripped of indentation)
// that starts with a single bullet marker followed by whitespace.
func matchBullet(rest string) (string, bool) {
	if len(rest) < 2 || !strings.ContainsRune(bulletMarkers, rune(rest[0])) {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(rest[1:])
	if !unicode.IsSpace(r) {
		return "", false
	}
	label := strings.TrimSpace(rest[1+size:])
	return label, label != ""
}

// isBareMarker reports whether rest is a bullet or heading marker with no label.
func isBareMarker(rest string) bool {
	rest = strings.TrimSpace(rest)
	if len(rest) == 1 && strings.ContainsRune(bulletMarkers, rune(rest[0])) {
		return true
	}
	return rest != "" && strings.Trim(rest, "#") == ""
}

// splitIndent separates the leading whitespace of line from the remainder.
func splitIndent(line string) (string, string) {
	end := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
	if end < 0 {
		return line, ""
	}
	return line[:end], line[end:]
}

// indentLevel counts one nesting step per tab and per two other whitespace runes,
// so a tab weighs the same as two spaces.
func indentLevel(prefix string) int {
	tabs, others := 0, 0
	for _, r := range prefix {
		if r == '\t' {
			tabs++
		} else {
			others++
		}
	}
	return tabs + others/2
}

// stripDecoration removes trailing decorative dashes from a root title.
func stripDecoration(label string) string {
	return strings.TrimSpace(trailingDashRe.ReplaceAllString(label, ""))
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
