package errors

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxOutlineBytes caps the size of outline text accepted from callers.
const MaxOutlineBytes = 1 << 20

// ValidateOutline checks that outline text is safe to parse.
// The parser itself accepts anything; this guards the CLI and API boundaries:
//   - Valid UTF-8
//   - No null bytes
//   - At most MaxOutlineBytes
//
// Empty text is valid and yields the default single-node tree.
func ValidateOutline(text string) error {
	if len(text) > MaxOutlineBytes {
		return New(ErrCodeInvalidInput, "outline too large (max %d bytes)", MaxOutlineBytes)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "outline is not valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "outline contains null bytes")
	}
	return nil
}

// diagramIDRegex matches share IDs handed out by the server (UUIDs).
var diagramIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateDiagramID validates a diagram share ID taken from a URL path.
func ValidateDiagramID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "diagram ID cannot be empty")
	}
	if !diagramIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid diagram ID: %q", id)
	}
	return nil
}
