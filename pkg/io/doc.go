// Package io reads outlines from files and HTML documents and writes
// rendered artifacts to disk.
//
// # Import
//
// [ImportOutline] reads outline text from a path. "-" reads standard input,
// and files ending in .html or .htm are converted with [ImportHTML] first:
//
//	text, err := io.ImportOutline("notes.md")
//	root := outline.Parse(text)
//
// [ImportHTML] keeps the parts of a document the outline format can express:
// headings h1 through h6 become "#" headings and nested ul/ol lists become
// indented "-" items. Paragraphs, tables and scripts are dropped.
//
// Every import is checked with [errors.ValidateOutline], so callers receive
// INVALID_INPUT for binary or oversized files and FILE_NOT_FOUND for missing
// paths.
//
// # Export
//
// [WriteFile] writes an artifact, creating parent directories as needed.
// [ExportMarkdown] writes a tree back out in canonical outline form.
//
// [errors.ValidateOutline]: github.com/matzehuels/mindmap/pkg/errors
package io
