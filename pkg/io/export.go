package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/mindmap/pkg/outline"
)

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportMarkdown writes the tree under root to path as outline text.
func ExportMarkdown(root *outline.Node, path string) error {
	return WriteFile(path, []byte(outline.Markdown(root)))
}
