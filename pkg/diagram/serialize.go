package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram serializes a Diagram to pretty-printed JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDiagram deserializes JSON bytes into a Diagram.
// Validates that exactly one root exists and that edges reference known nodes.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	if err := Validate(d); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

// Validate checks the structural invariants of a Diagram.
func Validate(d Diagram) error {
	if len(d.Nodes) == 0 {
		return fmt.Errorf("diagram must contain nodes")
	}
	ids := make(map[string]bool, len(d.Nodes))
	roots := 0
	for _, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node without id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
		if n.IsRoot() {
			roots++
		}
	}
	if roots != 1 {
		return fmt.Errorf("diagram must have exactly one root, found %d", roots)
	}
	for _, n := range d.Nodes {
		if !n.IsRoot() && !ids[n.ParentID] {
			return fmt.Errorf("node %q references unknown parent %q", n.ID, n.ParentID)
		}
	}
	for _, e := range d.Edges {
		if !ids[e.From] || !ids[e.To] {
			return fmt.Errorf("edge %s -> %s references unknown node", e.From, e.To)
		}
	}
	return nil
}

// WriteDiagram writes a Diagram as JSON to an io.Writer.
func WriteDiagram(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDiagram decodes and validates a JSON diagram from an io.Reader.
func ReadDiagram(r io.Reader) (Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Diagram{}, fmt.Errorf("read: %w", err)
	}
	return UnmarshalDiagram(data)
}

// WriteDiagramFile writes a Diagram to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(d Diagram, path string) error {
	data, err := MarshalDiagram(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDiagramFile reads a Diagram from a JSON file.
func ReadDiagramFile(path string) (Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDiagram(data)
}
