package sink

import "github.com/matzehuels/mindmap/pkg/diagram"

// RenderJSON renders d in the diagram wire format.
func RenderJSON(d diagram.Diagram) ([]byte, error) {
	return diagram.MarshalDiagram(d)
}
