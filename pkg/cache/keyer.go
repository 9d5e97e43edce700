package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs yield equal keys.
type Keyer interface {
	// LayoutKey identifies a diagram computed from a tree (text plus expand
	// state) under the given options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered format of a diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
	// DiagramKey identifies a diagram shared through the HTTP API.
	DiagramKey(id string) string
}

// LayoutKeyOpts lists every option that changes a layout.
type LayoutKeyOpts struct {
	Direction         string  `json:"direction"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
	LevelMultiplier   float64 `json:"level_multiplier"`
	CenterOffset      float64 `json:"center_offset"`
	Measure           string  `json:"measure"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Padding     float64 `json:"padding"`
	Scale       float64 `json:"scale,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	EmbedFont   bool    `json:"embed_font,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

func (DefaultKeyer) DiagramKey(id string) string {
	return "diagram:" + id
}
