package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or versions
// can share one Redis or Mongo backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mindmap:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}

// DiagramKey generates a prefixed key for shared diagrams.
func (k *ScopedKeyer) DiagramKey(id string) string {
	return k.prefix + k.inner.DiagramKey(id)
}
