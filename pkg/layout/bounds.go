package layout

// Bounds is the axis-aligned box enclosing a set of positioned nodes.
type Bounds struct {
	MinX   float64 `json:"min_x"`
	MaxX   float64 `json:"max_x"`
	MinY   float64 `json:"min_y"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ComputeBounds returns the box enclosing every node's full extent. An empty
// map yields the zero Bounds.
func ComputeBounds(pos Positions) Bounds {
	if len(pos) == 0 {
		return Bounds{}
	}
	first := true
	var b Bounds
	for _, p := range pos {
		if first {
			b = Bounds{MinX: p.Left(), MaxX: p.Right(), MinY: p.Top(), MaxY: p.Bottom()}
			first = false
			continue
		}
		b.MinX = min(b.MinX, p.Left())
		b.MaxX = max(b.MaxX, p.Right())
		b.MinY = min(b.MinY, p.Top())
		b.MaxY = max(b.MaxY, p.Bottom())
	}
	b.Width = b.MaxX - b.MinX
	b.Height = b.MaxY - b.MinY
	return b
}

// Pad grows the box by margin on every side.
func (b Bounds) Pad(margin float64) Bounds {
	return Bounds{
		MinX:   b.MinX - margin,
		MaxX:   b.MaxX + margin,
		MinY:   b.MinY - margin,
		MaxY:   b.MaxY + margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}
