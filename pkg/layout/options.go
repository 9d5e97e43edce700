package layout

import (
	"strings"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Direction selects which side(s) of the root branches grow on.
type Direction string

// Supported directions.
const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionBoth  Direction = "both"
)

// Directions lists every supported direction.
var Directions = []Direction{DirectionBoth, DirectionLeft, DirectionRight}

// Default option values.
const (
	DefaultDirection              = DirectionBoth
	DefaultHorizontalSpacing      = 140.0
	DefaultVerticalSpacing        = 18.0
	DefaultLevelSpacingMultiplier = 1.0
)

// ParseDirection parses a direction name, case-insensitively. The empty
// string selects [DefaultDirection].
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DefaultDirection, nil
	case DirectionLeft, DirectionRight, DirectionBoth:
		return d, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q (want left, right or both)", s)
	}
}

// Options configures [Compute].
//
// A zero spacing means "use the default": [Options.SetDefaults] and Compute
// replace a zero HorizontalSpacing or VerticalSpacing with
// [DefaultHorizontalSpacing] or [DefaultVerticalSpacing]. Siblings whose
// slots should touch need a small positive VerticalSpacing instead.
type Options struct {
	Direction         Direction `json:"direction"`
	HorizontalSpacing float64   `json:"horizontal_spacing"`
	VerticalSpacing   float64   `json:"vertical_spacing"`

	// LevelSpacingMultiplier is accepted and carried through serialization
	// but does not change placement yet.
	LevelSpacingMultiplier float64 `json:"level_spacing_multiplier"`

	// CenterOffset shifts the root horizontally.
	CenterOffset float64 `json:"center_offset"`
}

// DefaultOptions returns options with every field at its default.
func DefaultOptions() Options {
	o := Options{}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields with their defaults and normalizes
// Direction. An unrecognized direction falls back to [DefaultDirection].
// CenterOffset has no default other than zero.
func (o *Options) SetDefaults() {
	if d, err := ParseDirection(string(o.Direction)); err == nil {
		o.Direction = d
	} else {
		o.Direction = DefaultDirection
	}
	if o.HorizontalSpacing == 0 {
		o.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
	if o.LevelSpacingMultiplier == 0 {
		o.LevelSpacingMultiplier = DefaultLevelSpacingMultiplier
	}
}

// Validate checks option values. Call it on caller-supplied options before
// [Compute]; Compute itself does not fail.
func (o Options) Validate() error {
	if o.Direction != "" {
		if _, err := ParseDirection(string(o.Direction)); err != nil {
			return err
		}
	}
	if o.HorizontalSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "horizontal spacing must not be negative, got %v", o.HorizontalSpacing)
	}
	if o.VerticalSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "vertical spacing must not be negative, got %v", o.VerticalSpacing)
	}
	if o.LevelSpacingMultiplier < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "level spacing multiplier must not be negative, got %v", o.LevelSpacingMultiplier)
	}
	return nil
}
