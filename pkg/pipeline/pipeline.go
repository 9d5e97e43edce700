// Package pipeline provides the outline-to-artifact pipeline for mindmap.
//
// This package implements the complete parse → layout → render pipeline that
// is used by the CLI and the HTTP API. By centralizing this logic, both entry
// points apply the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build the outline tree and apply the requested expand state
//  2. Layout: Estimate node sizes and place every visible node
//  3. Render: Generate output in various formats (SVG, JSON, PDF, PNG, DOT, HTML)
//
// The parser, estimator and layout engine are pure and never touch a cache;
// the [Runner] caches layouts and artifacts around them, keyed by content
// hashes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Outline: text,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	root := pipeline.Parse(opts)
//	d, err := runner.Layout(ctx, root, opts)
//	artifacts, err := runner.Render(ctx, d, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = diagram.StyleSimple

	// DefaultPadding is the margin around rendered diagrams, in pixels.
	DefaultPadding = 40.0

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Measure modes.
const (
	MeasureHeuristic = "heuristic"
	MeasureFont      = "font"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Outline string `json:"outline"`
	// Title replaces the root label when set.
	Title string `json:"title,omitempty"`

	// Expand options, applied in order: ExpandAll or ExpandDepth, then ExpandState.
	ExpandAll   bool `json:"expand_all,omitempty"`
	ExpandDepth int  `json:"expand_depth,omitempty"`
	// ExpandState is keyed by label path (see outline.Node.PathState) so it
	// survives edits to the outline.
	ExpandState outline.State `json:"expand_state,omitempty"`

	// Layout options
	Direction         string  `json:"direction,omitempty"`
	HorizontalSpacing float64 `json:"horizontal_spacing,omitempty"`
	VerticalSpacing   float64 `json:"vertical_spacing,omitempty"`
	CenterOffset      float64 `json:"center_offset,omitempty"`
	Measure           string  `json:"measure,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Padding     float64  `json:"padding,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	EmbedFont   bool     `json:"embed_font,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed outline with its expand state applied.
	Tree *outline.Node

	// TreeHash is the content hash of the tree, expand state included.
	TreeHash string

	// Diagram is the laid-out mind map.
	Diagram diagram.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	VisibleCount int
	MaxDepth     int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the diagram came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !diagram.IsValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, pdf, png, dot, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !diagram.IsValidStyle(style) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, dark)", style)
	}
	return nil
}

// ValidateMeasure checks that a measure mode is valid.
func ValidateMeasure(m string) error {
	if m != MeasureHeuristic && m != MeasureFont {
		return errors.New(errors.ErrCodeInvalidOption, "invalid measure: %q (must be one of: heuristic, font)", m)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the outline text and expand options.
func (o *Options) ValidateForParse() error {
	if err := errors.ValidateOutline(o.Outline); err != nil {
		return err
	}
	if o.ExpandDepth < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "expand depth must not be negative, got %d", o.ExpandDepth)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Direction == "" {
		o.Direction = string(layout.DefaultDirection)
	}
	if o.HorizontalSpacing == 0 {
		o.HorizontalSpacing = layout.DefaultHorizontalSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = layout.DefaultVerticalSpacing
	}
	if o.Measure == "" {
		o.Measure = MeasureHeuristic
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	d, err := layout.ParseDirection(o.Direction)
	if err != nil {
		return err
	}
	o.Direction = string(d)
	if err := o.LayoutOptions().Validate(); err != nil {
		return err
	}
	return ValidateMeasure(o.Measure)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{diagram.FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Padding < 0 || o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "padding and scale must not be negative")
	}
	return ValidateStyle(o.Style)
}

// LayoutOptions returns the layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Direction:         layout.Direction(o.Direction),
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		CenterOffset:      o.CenterOffset,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	lo := o.LayoutOptions()
	lo.SetDefaults()
	return cache.LayoutKeyOpts{
		Direction:         string(lo.Direction),
		HorizontalSpacing: lo.HorizontalSpacing,
		VerticalSpacing:   lo.VerticalSpacing,
		LevelMultiplier:   lo.LevelSpacingMultiplier,
		CenterOffset:      lo.CenterOffset,
		Measure:           o.Measure,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect format are left zero so they share entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case diagram.FormatSVG:
		k.Style, k.Padding, k.Interactive, k.EmbedFont = o.Style, o.Padding, o.Interactive, o.EmbedFont
	case diagram.FormatPDF:
		k.Style, k.Padding = o.Style, o.Padding
	case diagram.FormatPNG:
		k.Style, k.Padding, k.Scale = o.Style, o.Padding, o.Scale
	}
	return k
}
