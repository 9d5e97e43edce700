package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "mindmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded from --config (or the default path) before any
	// command runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mindmap turns outline text into mind map diagrams",
		Long: `Mindmap is a CLI tool that reads Markdown-style outlines (headings and
nested bullet lists) and lays them out as radial mind maps, rendered to SVG,
PNG, PDF, JSON, DOT or HTML.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
			observability.SetCacheHooks(observability.LogCacheHooks{Logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, c.Config.CacheConfig())
	if err != nil {
		// A broken cache never blocks rendering.
		c.Logger.Warn("cache disabled", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config file.
// Command flags are bound to the returned struct and override these values.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		ExpandAll:         cfg.Layout.ExpandAll,
		ExpandDepth:       cfg.Layout.ExpandDepth,
		Direction:         cfg.Layout.Direction,
		HorizontalSpacing: cfg.Layout.HorizontalSpacing,
		VerticalSpacing:   cfg.Layout.VerticalSpacing,
		CenterOffset:      cfg.Layout.CenterOffset,
		Measure:           cfg.Layout.Measure,
		Formats:           cfg.Render.Formats,
		Style:             cfg.Render.Style,
		Padding:           cfg.Render.Padding,
		Scale:             cfg.Render.Scale,
		Logger:            c.Logger,
	}
}

// layoutFlags holds flags shared by every command that lays out a tree.
// Zero values mean "use the config file".
type layoutFlags struct {
	title       string
	expandAll   bool
	expandDepth int
	direction   string
	hSpacing    float64
	vSpacing    float64
	offset      float64
	measure     string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "override the root label")
	cmd.Flags().BoolVar(&f.expandAll, "expand-all", false, "expand every node")
	cmd.Flags().IntVar(&f.expandDepth, "expand-depth", 0, "expand nodes above this depth")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "branch direction: both (default), left, right")
	cmd.Flags().Float64Var(&f.hSpacing, "horizontal-spacing", 0, "horizontal gap between levels")
	cmd.Flags().Float64Var(&f.vSpacing, "vertical-spacing", 0, "vertical gap between siblings")
	cmd.Flags().Float64Var(&f.offset, "center-offset", 0, "horizontal shift of the root")
	cmd.Flags().StringVar(&f.measure, "measure", "", "text measurement: heuristic (default), font")
}

// apply copies the flags that were set onto opts.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	if f.title != "" {
		opts.Title = f.title
	}
	if f.expandAll {
		opts.ExpandAll = true
	}
	if f.expandDepth > 0 {
		opts.ExpandDepth = f.expandDepth
	}
	if f.direction != "" {
		opts.Direction = f.direction
	}
	if f.hSpacing != 0 {
		opts.HorizontalSpacing = f.hSpacing
	}
	if f.vSpacing != 0 {
		opts.VerticalSpacing = f.vSpacing
	}
	if f.offset != 0 {
		opts.CenterOffset = f.offset
	}
	if f.measure != "" {
		opts.Measure = f.measure
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; stdin maps to "mindmap".
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if diagram.IsValidFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to.
func outputPath(output, input, format string, formats int) string {
	if output != "" && formats == 1 && filepath.Ext(output) != "" {
		return output
	}
	return fmt.Sprintf("%s.%s", basePath(output, input), format)
}
