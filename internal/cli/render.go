package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelgraph/pkg/cache"
	"github.com/matzehuels/funnelgraph/pkg/chartfile"
	"github.com/matzehuels/funnelgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple formats)
	formats     []string // output formats: "svg", "json", "pdf", "png"
	width       float64  // frame width in pixels
	height      float64  // frame height in pixels
	orientation string   // "horizontal" or "vertical"
	style       string   // "solid" or "gradient"
	gradient    string   // gradient direction
	labels      bool     // render segment labels and percentages
	scale       float64  // raster scale factor for PNG
	refresh     bool     // bypass the cache
	noCache     bool     // disable the cache entirely
}

// newRenderCmd creates the render command for generating chart files.
// It reads a TOML or JSON chart definition and writes one output file
// per requested format.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart definition to SVG(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default from chart file)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default from chart file)")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "chart orientation: horizontal (default), vertical")
	cmd.Flags().StringVar(&opts.style, "style", "", "band style: solid (default), gradient")
	cmd.Flags().StringVar(&opts.gradient, "gradient", "", "gradient direction: horizontal (default), vertical")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "render segment labels and percentages")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., chart.svg, chart.json).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the chart definition, runs the pipeline, and writes
// one file per requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	def, err := chartfile.Load(input)
	if err != nil {
		return err
	}

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Definition:  def,
		Width:       opts.width,
		Height:      opts.height,
		Orientation: opts.orientation,
		Formats:     opts.formats,
		Style:       opts.style,
		Gradient:    opts.gradient,
		Labels:      opts.labels,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d segments", result.Stats.Segments))
	printStats(result.Stats.Segments, result.Stats.Subsegments, result.CacheInfo.RenderHit)
	return nil
}

// newRunner builds a pipeline runner backed by the local file cache,
// or with caching disabled.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	logger := loggerFromContext(ctx)
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, logger), nil
	}

	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return pipeline.NewRunner(fc, nil, logger), nil
}
