// Package pipeline provides the core chart pipeline for FunnelGraph.
//
// This package implements the complete parse → build → render pipeline
// that is shared by the CLI and the HTTP server. Centralizing it keeps
// behavior consistent across entry points and lets both reuse the same
// caching logic.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Normalize a chart definition into a validated dataset
//  2. Build: Construct the funnel geometry graph from the dataset
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Definition: def,
//	    Formats:    []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funnelgraph/pkg/cache"
	"github.com/matzehuels/funnelgraph/pkg/chartfile"
	"github.com/matzehuels/funnelgraph/pkg/funnel"
)

// Default values shared by the CLI and the HTTP server.
const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = funnel.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = funnel.DefaultHeight

	// DefaultScale is the default raster scale factor for PNG output.
	DefaultScale = 2.0
)

// DefaultStyle is the default band fill style.
const DefaultStyle = StyleSolid

// Style constants for band fills.
const (
	StyleSolid    = "solid"
	StyleGradient = "gradient"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported band fill styles.
var ValidStyles = map[string]bool{
	StyleSolid:    true,
	StyleGradient: true,
}

// ValidGradients is the set of supported gradient directions.
var ValidGradients = map[string]bool{
	"horizontal": true,
	"vertical":   true,
}

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Definition *chartfile.File `json:"definition"`
	Refresh    bool            `json:"refresh,omitempty"`

	// Build options (zero values defer to the definition, then to
	// engine defaults)
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Orientation string  `json:"orientation,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Gradient string   `json:"gradient,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the normalized, validated dataset.
	Dataset funnel.Dataset

	// DatasetHash is the content hash of the normalized dataset.
	DatasetHash string

	// Graph is the funnel geometry built from the dataset.
	Graph *funnel.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Segments    int
	Subsegments int
	ParseTime   time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the normalized dataset came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
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
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: solid, gradient)", style)
	}
	return nil
}

// ValidateGradient checks that a gradient direction is valid.
func ValidateGradient(direction string) error {
	if !ValidGradients[direction] {
		return fmt.Errorf("invalid gradient: %q (must be one of: horizontal, vertical)", direction)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateGradient(o.Gradient); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Definition == nil {
		return fmt.Errorf("definition is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering. Style and
// gradient fall back to the chart definition before engine defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" && o.Definition != nil {
		o.Style = o.Definition.Chart.Style
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Gradient == "" && o.Definition != nil {
		o.Gradient = o.Definition.Chart.Gradient
	}
	if o.Gradient == "" {
		o.Gradient = "horizontal"
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
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return ValidateGradient(o.Gradient)
}

// EffectiveDimensions resolves the frame dimensions: explicit option,
// then chart definition, then engine default.
func (o *Options) EffectiveDimensions() (width, height float64) {
	width, height = o.Width, o.Height
	if o.Definition != nil {
		if width == 0 {
			width = o.Definition.Chart.Width
		}
		if height == 0 {
			height = o.Definition.Chart.Height
		}
	}
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	return width, height
}

// EffectiveOrientation resolves the orientation: explicit option, then
// chart definition, then the engine default (horizontal).
func (o *Options) EffectiveOrientation() (funnel.Orientation, error) {
	raw := o.Orientation
	if raw == "" && o.Definition != nil {
		raw = o.Definition.Chart.Orientation
	}
	return funnel.ParseOrientation(raw)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	width, height := o.EffectiveDimensions()
	orient, _ := o.EffectiveOrientation()
	return cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Gradient:    o.Gradient,
		Orientation: string(orient),
		Width:       width,
		Height:      height,
		Labels:      o.Labels,
	}
}
