package pipeline

import (
	"fmt"

	"github.com/matzehuels/funnelgraph/pkg/funnel"
	"github.com/matzehuels/funnelgraph/pkg/render"
)

// RenderArtifacts renders the graph into every requested format.
// PNG and PDF are produced from the SVG rendering, so the SVG is built
// once and shared.
func RenderArtifacts(g *funnel.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	needSVG := false
	for _, f := range opts.Formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			needSVG = true
		}
	}
	if needSVG {
		svg = render.RenderSVG(g, svgOptions(opts)...)
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svg
		case FormatJSON:
			data, err := render.RenderJSON(g, jsonOptions(opts)...)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := render.ToPNG(svg, opts.Scale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(svg)
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = data
		}
	}

	return artifacts, nil
}

// svgOptions translates pipeline options into SVG renderer options.
func svgOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption

	if opts.Style == StyleGradient {
		svgOpts = append(svgOpts, render.WithStyle(render.Gradient{Direction: opts.Gradient}))
	}
	if opts.Definition != nil {
		if colors := opts.Definition.Chart.Colors; len(colors) > 0 {
			svgOpts = append(svgOpts, render.WithColors(colors))
		}
		if subLabels := opts.Definition.Data.SubLabels; len(subLabels) > 0 {
			svgOpts = append(svgOpts, render.WithSubLabels(subLabels))
		}
		if opts.Labels {
			svgOpts = append(svgOpts, render.WithLabels(opts.Definition.Data.Labels))
		}
	}
	return svgOpts
}

// jsonOptions translates pipeline options into JSON export options.
func jsonOptions(opts Options) []render.JSONOption {
	var jsonOpts []render.JSONOption
	if opts.Definition != nil {
		if labels := opts.Definition.Data.Labels; len(labels) > 0 {
			jsonOpts = append(jsonOpts, render.WithJSONLabels(labels))
		}
		if subLabels := opts.Definition.Data.SubLabels; len(subLabels) > 0 {
			jsonOpts = append(jsonOpts, render.WithJSONSubLabels(subLabels))
		}
	}
	return jsonOpts
}
