// Package render turns funnel geometry into output artifacts.
//
// The SVG sink is the primary renderer; JSON exports the raw geometry for
// external renderers, and PNG/PDF are produced from the SVG via
// rsvg-convert. All sinks consume the pure geometry from pkg/funnel and
// own every presentation concern: colors, gradients, labels, and element
// structure.
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/funnelgraph/pkg/funnel"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	colors     []string
	labels     []string
	subLabels  []string
	showLabels bool
}

// WithStyle sets the band fill style (default Solid).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithColors sets the per-band fill colors.
func WithColors(colors []string) SVGOption { return func(r *svgRenderer) { r.colors = colors } }

// WithLabels enables segment labels and percentage text.
func WithLabels(labels []string) SVGOption {
	return func(r *svgRenderer) { r.labels = labels; r.showLabels = true }
}

// WithSubLabels sets the per-band labels for two-dimensional funnels.
func WithSubLabels(subLabels []string) SVGOption {
	return func(r *svgRenderer) { r.subLabels = subLabels }
}

// RenderSVG renders the graph as a standalone SVG document. One <path>
// is emitted per stacked band; labels and percentages are optional
// overlays placed at segment midpoints.
func RenderSVG(g *funnel.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{style: Solid{}}
	for _, opt := range opts {
		opt(&r)
	}

	bands := buildBands(g, &r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.1f %.1f\" width=\"%.0f\" height=\"%.0f\">\n",
		g.Width(), g.Height(), g.Width(), g.Height())

	r.style.RenderDefs(&buf, bands)
	for _, b := range bands {
		r.style.RenderBand(&buf, b)
	}
	if r.showLabels {
		renderLabels(&buf, g, r.labels)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBands(g *funnel.Graph, r *svgRenderer) []Band {
	outlines := g.Outlines()
	bands := make([]Band, len(outlines))
	for k, o := range outlines {
		bands[k] = Band{
			Index: k,
			Path:  o.Path(),
			Color: colorFor(r.colors, k),
		}
		if k < len(r.subLabels) {
			bands[k].Label = r.subLabels[k]
		}
	}
	return bands
}

// renderLabels writes one label group per segment, centered on the
// segment's main-axis span.
func renderLabels(buf *bytes.Buffer, g *funnel.Graph, labels []string) {
	x := g.MainAxisPoints()
	pct := g.Percentages()

	buf.WriteString("  <g class=\"labels\" font-family=\"sans-serif\" font-size=\"14\" fill=\"#444444\">\n")
	for i := 0; i < g.SegmentCount(); i++ {
		mid := (x[i] + x[i+1]) / 2
		lx, ly := labelAnchor(g, mid)

		text := fmt.Sprintf("%d%%", pct[i])
		if i < len(labels) && labels[i] != "" {
			text = fmt.Sprintf("%s %d%%", labels[i], pct[i])
		}
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
			lx, ly, escapeText(text))
	}
	buf.WriteString("  </g>\n")
}

// labelAnchor places a label at the segment's main-axis midpoint, offset
// a fixed distance from the frame's leading cross-axis edge.
func labelAnchor(g *funnel.Graph, mid float64) (x, y float64) {
	const inset = 20.0
	if g.Orientation() == funnel.Vertical {
		return inset, mid
	}
	return mid, inset
}

// escapeText replaces the XML special characters that can appear in
// user-supplied labels.
func escapeText(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
