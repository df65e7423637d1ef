package render

import (
	"bytes"
	"fmt"
)

// Style defines the visual appearance of funnel bands.
// Implementations control the <defs> block and per-band fill attributes.
type Style interface {
	// RenderDefs writes SVG <defs> content (gradients, filters).
	RenderDefs(buf *bytes.Buffer, bands []Band)
	// RenderBand writes the SVG for a single band path.
	RenderBand(buf *bytes.Buffer, b Band)
}

// Band contains all data needed to render one stacked funnel band.
type Band struct {
	Index int    // Band position in stacking order
	Path  string // Serialized outline path
	Color string // Base fill color
	Label string // Sub-segment label (two-dimensional funnels)
}

// Gradient direction constants. The direction is independent of the
// funnel orientation and can be toggled live.
const (
	GradientHorizontal = "horizontal"
	GradientVertical   = "vertical"
)

// Solid fills each band with its flat base color.
type Solid struct{}

// RenderDefs writes nothing; solid fills need no definitions.
func (Solid) RenderDefs(buf *bytes.Buffer, bands []Band) {}

// RenderBand writes the band path with a flat fill.
func (Solid) RenderBand(buf *bytes.Buffer, b Band) {
	fmt.Fprintf(buf, "  <path class=\"band\" id=\"band-%d\" d=\"%s\" fill=\"%s\"/>\n",
		b.Index, b.Path, b.Color)
}

// Gradient fills each band with a linear gradient fading the base color
// toward white along the configured direction.
type Gradient struct {
	// Direction is GradientHorizontal or GradientVertical.
	Direction string
}

// RenderDefs writes one <linearGradient> per band.
func (g Gradient) RenderDefs(buf *bytes.Buffer, bands []Band) {
	x2, y2 := "1", "0"
	if g.Direction == GradientVertical {
		x2, y2 = "0", "1"
	}
	buf.WriteString("  <defs>\n")
	for _, b := range bands {
		fmt.Fprintf(buf, "    <linearGradient id=\"grad-%d\" x1=\"0\" y1=\"0\" x2=\"%s\" y2=\"%s\">\n",
			b.Index, x2, y2)
		fmt.Fprintf(buf, "      <stop offset=\"0%%\" stop-color=\"%s\"/>\n", b.Color)
		fmt.Fprintf(buf, "      <stop offset=\"100%%\" stop-color=\"%s\" stop-opacity=\"0.55\"/>\n", b.Color)
		fmt.Fprintf(buf, "    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

// RenderBand writes the band path referencing its gradient definition.
func (g Gradient) RenderBand(buf *bytes.Buffer, b Band) {
	fmt.Fprintf(buf, "  <path class=\"band\" id=\"band-%d\" d=\"%s\" fill=\"url(#grad-%d)\"/>\n",
		b.Index, b.Path, b.Index)
}

// defaultPalette provides fills when the chart definition carries no
// colors. Bands cycle through it.
var defaultPalette = []string{
	"#FF4589",
	"#FFB178",
	"#7795FF",
	"#50D2C2",
	"#B497FF",
	"#FFD76E",
}

// colorFor returns the configured color for band k, falling back to the
// default palette.
func colorFor(colors []string, k int) string {
	if len(colors) > 0 {
		return colors[k%len(colors)]
	}
	return defaultPalette[k%len(defaultPalette)]
}
