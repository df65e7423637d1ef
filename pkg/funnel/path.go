package funnel

import (
	"strconv"
	"strings"
)

// curveSmoothing is the fraction of the inter-point main-axis span by
// which cubic control points are offset from their endpoints. At 0.5 both
// control points meet at the midpoint, producing the smooth S-shaped
// transition between flat plateaus.
const curveSmoothing = 0.5

// Op identifies one outline drawing instruction.
type Op uint8

const (
	// OpMove starts the outline at a point.
	OpMove Op = iota + 1
	// OpCurve draws a cubic Bézier to a point through two control points.
	OpCurve
	// OpLine draws a straight line to a point.
	OpLine
	// OpClose closes the outline back to its starting point.
	OpClose
)

// Instruction is one step of a segment outline. X and Y are the endpoint;
// CX1, CY1, CX2, CY2 are the cubic control points and are only meaningful
// for OpCurve.
type Instruction struct {
	Op                 Op
	X, Y               float64
	CX1, CY1, CX2, CY2 float64
}

// Outline is a closed curve description for one funnel segment band: an
// ordered list of move/curve/line/close instructions. It is
// representation-agnostic; Path renders the canonical SVG serialization.
type Outline []Instruction

// Path serializes the outline in SVG path syntax:
//
//	M x,y C cx1,cy1 cx2,cy2 x,y ... L x,y ... Z
func (o Outline) Path() string {
	var b strings.Builder
	for i, in := range o {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch in.Op {
		case OpMove:
			b.WriteString("M ")
			writePoint(&b, in.X, in.Y)
		case OpCurve:
			b.WriteString("C ")
			writePoint(&b, in.CX1, in.CY1)
			b.WriteByte(' ')
			writePoint(&b, in.CX2, in.CY2)
			b.WriteByte(' ')
			writePoint(&b, in.X, in.Y)
		case OpLine:
			b.WriteString("L ")
			writePoint(&b, in.X, in.Y)
		case OpClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, x, y float64) {
	b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
}

// BuildOutline converts one pair of adjacent boundary curves plus the
// main-axis coordinates into a closed outline.
//
// x holds the size+1 main-axis coordinates; y and yNext the current and
// next boundary curves (same length). The outline traverses y forward,
// crosses to yNext along the flat terminal edge, and traverses yNext in
// reverse. Every edge between interior boundary points is a cubic curve;
// the final edge of each traversal is a straight line, preserving the
// flat terminal edge implied by boundary duplication. The orientation
// maps (main, cross) pairs onto frame coordinates and thereby fixes the
// winding direction.
//
// Inputs are assumed validated and pre-rounded; control points are the
// only coordinates computed here and inherit integral endpoints offset by
// half-spans.
func BuildOutline(x, y, yNext []float64, o Orientation) Outline {
	size := len(x) - 1
	out := make(Outline, 0, 2*size+3)

	out = append(out, move(o, x[0], y[0]))
	for i := 0; i < size; i++ {
		if i == size-1 {
			out = append(out, line(o, x[i+1], y[i+1]))
		} else {
			out = append(out, curve(o, x[i], y[i], x[i+1], y[i+1]))
		}
	}

	// Straight connector across the terminal edge.
	out = append(out, line(o, x[size], yNext[size]))

	for i := size; i >= 1; i-- {
		if i == size {
			out = append(out, line(o, x[i-1], yNext[i-1]))
		} else {
			out = append(out, curve(o, x[i], yNext[i], x[i-1], yNext[i-1]))
		}
	}

	return append(out, Instruction{Op: OpClose})
}

func move(o Orientation, main, cross float64) Instruction {
	x, y := o.point(main, cross)
	return Instruction{Op: OpMove, X: x, Y: y}
}

func line(o Orientation, main, cross float64) Instruction {
	x, y := o.point(main, cross)
	return Instruction{Op: OpLine, X: x, Y: y}
}

// curve builds the cubic edge from (m1,c1) to (m2,c2). Control points sit
// at the endpoint cross-axis levels, offset along the main axis by
// curveSmoothing of the span.
func curve(o Orientation, m1, c1, m2, c2 float64) Instruction {
	span := (m2 - m1) * curveSmoothing
	x, y := o.point(m2, c2)
	cx1, cy1 := o.point(round(m1+span), c1)
	cx2, cy2 := o.point(round(m2-span), c2)
	return Instruction{Op: OpCurve, X: x, Y: y, CX1: cx1, CY1: cy1, CX2: cx2, CY2: cy2}
}
