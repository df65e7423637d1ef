package funnel

import (
	"github.com/matzehuels/funnelgraph/pkg/errors"
)

// Default frame dimensions, used when no explicit size is configured.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// DimensionProvider supplies the current drawing surface size. Renderers
// embedded in resizable containers implement this so the graph always
// derives geometry from live dimensions.
type DimensionProvider interface {
	Dimensions() (width, height float64)
}

// FixedDimensions is a DimensionProvider with a constant size.
type FixedDimensions struct {
	Width, Height float64
}

// Dimensions returns the fixed width and height.
func (d FixedDimensions) Dimensions() (float64, float64) { return d.Width, d.Height }

// Graph binds a validated dataset to frame dimensions and an orientation
// and exposes the derived geometry. It holds no computed state: every
// read recomputes from the current inputs, so data replacement, resizing,
// and re-orientation can never leave stale coordinates behind.
//
// A Graph is safe for concurrent reads but not for concurrent mutation;
// the owning caller serializes updates to a single instance.
type Graph struct {
	ds     Dataset
	dims   DimensionProvider
	orient Orientation
}

// Option configures a Graph during construction.
type Option func(*Graph)

// WithDimensions sets a fixed frame size.
func WithDimensions(width, height float64) Option {
	return func(g *Graph) { g.dims = FixedDimensions{Width: width, Height: height} }
}

// WithDimensionProvider attaches a live dimension source.
func WithDimensionProvider(p DimensionProvider) Option {
	return func(g *Graph) { g.dims = p }
}

// WithOrientation sets the initial orientation.
func WithOrientation(o Orientation) Option {
	return func(g *Graph) { g.orient = o }
}

// NewGraph validates the dataset and builds a graph. Defaults: 800×600
// frame, horizontal orientation.
func NewGraph(ds Dataset, opts ...Option) (*Graph, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{
		ds:     ds,
		dims:   FixedDimensions{Width: DefaultWidth, Height: DefaultHeight},
		orient: Horizontal,
	}
	for _, opt := range opts {
		opt(g)
	}
	if w, h := g.dims.Dimensions(); w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"frame dimensions must be positive, got %vx%v", w, h)
	}
	return g, nil
}

// Dataset returns the current dataset.
func (g *Graph) Dataset() Dataset { return g.ds }

// Orientation returns the current orientation.
func (g *Graph) Orientation() Orientation { return g.orient }

// SegmentCount returns the number of top-level funnel segments.
func (g *Graph) SegmentCount() int { return g.ds.SegmentCount() }

// SubsegmentCount returns the number of stacked bands, which is also the
// number of outlines: 1 for one-dimensional funnels, K for
// two-dimensional ones.
func (g *Graph) SubsegmentCount() int { return g.ds.SubsegmentCount() }

// SetData replaces the dataset. The new dataset is validated; on error
// the graph keeps its previous data.
func (g *Graph) SetData(ds Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	g.ds = ds
	return nil
}

// Resize replaces the frame dimensions.
func (g *Graph) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"frame dimensions must be positive, got %vx%v", width, height)
	}
	g.dims = FixedDimensions{Width: width, Height: height}
	return nil
}

// SetOrientation switches the axis roles.
func (g *Graph) SetOrientation(o Orientation) { g.orient = o }

// ToggleOrientation flips between horizontal and vertical.
func (g *Graph) ToggleOrientation() { g.orient = g.orient.Toggle() }

// Width and Height report the current frame size.
func (g *Graph) Width() float64  { w, _ := g.dims.Dimensions(); return w }
func (g *Graph) Height() float64 { _, h := g.dims.Dimensions(); return h }

// MainAxisPoints returns the N+1 evenly spaced coordinates along the
// main axis (width when horizontal, height when vertical).
func (g *Graph) MainAxisPoints() []float64 {
	w, h := g.dims.Dimensions()
	return MainAxisPoints(g.ds.SegmentCount(), g.orient.MainDimension(w, h))
}

// CrossAxisPoints returns the K+1 boundary curves along the cross axis
// (height when horizontal, width when vertical), each of N+1 values.
func (g *Graph) CrossAxisPoints() [][]float64 {
	w, h := g.dims.Dimensions()
	return CrossAxisPoints(g.ds, g.orient.CrossDimension(w, h))
}

// Percentages returns each segment's magnitude relative to the largest
// segment, in whole percent.
func (g *Graph) Percentages() []int { return Percentages(g.ds) }

// CompositionPercentages returns the N×K table of sub-magnitude shares
// for two-dimensional datasets, nil otherwise.
func (g *Graph) CompositionPercentages() [][]int { return CompositionPercentages(g.ds) }

// SegmentOutline returns the closed outline of band k, where bands count
// from the outer-top boundary: one-dimensional funnels have a single band
// (k == 0), two-dimensional funnels have SubsegmentCount bands.
func (g *Graph) SegmentOutline(k int) Outline {
	x := g.MainAxisPoints()
	cross := g.CrossAxisPoints()
	return BuildOutline(x, cross[k], cross[k+1], g.orient)
}

// Outlines returns every band outline in stacking order.
func (g *Graph) Outlines() []Outline {
	x := g.MainAxisPoints()
	cross := g.CrossAxisPoints()
	out := make([]Outline, len(cross)-1)
	for k := range out {
		out[k] = BuildOutline(x, cross[k], cross[k+1], g.orient)
	}
	return out
}
