package funnel

import (
	"slices"
	"testing"

	"github.com/matzehuels/funnelgraph/pkg/errors"
)

func TestNewGraphValidates(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		code errors.Code
	}{
		{name: "empty dataset", ds: Dataset{}, code: errors.ErrCodeInvalidData},
		{name: "all zero", ds: FromValues([]float64{0, 0, 0}), code: errors.ErrCodeInvalidData},
		{name: "ragged rows", ds: FromRows([][]float64{{1, 2}, {3}}), code: errors.ErrCodeDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGraph(tt.ds); !errors.Is(err, tt.code) {
				t.Errorf("NewGraph error = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestNewGraphRejectsBadDimensions(t *testing.T) {
	_, err := NewGraph(FromValues([]float64{1, 2}), WithDimensions(0, 600))
	if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("error = %v, want INVALID_DIMENSIONS", err)
	}
}

func TestGraphDefaults(t *testing.T) {
	g, err := NewGraph(FromValues([]float64{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != DefaultWidth || g.Height() != DefaultHeight {
		t.Errorf("dimensions = %vx%v, want %vx%v", g.Width(), g.Height(), DefaultWidth, DefaultHeight)
	}
	if g.Orientation() != Horizontal {
		t.Errorf("orientation = %q, want horizontal", g.Orientation())
	}
}

func TestGraphReadOperations(t *testing.T) {
	g, err := NewGraph(FromValues([]float64{10, 20, 30, 40}),
		WithDimensions(100, 200))
	if err != nil {
		t.Fatal(err)
	}

	if got := g.MainAxisPoints(); !slices.Equal(got, []float64{0, 25, 50, 75, 100}) {
		t.Errorf("MainAxisPoints = %v", got)
	}

	cross := g.CrossAxisPoints()
	if len(cross) != 2 {
		t.Fatalf("cross curve count = %d, want 2", len(cross))
	}
	if !slices.Equal(cross[0], []float64{75, 50, 25, 0, 0}) {
		t.Errorf("top = %v", cross[0])
	}

	if got := g.Percentages(); !slices.Equal(got, []int{25, 50, 75, 100}) {
		t.Errorf("Percentages = %v", got)
	}
	if g.CompositionPercentages() != nil {
		t.Error("1D graph should have nil composition")
	}
	if g.SubsegmentCount() != 1 {
		t.Errorf("SubsegmentCount = %d, want 1", g.SubsegmentCount())
	}
	if outlines := g.Outlines(); len(outlines) != 1 {
		t.Errorf("outline count = %d, want 1", len(outlines))
	}
}

func TestGraphTwoDimensionalOutlines(t *testing.T) {
	g, err := NewGraph(FromRows([][]float64{{5, 5}, {10, 10}}),
		WithDimensions(100, 100))
	if err != nil {
		t.Fatal(err)
	}

	if g.SubsegmentCount() != 2 {
		t.Fatalf("SubsegmentCount = %d, want 2", g.SubsegmentCount())
	}
	outlines := g.Outlines()
	if len(outlines) != 2 {
		t.Fatalf("outline count = %d, want 2", len(outlines))
	}
	for k, o := range outlines {
		if o.Path() != g.SegmentOutline(k).Path() {
			t.Errorf("Outlines()[%d] differs from SegmentOutline(%d)", k, k)
		}
	}
}

func TestGraphLiveUpdates(t *testing.T) {
	g, err := NewGraph(FromValues([]float64{1, 2}), WithDimensions(100, 100))
	if err != nil {
		t.Fatal(err)
	}

	// Resize is reflected immediately in derived geometry.
	if err := g.Resize(200, 100); err != nil {
		t.Fatal(err)
	}
	if got := g.MainAxisPoints(); got[len(got)-1] != 200 {
		t.Errorf("main axis end = %v after resize, want 200", got[len(got)-1])
	}
	if err := g.Resize(-1, 100); !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("Resize(-1, 100) error = %v, want INVALID_DIMENSIONS", err)
	}

	// SetData rejects invalid replacements and keeps the old dataset.
	if err := g.SetData(FromValues([]float64{0})); !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("SetData error = %v, want INVALID_DATA", err)
	}
	if !slices.Equal(g.Dataset().Values, []float64{1, 2}) {
		t.Error("failed SetData should not replace the dataset")
	}
	if err := g.SetData(FromValues([]float64{3, 4, 5})); err != nil {
		t.Fatal(err)
	}
	if g.SegmentCount() != 3 {
		t.Errorf("SegmentCount = %d after SetData, want 3", g.SegmentCount())
	}

	// Re-orientation swaps axis roles.
	g.SetOrientation(Vertical)
	if got := g.MainAxisPoints(); got[len(got)-1] != 100 {
		t.Errorf("vertical main axis end = %v, want height 100", got[len(got)-1])
	}
}

func TestGraphReadsAreIdempotent(t *testing.T) {
	g, err := NewGraph(FromRows([][]float64{{3, 1}, {2, 2}, {1, 1}}),
		WithDimensions(300, 200), WithOrientation(Vertical))
	if err != nil {
		t.Fatal(err)
	}

	first := g.SegmentOutline(0).Path()
	for i := 0; i < 5; i++ {
		if got := g.SegmentOutline(0).Path(); got != first {
			t.Fatalf("read %d produced different path", i)
		}
	}
}

type growingSurface struct{ w, h float64 }

func (s *growingSurface) Dimensions() (float64, float64) { return s.w, s.h }

func TestDimensionProviderIsConsultedPerRead(t *testing.T) {
	surface := &growingSurface{w: 100, h: 100}
	g, err := NewGraph(FromValues([]float64{1, 2}), WithDimensionProvider(surface))
	if err != nil {
		t.Fatal(err)
	}

	before := g.MainAxisPoints()
	surface.w = 500
	after := g.MainAxisPoints()

	if before[len(before)-1] != 100 || after[len(after)-1] != 500 {
		t.Errorf("provider resize not reflected: before %v, after %v", before, after)
	}
}
