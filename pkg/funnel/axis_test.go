package funnel

import (
	"slices"
	"testing"
)

func TestMainAxisPoints(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		fullDim float64
		want    []float64
	}{
		{
			name: "even division",
			size: 4, fullDim: 100,
			want: []float64{0, 25, 50, 75, 100},
		},
		{
			name: "uneven division rounds per point",
			size: 3, fullDim: 100,
			want: []float64{0, 33, 67, 100},
		},
		{
			name: "single segment",
			size: 1, fullDim: 640,
			want: []float64{0, 640},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MainAxisPoints(tt.size, tt.fullDim)
			if !slices.Equal(got, tt.want) {
				t.Errorf("MainAxisPoints(%d, %v) = %v, want %v", tt.size, tt.fullDim, got, tt.want)
			}
		})
	}
}

func TestMainAxisPointsMonotonic(t *testing.T) {
	points := MainAxisPoints(7, 733)
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			t.Fatalf("points not strictly increasing at %d: %v", i, points)
		}
	}
	if points[0] != 0 || points[len(points)-1] != 733 {
		t.Errorf("endpoints = %v, %v, want 0, 733", points[0], points[len(points)-1])
	}
}

func TestCrossAxisPointsOneDimensional(t *testing.T) {
	ds := FromValues([]float64{10, 20, 30, 40})
	curves := CrossAxisPoints(ds, 200)

	if len(curves) != 2 {
		t.Fatalf("curve count = %d, want 2", len(curves))
	}
	top, bottom := curves[0], curves[1]

	wantTop := []float64{75, 50, 25, 0, 0}
	if !slices.Equal(top, wantTop) {
		t.Errorf("top = %v, want %v", top, wantTop)
	}

	// Mirror symmetry: top[i] + bottom[i] spans the full cross dimension.
	for i := range top {
		if top[i]+bottom[i] != 200 {
			t.Errorf("top[%d]+bottom[%d] = %v, want 200", i, i, top[i]+bottom[i])
		}
	}
}

func TestCrossAxisPointsDuplicatesTerminal(t *testing.T) {
	ds := FromValues([]float64{10, 20, 30})
	curves := CrossAxisPoints(ds, 100)

	for k, curve := range curves {
		if len(curve) != 4 {
			t.Fatalf("curve %d length = %d, want size+1 = 4", k, len(curve))
		}
		if curve[3] != curve[2] {
			t.Errorf("curve %d terminal not duplicated: %v", k, curve)
		}
	}
}

func TestCrossAxisPointsTwoDimensional(t *testing.T) {
	ds := FromRows([][]float64{{5, 5}, {10, 10}})
	curves := CrossAxisPoints(ds, 100)

	if len(curves) != 3 {
		t.Fatalf("curve count = %d, want K+1 = 3", len(curves))
	}

	wantTop := []float64{25, 0, 0}
	wantMid := []float64{50, 50, 50}
	wantBottom := []float64{75, 100, 100}
	if !slices.Equal(curves[0], wantTop) {
		t.Errorf("top = %v, want %v", curves[0], wantTop)
	}
	if !slices.Equal(curves[1], wantMid) {
		t.Errorf("internal boundary = %v, want %v", curves[1], wantMid)
	}
	if !slices.Equal(curves[2], wantBottom) {
		t.Errorf("bottom = %v, want %v", curves[2], wantBottom)
	}
}

func TestOuterBoundariesExactMirror(t *testing.T) {
	// Magnitudes chosen so composition rounding cannot divide evenly.
	ds := FromRows([][]float64{{7, 3, 1}, {5, 4, 2}, {1, 1, 1}})
	const fullDim = 333.0
	curves := CrossAxisPoints(ds, fullDim)
	top, bottom := curves[0], curves[len(curves)-1]

	// Outer band height is exact regardless of internal rounding drift.
	for i := range top {
		if bottom[i]-top[i] != fullDim-2*top[i] {
			t.Errorf("outer span at %d = %v, want %v", i, bottom[i]-top[i], fullDim-2*top[i])
		}
		if top[i]+bottom[i] != fullDim {
			t.Errorf("mirror violated at %d: %v + %v != %v", i, top[i], bottom[i], fullDim)
		}
	}
}

func TestInternalBoundariesMonotonic(t *testing.T) {
	ds := FromRows([][]float64{{4, 2, 2}, {3, 3, 2}, {1, 2, 1}})
	curves := CrossAxisPoints(ds, 240)

	for i := 0; i < len(curves[0]); i++ {
		for k := 1; k < len(curves); k++ {
			if curves[k][i] < curves[k-1][i] {
				t.Errorf("boundary %d crosses boundary %d at index %d: %v < %v",
					k, k-1, i, curves[k][i], curves[k-1][i])
			}
		}
	}
}
