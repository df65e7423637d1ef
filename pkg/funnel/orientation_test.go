package funnel

import (
	"slices"
	"testing"

	"github.com/matzehuels/funnelgraph/pkg/errors"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{in: "", want: Horizontal},
		{in: "horizontal", want: Horizontal},
		{in: "vertical", want: Vertical},
		{in: "diagonal", wantErr: true},
		{in: "HORIZONTAL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidOrientation) {
					t.Errorf("ParseOrientation(%q) error = %v, want INVALID_ORIENTATION", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOrientation(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOrientation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	if Horizontal.Toggle() != Vertical || Vertical.Toggle() != Horizontal {
		t.Error("Toggle should flip between orientations")
	}
}

func TestAxisRoles(t *testing.T) {
	const w, h = 800.0, 600.0

	if Horizontal.MainDimension(w, h) != w || Horizontal.CrossDimension(w, h) != h {
		t.Error("horizontal should use width as main, height as cross")
	}
	if Vertical.MainDimension(w, h) != h || Vertical.CrossDimension(w, h) != w {
		t.Error("vertical should use height as main, width as cross")
	}
}

func TestOrientationRoundTrip(t *testing.T) {
	g, err := NewGraph(FromValues([]float64{12, 7, 31, 9}), WithDimensions(640, 480))
	if err != nil {
		t.Fatal(err)
	}

	before := snapshot(g)
	g.ToggleOrientation()
	g.ToggleOrientation()
	after := snapshot(g)

	if len(before.outlines) != len(after.outlines) {
		t.Fatalf("outline counts differ after double toggle")
	}
	for k := range before.outlines {
		if before.outlines[k].Path() != after.outlines[k].Path() {
			t.Errorf("outline %d changed after double toggle:\n before %s\n after  %s",
				k, before.outlines[k].Path(), after.outlines[k].Path())
		}
	}
	if !slices.Equal(before.main, after.main) {
		t.Errorf("main axis changed after double toggle: %v vs %v", before.main, after.main)
	}
	for k := range before.cross {
		if !slices.Equal(before.cross[k], after.cross[k]) {
			t.Errorf("cross axis curve %d changed after double toggle", k)
		}
	}
}

type geometrySnapshot struct {
	main     []float64
	cross    [][]float64
	outlines []Outline
}

func snapshot(g *Graph) geometrySnapshot {
	return geometrySnapshot{
		main:     g.MainAxisPoints(),
		cross:    g.CrossAxisPoints(),
		outlines: g.Outlines(),
	}
}
