package funnel

import (
	"slices"
	"testing"
)

func TestPercentagesOneDimensional(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{
			name:   "relative to maximum",
			values: []float64{10, 50, 100},
			want:   []int{10, 50, 100},
		},
		{
			name:   "rounds half away from zero",
			values: []float64{1, 2, 8}, // 12.5% rounds to 13
			want:   []int{13, 25, 100},
		},
		{
			name:   "single segment",
			values: []float64{42},
			want:   []int{100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentages(FromValues(tt.values))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Percentages(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestPercentagesTwoDimensionalUsesTotals(t *testing.T) {
	ds := FromRows([][]float64{{5, 5}, {10, 10}}) // totals 10, 20
	got := Percentages(ds)
	if !slices.Equal(got, []int{50, 100}) {
		t.Errorf("Percentages = %v, want [50 100]", got)
	}
}

func TestCompositionPercentages(t *testing.T) {
	ds := FromRows([][]float64{{30, 20}, {15, 5}})
	got := CompositionPercentages(ds)
	want := [][]int{{60, 40}, {75, 25}}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCompositionRowsNeedNotSumTo100(t *testing.T) {
	// Each cell rounds independently: 1/3 → 33, three times.
	ds := FromRows([][]float64{{1, 1, 1}})
	got := CompositionPercentages(ds)
	if !slices.Equal(got[0], []int{33, 33, 33}) {
		t.Errorf("composition = %v, want [33 33 33]", got[0])
	}
}

func TestCompositionNilForOneDimensional(t *testing.T) {
	if got := CompositionPercentages(FromValues([]float64{1, 2})); got != nil {
		t.Errorf("composition for 1D dataset = %v, want nil", got)
	}
}

func TestCompositionZeroTotalRow(t *testing.T) {
	// A single empty stage inside an otherwise valid funnel.
	ds := FromRows([][]float64{{10, 10}, {0, 0}})
	got := CompositionPercentages(ds)
	if !slices.Equal(got[1], []int{0, 0}) {
		t.Errorf("zero-total row composition = %v, want [0 0]", got[1])
	}
}
