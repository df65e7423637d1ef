package funnel

import "math"

// round rounds half away from zero, the convention used for every
// coordinate and percentage in the geometry engine.
func round(v float64) float64 { return math.Round(v) }

// Percentages returns one value per segment expressing its magnitude
// relative to the largest segment, rounded to whole percent. For
// two-dimensional datasets the comparison is between per-segment totals.
//
// The dataset must be validated; the maximum magnitude is assumed
// positive.
func Percentages(d Dataset) []int {
	return relativePercentages(d.segmentTotals())
}

// relativePercentages computes round(v*100/max) for each value.
func relativePercentages(values []float64) []int {
	max := maxValue(values)
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(round(v * 100 / max))
	}
	return out
}

// CompositionPercentages returns, for a two-dimensional dataset, each
// sub-magnitude's share of its own segment's total, rounded to whole
// percent. The result is an N×K table. Because every cell is rounded
// independently, a row does not necessarily sum to exactly 100.
//
// Returns nil for one-dimensional datasets.
func CompositionPercentages(d Dataset) [][]int {
	if !d.TwoDimensional() {
		return nil
	}
	return compositionOf(d.Rows)
}

func compositionOf(rows [][]float64) [][]int {
	out := make([][]int, len(rows))
	for i, row := range rows {
		var total float64
		for _, v := range row {
			total += v
		}
		comp := make([]int, len(row))
		if total > 0 {
			for j, v := range row {
				comp[j] = int(round(v * 100 / total))
			}
		}
		out[i] = comp
	}
	return out
}
