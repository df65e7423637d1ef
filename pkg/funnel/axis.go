package funnel

// MainAxisPoints returns size+1 evenly spaced coordinates spanning
// fullDimension along the main axis, one per segment boundary. Each point
// is rounded independently, so spacing can differ by at most one unit.
//
//	MainAxisPoints(4, 100) == [0, 25, 50, 75, 100]
func MainAxisPoints(size int, fullDimension float64) []float64 {
	points := make([]float64, size+1)
	for i := 0; i <= size; i++ {
		points[i] = round(fullDimension * float64(i) / float64(size))
	}
	return points
}

// CrossAxisPoints returns the boundary curves separating the funnel's
// stacked regions along the cross axis. One-dimensional datasets yield two
// curves (top and bottom, exact mirrors); a two-dimensional dataset with K
// sub-segments yields K+1 curves (outer-top, K-1 internal stack
// boundaries, outer-bottom).
//
// Every curve has size+1 entries with the last value duplicated, giving
// the final segment a flat trailing edge. For every index i,
// top[i] + bottom[i] == fullDimension, and the outer-bottom curve is set
// from the top curve directly rather than accumulated through the internal
// boundaries, so composition rounding never drifts to the outer edge.
//
// The dataset must be validated; max segment magnitude is assumed
// positive.
func CrossAxisPoints(d Dataset, fullDimension float64) [][]float64 {
	totals := extendByLast(d.segmentTotals())
	top := topCurve(totals, fullDimension)

	if !d.TwoDimensional() {
		return [][]float64{top, mirrorCurve(top, fullDimension)}
	}

	rows := extendRowsByLast(d.Rows)
	comp := compositionOf(rows)
	k := d.SubsegmentCount()

	curves := make([][]float64, 0, k+1)
	curves = append(curves, top)
	for b := 1; b < k; b++ {
		prev := curves[b-1]
		curve := make([]float64, len(top))
		for i := range curve {
			height := fullDimension - 2*top[i]
			curve[i] = round(prev[i] + height*float64(comp[i][b-1])/100)
		}
		curves = append(curves, curve)
	}
	// Outer-bottom is derived from the top curve, not from the last
	// internal boundary.
	curves = append(curves, mirrorCurve(top, fullDimension))
	return curves
}

// topCurve computes the outer-top boundary from extended segment
// magnitudes: the distance from the frame edge grows as magnitudes
// shrink, symmetrically around the cross-axis midline.
func topCurve(extended []float64, fullDimension float64) []float64 {
	max := maxValue(extended)
	half := fullDimension / 2
	curve := make([]float64, len(extended))
	for i, v := range extended {
		curve[i] = round((max - v) / max * half)
	}
	return curve
}

// mirrorCurve reflects a curve across the cross-axis midline.
func mirrorCurve(curve []float64, fullDimension float64) []float64 {
	out := make([]float64, len(curve))
	for i, v := range curve {
		out[i] = fullDimension - v
	}
	return out
}

// extendByLast appends a copy of the last value, turning N segment
// magnitudes into N+1 boundary magnitudes with a flat terminal edge.
func extendByLast(values []float64) []float64 {
	out := make([]float64, len(values), len(values)+1)
	copy(out, values)
	return append(out, values[len(values)-1])
}

func extendRowsByLast(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows), len(rows)+1)
	copy(out, rows)
	return append(out, rows[len(rows)-1])
}
