// Package funnel implements the funnel chart geometry engine.
//
// A funnel chart is a sequence of tapering segments laid out along a main
// axis, where the cross-axis extent of each segment encodes a magnitude.
// Two-dimensional funnels additionally split every segment into stacked
// sub-segments.
//
// The package is a pure derivation layer: given a [Dataset], frame
// dimensions, and an [Orientation], it produces axis coordinates,
// percentage values, and closed curved outlines ([Outline]) ready for an
// SVG or canvas renderer. No drawing happens here; see pkg/render for the
// SVG sink.
//
// # Pipeline
//
//	raw input → Parse → Dataset → percentages → axis points → outlines
//
// All derivations are deterministic and stateless. A [Graph] binds the
// current dataset, dimensions, and orientation and recomputes geometry on
// every read, so live updates (new data, resize, re-orientation) can never
// drift out of sync with previously computed coordinates.
//
// # Coordinate conventions
//
// Main-axis points are evenly spaced and include both endpoints, so a
// funnel with N segments has N+1 main-axis coordinates. Every boundary
// curve duplicates its last value, which gives the final segment a flat
// trailing edge instead of a tapering point. All coordinates and
// percentages are rounded half away from zero at each computation step.
//
// # Validation
//
// [Parse] and [NewGraph] validate input and fail with structured errors
// from pkg/errors (MISSING_DATA, DIMENSION_MISMATCH, INVALID_DATA). The
// axis and path functions assume validated input and do not re-validate;
// feeding them malformed data directly is a caller bug.
package funnel
