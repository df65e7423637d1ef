package funnel

import (
	"github.com/matzehuels/funnelgraph/pkg/errors"
)

// Orientation selects which frame dimension carries the main axis.
type Orientation string

const (
	// Horizontal lays segments out along the width; magnitudes are
	// encoded vertically. Outlines wind clockwise.
	Horizontal Orientation = "horizontal"

	// Vertical lays segments out along the height; magnitudes are
	// encoded horizontally. Outlines wind counter-clockwise, keeping the
	// funnel's front face consistent under a 90° rotation.
	Vertical Orientation = "vertical"
)

// ParseOrientation converts a string into an Orientation. The empty
// string defaults to Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "":
		return Horizontal, nil
	case Horizontal, Vertical:
		return Orientation(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidOrientation,
		"unknown orientation %q (must be %q or %q)", s, Horizontal, Vertical)
}

// Toggle returns the opposite orientation. Toggling twice is an exact
// round-trip: the same dataset and dimensions reproduce the original
// geometry coordinate for coordinate.
func (o Orientation) Toggle() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// MainDimension returns the frame extent along the main axis.
func (o Orientation) MainDimension(width, height float64) float64 {
	if o == Vertical {
		return height
	}
	return width
}

// CrossDimension returns the frame extent along the cross axis.
func (o Orientation) CrossDimension(width, height float64) float64 {
	if o == Vertical {
		return width
	}
	return height
}

// point maps a (main, cross) coordinate pair onto frame (x, y)
// coordinates. Horizontal orientation uses the pair as-is; Vertical
// transposes it. The transposition is a reflection, which is what
// reverses the outline winding from clockwise to counter-clockwise.
func (o Orientation) point(main, cross float64) (x, y float64) {
	if o == Vertical {
		return cross, main
	}
	return main, cross
}
