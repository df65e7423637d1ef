package funnel

import (
	"github.com/matzehuels/funnelgraph/pkg/errors"
)

// Dataset is the canonical, validated form of funnel input data.
//
// It is a tagged union: exactly one of Values (one-dimensional) or Rows
// (two-dimensional) is populated. For two-dimensional datasets every row
// has the same number of sub-magnitudes.
type Dataset struct {
	// Values holds one magnitude per segment (one-dimensional funnels).
	Values []float64 `json:"values,omitempty" bson:"values,omitempty"`

	// Rows holds one magnitude per sub-segment per segment
	// (two-dimensional funnels). All rows have equal length.
	Rows [][]float64 `json:"rows,omitempty" bson:"rows,omitempty"`

	// Labels are optional per-segment display labels.
	Labels []string `json:"labels,omitempty" bson:"labels,omitempty"`

	// SubLabels are optional per-sub-segment labels (two-dimensional only).
	SubLabels []string `json:"sub_labels,omitempty" bson:"sub_labels,omitempty"`
}

// TwoDimensional reports whether the dataset splits segments into stacked
// sub-segments.
func (d Dataset) TwoDimensional() bool { return d.Rows != nil }

// SegmentCount returns the number of top-level funnel segments.
func (d Dataset) SegmentCount() int {
	if d.TwoDimensional() {
		return len(d.Rows)
	}
	return len(d.Values)
}

// SubsegmentCount returns the number of stacked sub-segments per segment.
// One-dimensional datasets report 1.
func (d Dataset) SubsegmentCount() int {
	if !d.TwoDimensional() {
		return 1
	}
	return len(d.Rows[0])
}

// segmentTotals returns the per-segment magnitudes used for top-level
// sizing: the values themselves for one-dimensional datasets, row sums for
// two-dimensional ones.
func (d Dataset) segmentTotals() []float64 {
	if !d.TwoDimensional() {
		return d.Values
	}
	totals := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		var sum float64
		for _, v := range row {
			sum += v
		}
		totals[i] = sum
	}
	return totals
}

// Validate checks the structural invariants of the dataset: it must be
// non-empty, dimensionality must be uniform, and two-dimensional rows must
// all have the same length. It also rejects datasets whose maximum segment
// magnitude is not positive, since every percentage and cross-axis formula
// divides by that maximum.
func (d Dataset) Validate() error {
	if d.Values != nil && d.Rows != nil {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"dataset mixes scalar values and sub-magnitude rows")
	}
	if d.SegmentCount() == 0 {
		return errors.New(errors.ErrCodeInvalidData, "dataset is empty")
	}
	if d.TwoDimensional() {
		width := len(d.Rows[0])
		if width == 0 {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"row 0 has no sub-magnitudes")
		}
		for i, row := range d.Rows {
			if len(row) != width {
				return errors.New(errors.ErrCodeDimensionMismatch,
					"row %d has %d sub-magnitudes, expected %d", i, len(row), width)
			}
		}
	}
	max := maxValue(d.segmentTotals())
	if max <= 0 {
		return errors.New(errors.ErrCodeInvalidData,
			"maximum segment magnitude must be positive, got %v", max)
	}
	return nil
}

// FromValues builds a one-dimensional dataset from raw magnitudes.
// The result is not validated; call Validate or pass it to NewGraph.
func FromValues(values []float64) Dataset {
	return Dataset{Values: values}
}

// FromRows builds a two-dimensional dataset from per-segment sub-magnitude
// rows. The result is not validated; call Validate or pass it to NewGraph.
func FromRows(rows [][]float64) Dataset {
	return Dataset{Rows: rows}
}

// Parse normalizes a raw, dynamically-shaped input into a Dataset.
//
// Accepted shapes (as produced by encoding/json or BurntSushi/toml
// decoding into any):
//
//   - a flat sequence of numbers → one-dimensional
//   - a sequence of records carrying a "value" field → one-dimensional,
//     with "label" fields collected into Labels
//   - a record with a "values" field whose elements are numbers (1D) or
//     sequences (2D); optional "labels" and "subLabels" fields are kept
//
// Typed Go slices ([]float64, []int, [][]float64) are accepted directly.
// Parse fails with MISSING_DATA when no data-bearing field is found and
// with DIMENSION_MISMATCH when rows are ragged or dimensionality is mixed.
func Parse(raw any) (Dataset, error) {
	ds, err := parseShape(raw)
	if err != nil {
		return Dataset{}, err
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func parseShape(raw any) (Dataset, error) {
	switch v := raw.(type) {
	case Dataset:
		return v, nil
	case []float64:
		return FromValues(v), nil
	case [][]float64:
		return FromRows(v), nil
	case []int:
		vals := make([]float64, len(v))
		for i, n := range v {
			vals[i] = float64(n)
		}
		return FromValues(vals), nil
	case map[string]any:
		return parseRecord(v)
	case []any:
		return parseSequence(v)
	default:
		return Dataset{}, errors.New(errors.ErrCodeMissingData,
			"unsupported input shape %T", raw)
	}
}

// parseRecord handles the object-with-values shape. The element type of
// the "values" field determines dimensionality.
func parseRecord(rec map[string]any) (Dataset, error) {
	rawValues, ok := rec["values"]
	if !ok {
		return Dataset{}, errors.New(errors.ErrCodeMissingData,
			"record has no \"values\" field")
	}
	seq, ok := rawValues.([]any)
	if !ok {
		// Typed slices can appear when the record was built in Go.
		ds, err := parseShape(rawValues)
		if err != nil {
			return Dataset{}, err
		}
		ds.Labels = stringSlice(rec["labels"])
		ds.SubLabels = stringSlice(rec["subLabels"])
		return ds, nil
	}

	ds, err := parseSequence(seq)
	if err != nil {
		return Dataset{}, err
	}
	ds.Labels = stringSlice(rec["labels"])
	ds.SubLabels = stringSlice(rec["subLabels"])
	return ds, nil
}

// parseSequence handles flat number sequences, sequences of sequences, and
// sequences of records with a "value" field.
func parseSequence(seq []any) (Dataset, error) {
	if len(seq) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeInvalidData, "dataset is empty")
	}

	switch seq[0].(type) {
	case []any:
		rows := make([][]float64, len(seq))
		for i, el := range seq {
			sub, ok := el.([]any)
			if !ok {
				return Dataset{}, errors.New(errors.ErrCodeDimensionMismatch,
					"segment %d is not a sub-magnitude sequence", i)
			}
			row := make([]float64, len(sub))
			for j, sv := range sub {
				n, ok := toNumber(sv)
				if !ok {
					return Dataset{}, errors.New(errors.ErrCodeMissingData,
						"segment %d sub-magnitude %d is not a number", i, j)
				}
				row[j] = n
			}
			rows[i] = row
		}
		return FromRows(rows), nil

	case map[string]any:
		values := make([]float64, len(seq))
		labels := make([]string, len(seq))
		var labeled bool
		for i, el := range seq {
			rec, ok := el.(map[string]any)
			if !ok {
				return Dataset{}, errors.New(errors.ErrCodeDimensionMismatch,
					"segment %d mixes record and scalar shapes", i)
			}
			rawValue, ok := rec["value"]
			if !ok {
				return Dataset{}, errors.New(errors.ErrCodeMissingData,
					"segment %d record has no \"value\" field", i)
			}
			n, ok := toNumber(rawValue)
			if !ok {
				return Dataset{}, errors.New(errors.ErrCodeMissingData,
					"segment %d \"value\" field is not a number", i)
			}
			values[i] = n
			if label, ok := rec["label"].(string); ok {
				labels[i] = label
				labeled = true
			}
		}
		ds := FromValues(values)
		if labeled {
			ds.Labels = labels
		}
		return ds, nil

	default:
		values := make([]float64, len(seq))
		for i, el := range seq {
			n, ok := toNumber(el)
			if !ok {
				return Dataset{}, errors.New(errors.ErrCodeDimensionMismatch,
					"segment %d mixes scalar and non-scalar shapes", i)
			}
			values[i] = n
		}
		return FromValues(values), nil
	}
}

// toNumber converts the numeric types produced by JSON and TOML decoding.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, el := range s {
			str, ok := el.(string)
			if !ok {
				return nil
			}
			out = append(out, str)
		}
		return out
	}
	return nil
}

func maxValue(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
