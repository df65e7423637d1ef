// Package chartfile loads funnel chart definitions from TOML and JSON.
//
// A chart file bundles the dataset with presentation options:
//
//	title = "Signup funnel"
//
//	[chart]
//	width = 800
//	height = 600
//	orientation = "horizontal"
//	style = "gradient"
//	gradient = "horizontal"
//	colors = ["#FF4589", "#FFB178"]
//
//	[data]
//	labels = ["Visits", "Signups", "Purchases"]
//	values = [12000, 5700, 360]
//
// Two-dimensional funnels use nested value arrays plus sub_labels. The
// values field is deliberately untyped here; shape detection is the
// normalizer's job (funnel.Parse).
package chartfile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/funnelgraph/pkg/errors"
	"github.com/matzehuels/funnelgraph/pkg/funnel"
)

// File is a parsed chart definition.
type File struct {
	Title string `toml:"title" json:"title,omitempty" bson:"title,omitempty"`
	Chart Chart  `toml:"chart" json:"chart" bson:"chart"`
	Data  Data   `toml:"data" json:"data" bson:"data"`
}

// Chart holds presentation options.
type Chart struct {
	Width       float64  `toml:"width" json:"width,omitempty" bson:"width,omitempty"`
	Height      float64  `toml:"height" json:"height,omitempty" bson:"height,omitempty"`
	Orientation string   `toml:"orientation" json:"orientation,omitempty" bson:"orientation,omitempty"`
	Style       string   `toml:"style" json:"style,omitempty" bson:"style,omitempty"`
	Gradient    string   `toml:"gradient" json:"gradient,omitempty" bson:"gradient,omitempty"`
	Colors      []string `toml:"colors" json:"colors,omitempty" bson:"colors,omitempty"`
}

// Data holds the raw dataset fields. Values stays untyped until
// normalization so flat and nested arrays are both accepted.
type Data struct {
	Labels    []string `toml:"labels" json:"labels,omitempty" bson:"labels,omitempty"`
	SubLabels []string `toml:"sub_labels" json:"subLabels,omitempty" bson:"sub_labels,omitempty"`
	Values    any      `toml:"values" json:"values" bson:"values"`
}

// Load reads a chart file from disk, picking the decoder by extension
// (.toml or .json).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidChartFile, err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(bytes.NewReader(data))
	case ".json":
		return DecodeJSON(bytes.NewReader(data))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat,
		"unsupported chart file extension %q (must be .toml or .json)", filepath.Ext(path))
}

// DecodeTOML parses a TOML chart definition.
func DecodeTOML(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChartFile, err, "decode TOML chart definition")
	}
	return &f, nil
}

// DecodeJSON parses a JSON chart definition.
func DecodeJSON(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChartFile, err, "decode JSON chart definition")
	}
	return &f, nil
}

// Dataset normalizes the data section into a validated funnel dataset.
func (f *File) Dataset() (funnel.Dataset, error) {
	record := map[string]any{
		"labels":    f.Data.Labels,
		"subLabels": f.Data.SubLabels,
	}
	if f.Data.Values != nil {
		record["values"] = f.Data.Values
	}
	return funnel.Parse(record)
}

// Graph builds a funnel graph from the definition, applying chart
// dimension and orientation options on top of engine defaults.
func (f *File) Graph() (*funnel.Graph, error) {
	ds, err := f.Dataset()
	if err != nil {
		return nil, err
	}

	orient, err := funnel.ParseOrientation(f.Chart.Orientation)
	if err != nil {
		return nil, err
	}

	width, height := f.Chart.Width, f.Chart.Height
	if width == 0 {
		width = funnel.DefaultWidth
	}
	if height == 0 {
		height = funnel.DefaultHeight
	}

	return funnel.NewGraph(ds,
		funnel.WithDimensions(width, height),
		funnel.WithOrientation(orient))
}

// Marshal serializes the definition back to JSON, the interchange format
// used by the HTTP API and the store.
func (f *File) Marshal() ([]byte, error) {
	return json.Marshal(f)
}
