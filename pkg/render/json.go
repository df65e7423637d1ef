package render

import (
	"encoding/json"

	"github.com/matzehuels/funnelgraph/pkg/funnel"
)

// JSONOption configures JSON geometry export via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	labels    []string
	subLabels []string
}

// WithJSONLabels includes segment labels in the export.
func WithJSONLabels(labels []string) JSONOption {
	return func(r *jsonRenderer) { r.labels = labels }
}

// WithJSONSubLabels includes per-band labels in the export.
func WithJSONSubLabels(subLabels []string) JSONOption {
	return func(r *jsonRenderer) { r.subLabels = subLabels }
}

type jsonOutput struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation string      `json:"orientation"`
	MainAxis    []float64   `json:"main_axis"`
	CrossAxis   [][]float64 `json:"cross_axis"`
	Percentages []int       `json:"percentages"`
	Composition [][]int     `json:"composition,omitempty"`
	Labels      []string    `json:"labels,omitempty"`
	SubLabels   []string    `json:"sub_labels,omitempty"`
	Paths       []string    `json:"paths"`
}

// RenderJSON exports the complete derived geometry as JSON: axis points,
// percentages, composition, and one serialized path per band. External
// renderers can consume this without reimplementing the engine.
func RenderJSON(g *funnel.Graph, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	outlines := g.Outlines()
	paths := make([]string, len(outlines))
	for k, o := range outlines {
		paths[k] = o.Path()
	}

	out := jsonOutput{
		Width:       g.Width(),
		Height:      g.Height(),
		Orientation: string(g.Orientation()),
		MainAxis:    g.MainAxisPoints(),
		CrossAxis:   g.CrossAxisPoints(),
		Percentages: g.Percentages(),
		Composition: g.CompositionPercentages(),
		Labels:      r.labels,
		SubLabels:   r.subLabels,
		Paths:       paths,
	}
	return json.MarshalIndent(out, "", "  ")
}
