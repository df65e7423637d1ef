package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funnelgraph/pkg/cache"
)

func testRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil {
		t.Error("nil cache should default to NullCache")
	}
	if r.Keyer == nil {
		t.Error("nil keyer should default to DefaultKeyer")
	}
	if r.Logger == nil {
		t.Error("nil logger should default")
	}
}

func TestRunnerExecuteSVG(t *testing.T) {
	r := testRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Definition: testDefinition()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Segments != 3 {
		t.Errorf("Segments = %d, want 3", result.Stats.Segments)
	}
	if result.Stats.Subsegments != 1 {
		t.Errorf("Subsegments = %d, want 1", result.Stats.Subsegments)
	}
	if result.DatasetHash == "" {
		t.Error("DatasetHash should be set")
	}
	if result.Graph == nil {
		t.Fatal("Graph should be set")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("svg artifact missing")
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg artifact = %.40s", svg)
	}
}

func TestRunnerExecuteJSON(t *testing.T) {
	r := testRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Definition: testDefinition(),
		Formats:    []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("json artifact missing")
	}
	if !strings.Contains(string(data), "\"main_axis\"") {
		t.Error("json artifact should carry geometry")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := testRunner(nil)
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("missing definition should fail")
	}

	if _, err := r.Execute(context.Background(), Options{
		Definition: testDefinition(),
		Formats:    []string{"gif"},
	}); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(fc)
	defer r.Close()

	opts := Options{Definition: testDefinition()}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, Options{Definition: testDefinition()})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ParseHit {
		t.Error("second run should hit the dataset cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the original")
	}

	// Refresh bypasses the cache.
	third, err := r.Execute(ctx, Options{Definition: testDefinition(), Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.ParseHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not report cache hits")
	}
}

func TestRunnerParseInvalidData(t *testing.T) {
	r := testRunner(nil)
	defer r.Close()

	def := testDefinition()
	def.Data.Values = []float64{}

	if _, err := r.Parse(context.Background(), Options{Definition: def}); err == nil {
		t.Error("empty dataset should fail")
	}
}

func TestRenderArtifactsGradient(t *testing.T) {
	r := testRunner(nil)
	defer r.Close()

	def := testDefinition()
	def.Chart.Style = "gradient"

	result, err := r.Execute(context.Background(), Options{Definition: def, Labels: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<linearGradient") {
		t.Error("gradient style should emit linearGradient defs")
	}
	if !strings.Contains(svg, "Visits") {
		t.Error("labels should be rendered")
	}
}
