package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/funnelgraph/pkg/chartfile"
	"github.com/matzehuels/funnelgraph/pkg/funnel"
)

func previewFixture(t *testing.T) previewModel {
	t.Helper()
	def := &chartfile.File{
		Title: "Signups",
		Data: chartfile.Data{
			Labels: []string{"Visits", "Signups", "Purchases"},
			Values: []float64{12000, 5700, 360},
		},
	}
	g, err := def.Graph()
	if err != nil {
		t.Fatal(err)
	}
	return newPreviewModel(def, g)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewViewShowsSegments(t *testing.T) {
	m := previewFixture(t)
	view := m.View()

	for _, want := range []string{"Signups", "Visits", "Purchases", "100%", "orientation: horizontal"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPreviewCursorMovement(t *testing.T) {
	m := previewFixture(t)

	next, _ := m.Update(keyMsg("j"))
	m = next.(previewModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(previewModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}

	// Cursor stays in bounds.
	next, _ = m.Update(keyMsg("k"))
	m = next.(previewModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d at top, want 0", m.cursor)
	}
}

func TestPreviewToggleOrientation(t *testing.T) {
	m := previewFixture(t)

	next, _ := m.Update(keyMsg("o"))
	m = next.(previewModel)
	if !strings.Contains(m.View(), "orientation: vertical") {
		t.Error("o should toggle orientation to vertical")
	}

	next, _ = m.Update(keyMsg("o"))
	m = next.(previewModel)
	if !strings.Contains(m.View(), "orientation: horizontal") {
		t.Error("second o should toggle back to horizontal")
	}
}

func TestPreviewNegativeMagnitudes(t *testing.T) {
	// Validation only requires a positive maximum, so negative
	// magnitudes reach the preview. The bar clamps to zero width.
	def := &chartfile.File{Data: chartfile.Data{Labels: []string{"Refunds", "Sales"}}}
	g, err := funnel.NewGraph(funnel.FromValues([]float64{-5, 10}))
	if err != nil {
		t.Fatal(err)
	}

	view := newPreviewModel(def, g).View()
	if !strings.Contains(view, "-50%") {
		t.Errorf("view should report the negative percentage:\n%s", view)
	}
	if !strings.Contains(view, "100%") {
		t.Errorf("view should report the full segment:\n%s", view)
	}
}

func TestPreviewToggleGradient(t *testing.T) {
	m := previewFixture(t)
	if !strings.Contains(m.View(), "gradient: horizontal") {
		t.Fatal("default gradient direction missing from view")
	}

	next, _ := m.Update(keyMsg("g"))
	m = next.(previewModel)
	if !strings.Contains(m.View(), "gradient: vertical") {
		t.Error("g should toggle the gradient direction to vertical")
	}

	next, _ = m.Update(keyMsg("g"))
	m = next.(previewModel)
	if !strings.Contains(m.View(), "gradient: horizontal") {
		t.Error("second g should toggle back to horizontal")
	}
}

func TestPreviewQuit(t *testing.T) {
	m := previewFixture(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
}
