package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelgraph/pkg/chartfile"
	"github.com/matzehuels/funnelgraph/pkg/funnel"
	"github.com/matzehuels/funnelgraph/pkg/render"
)

// newPreviewCmd creates the preview command: an interactive terminal
// rendering of a chart definition.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a chart definition in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := chartfile.Load(args[0])
			if err != nil {
				return err
			}
			g, err := def.Graph()
			if err != nil {
				return err
			}

			model := newPreviewModel(def, g)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// Bar styles cycle through the same palette the SVG renderer uses,
// approximated with terminal colors.
var barStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("79")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
}

// previewModel is the bubbletea model for the chart preview.
type previewModel struct {
	def      *chartfile.File
	graph    *funnel.Graph
	gradient string
	cursor   int
	width    int
}

func newPreviewModel(def *chartfile.File, g *funnel.Graph) previewModel {
	gradient := def.Chart.Gradient
	if gradient == "" {
		gradient = render.GradientHorizontal
	}
	return previewModel{def: def, graph: g, gradient: gradient, width: 80}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.graph.SegmentCount()-1 {
				m.cursor++
			}
		case "o":
			m.graph.ToggleOrientation()
		case "g":
			if m.gradient == render.GradientVertical {
				m.gradient = render.GradientHorizontal
			} else {
				m.gradient = render.GradientVertical
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	title := m.def.Title
	if title == "" {
		title = "Funnel preview"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  o orientation  g gradient  q quit"))
	b.WriteString("\n\n")

	pct := m.graph.Percentages()
	labels := m.def.Data.Labels

	barWidth := m.width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	for i := 0; i < m.graph.SegmentCount(); i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		label := fmt.Sprintf("stage %d", i+1)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}

		// Percentages are relative to the largest segment and can be
		// negative; the bar only shows the [0, barWidth] range.
		filled := barWidth * pct[i] / 100
		if filled < 0 {
			filled = 0
		}
		if filled > barWidth {
			filled = barWidth
		}
		if filled < 1 && pct[i] > 0 {
			filled = 1
		}
		bar := barStyles[i%len(barStyles)].Render(strings.Repeat("█", filled)) +
			StyleDim.Render(strings.Repeat("░", barWidth-filled))

		line := fmt.Sprintf("%s%-12s %s %3d%%", cursor, truncate(label, 12), bar, pct[i])
		if i == m.cursor {
			b.WriteString(StyleValue.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  orientation: %s · gradient: %s · %.0f×%.0f",
		m.graph.Orientation(), m.gradient, m.graph.Width(), m.graph.Height())))
	b.WriteString("\n")

	return b.String()
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
