package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/simextract/internal/analysis"
)

// Viewer is a Bubble Tea model that shows one series of a Dataset at a time.
type Viewer struct {
	data          Dataset
	solution      int
	plot          int
	width, height int
}

func NewViewer(d Dataset) Viewer {
	return Viewer{data: d, width: 80, height: 24}
}

func (v Viewer) Solution() int { return v.solution }
func (v Viewer) Plot() int     { return v.plot }

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	plots, solutions := v.data.Shape[1], v.data.Shape[0]

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "down", "j":
		if v.plot < plots-1 {
			v.plot++
		}
	case "up", "k":
		if v.plot > 0 {
			v.plot--
		}
	case "right", "l":
		if v.solution < solutions-1 {
			v.solution++
		}
	case "left", "h":
		if v.solution > 0 {
			v.solution--
		}
	}
	return v, nil
}

func (v Viewer) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s  %s", v.data.Source, v.data.Shape)))
	b.WriteString("\n")
	b.WriteString(Metric("solution", fmt.Sprintf("%d/%d", v.solution+1, v.data.Shape[0])))
	b.WriteString("  ")
	b.WriteString(Metric("plot", fmt.Sprintf("%s (%d/%d)", v.data.PlotName(v.plot), v.plot+1, v.data.Shape[1])))
	b.WriteString("\n\n")

	series := v.data.Series(v.solution, v.plot)
	b.WriteString(Chart(series, v.data.PlotName(v.plot), v.width-12, v.height-10))
	b.WriteString("\n\n")

	s := analysis.Summarize(series)
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		Metric("min", fmt.Sprintf("%.4g", s.Min)),
		Metric("max", fmt.Sprintf("%.4g", s.Max)),
		Metric("mean", fmt.Sprintf("%.4g", s.Mean)),
		Metric("rms", fmt.Sprintf("%.4g", s.RMS))))
	b.WriteString(KeyHint.Render("j/k plot  h/l solution  q quit"))
	return b.String()
}

// RunViewer starts an interactive viewer on the alternate screen.
func RunViewer(d Dataset) error {
	_, err := tea.NewProgram(NewViewer(d), tea.WithAltScreen()).Run()
	return err
}
