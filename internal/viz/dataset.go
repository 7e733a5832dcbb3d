package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simextract/internal/analysis"
	"github.com/san-kum/simextract/internal/npy"
)

// Dataset is an extracted array plus whatever labels are known for it. Plots
// and Times may be empty when only the .npy file is available.
type Dataset struct {
	Source string
	Shape  npy.Shape
	Plots  []string
	Times  []float64
	Data   [][][]float64
}

func (d Dataset) PlotName(j int) string {
	if j < len(d.Plots) && d.Plots[j] != "" {
		return d.Plots[j]
	}
	return fmt.Sprintf("plot%d", j)
}

// Series returns the samples of plot j in solution i.
func (d Dataset) Series(i, j int) []float64 {
	if i < 0 || i >= len(d.Data) || j < 0 || j >= len(d.Data[i]) {
		return nil
	}
	return d.Data[i][j]
}

// Inspect renders a header panel followed by one summary line per solution
// and plot.
func Inspect(d Dataset) string {
	var b strings.Builder

	head := []string{
		Title.Render(d.Source),
		Metric("shape", d.Shape.String()),
		Metric("solutions", fmt.Sprint(d.Shape[0])),
		Metric("plots", fmt.Sprint(d.Shape[1])),
		Metric("samples", fmt.Sprint(d.Shape[2])),
	}
	if len(d.Times) > 0 {
		head = append(head, Metric("time", fmt.Sprintf("%g .. %g", d.Times[0], d.Times[len(d.Times)-1])))
	}
	b.WriteString(Panel.Render(lipgloss.JoinVertical(lipgloss.Left, head...)))
	b.WriteString("\n")

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-8s %-16s %12s %12s %12s %12s", "sol", "plot", "min", "max", "mean", "rms")))
	b.WriteString("\n")
	for i := range d.Data {
		for j := range d.Data[i] {
			s := analysis.Summarize(d.Data[i][j])
			fmt.Fprintf(&b, "%-8d %-16s %12.5g %12.5g %12.5g %12.5g\n",
				i, d.PlotName(j), s.Min, s.Max, s.Mean, s.RMS)
		}
	}
	return b.String()
}

// Chart draws values as an ASCII line chart. An empty series renders as a
// placeholder line.
func Chart(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return Subtle.Render("(no samples)")
	}
	if width < 10 {
		width = 10
	}
	if height < 2 {
		height = 2
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption))
}
