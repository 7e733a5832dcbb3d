package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/simextract/internal/analysis"
	"github.com/san-kum/simextract/internal/automation"
	"github.com/san-kum/simextract/internal/driver"
	"github.com/san-kum/simextract/internal/npy"
	"github.com/san-kum/simextract/internal/storage"
	"github.com/san-kum/simextract/internal/viz"
)

var (
	runID    string
	solution int
	plotIdx  int
	height   int
)

// loadDataset reads an array file and, when a run ID is given, attaches the
// plot tags and time base recorded in the archive.
func loadDataset(path, run string) (viz.Dataset, error) {
	shape, data, err := npy.ReadFile(path)
	if err != nil {
		return viz.Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	d := viz.Dataset{Source: path, Shape: shape, Data: data}
	if run == "" {
		return d, nil
	}

	st, err := archiveStore()
	if err != nil {
		return viz.Dataset{}, err
	}
	meta, err := st.Load(run)
	if err != nil {
		return viz.Dataset{}, err
	}
	times, err := st.LoadTimes(run)
	if err != nil {
		return viz.Dataset{}, err
	}
	if meta.Shape != shape {
		return viz.Dataset{}, fmt.Errorf("run %s has shape %v but %s has shape %s", run, meta.Shape, path, shape)
	}
	d.Plots = meta.Plots
	d.Times = times
	return d, nil
}

func archiveStore() (*storage.Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("no run archive: pass --data <dir>")
	}
	return storage.New(dataDir), nil
}

func addRunFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runID, "run", "", "archived run supplying plot tags and times")
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <npy>",
		Short: "show the shape and per-series summary of an array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(args[0], runID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), viz.Inspect(d))
			return nil
		},
	}
	addRunFlag(cmd)
	return cmd
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <npy>",
		Short: "chart the plots of one solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(args[0], runID)
			if err != nil {
				return err
			}
			if solution < 0 || solution >= d.Shape[0] {
				return fmt.Errorf("solution %d out of range [0,%d)", solution, d.Shape[0])
			}

			plots := []int{plotIdx}
			if plotIdx < 0 {
				plots = plots[:0]
				for j := 0; j < d.Shape[1] && j < 6; j++ {
					plots = append(plots, j)
				}
			} else if plotIdx >= d.Shape[1] {
				return fmt.Errorf("plot %d out of range [0,%d)", plotIdx, d.Shape[1])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n", d.Source)
			fmt.Fprintf(out, "solution: %d\n\n", solution)
			for _, j := range plots {
				fmt.Fprintln(out, viz.Chart(d.Series(solution, j), d.PlotName(j), 70, height))
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	addRunFlag(cmd)
	cmd.Flags().IntVar(&solution, "solution", 0, "solution index")
	cmd.Flags().IntVar(&plotIdx, "plot", -1, "plot index (default: first six plots)")
	cmd.Flags().IntVar(&height, "height", 10, "chart height")
	return cmd
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <npy>",
		Short: "browse solutions and plots interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(args[0], runID)
			if err != nil {
				return err
			}
			return viz.RunViewer(d)
		},
	}
	addRunFlag(cmd)
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var dt float64
	cmd := &cobra.Command{
		Use:   "analyze <npy>",
		Short: "statistics and dominant frequency per series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(args[0], runID)
			if err != nil {
				return err
			}
			if interval := analysis.SampleInterval(d.Times); interval > 0 {
				dt = interval
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SOL\tPLOT\tMIN\tMAX\tMEAN\tRMS\tPEAK FREQ")
			for i := range d.Data {
				for j, series := range d.Data[i] {
					s := analysis.Summarize(series)
					fmt.Fprintf(w, "%d\t%s\t%.5g\t%.5g\t%.5g\t%.5g\t%.5g\n",
						i, d.PlotName(j), s.Min, s.Max, s.Mean, s.RMS,
						analysis.DominantFrequency(series, dt))
				}
			}
			return w.Flush()
		},
	}
	addRunFlag(cmd)
	cmd.Flags().Float64Var(&dt, "dt", 1, "sample interval when no run is given")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json <npy> <out>",
		Short: "write an array file as JSON (\"-\" for stdout)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(args[0], runID)
			if err != nil {
				return err
			}
			return storage.ExportJSON(args[1], storage.ExportData{
				Source: d.Source,
				Shape:  d.Shape,
				Plots:  d.Plots,
				Times:  d.Times,
				Data:   d.Data,
			})
		},
	}
	addRunFlag(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := archiveStore()
			if err != nil {
				return err
			}
			runs, err := st.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGROUP\tDRIVER\tSHAPE\tTIME\tELAPSED\tOUTPUT")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2fs\t%s\n",
					run.ID,
					run.Group,
					run.Driver,
					npy.Shape(run.Shape),
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Elapsed,
					run.Output,
				)
			}
			return w.Flush()
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "run every config listed in a batch file, stopping at the first failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := automation.LoadBatch(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			results, err := automation.RunBatch(cmd.Context(), batch, func(ctx context.Context, path string) error {
				written, err := extractConfig(ctx, path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, written)
				return nil
			}, logger)
			logger.Info("batch finished", zap.Int("completed", len(results)), zap.Int("jobs", len(batch.Jobs)))
			return err
		},
	}
}

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "list extraction drivers and the model extensions they claim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := driver.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DRIVER\tEXTENSIONS")
			for _, name := range reg.List() {
				fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(reg.Extensions(name), " "))
			}
			return w.Flush()
		},
	}
}
