package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/simextract/internal/config"
	"github.com/san-kum/simextract/internal/driver"
	"github.com/san-kum/simextract/internal/extract"
	"github.com/san-kum/simextract/internal/storage"
)

var (
	dataDir string
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simextract <config>",
		Short: "extract plot group data from a solved model into a .npy file",
		Long: `simextract reads a configuration naming a solved model and a plot group,
collects the samples of every active plot for every solution, and writes them
as a float64 array of shape (solutions, plots, samples) next to the model name
with a .npy extension.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runExtract,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run archive directory (archiving is off when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newInspectCmd(),
		newPlotCmd(),
		newViewCmd(),
		newAnalyzeCmd(),
		newExportJSONCmd(),
		newListCmd(),
		newBatchCmd(),
		newDriversCmd(),
	)

	return rootCmd
}

// runExtract handles the single-argument form. Any other argument count
// prints usage and succeeds.
func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return cmd.Usage()
	}

	out, err := extractConfig(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// extractConfig runs one extraction described by the config at path and
// returns the output file name.
func extractConfig(ctx context.Context, path string) (string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}

	modelPath := cfg.ModelPath()
	d, name, err := driver.NewRegistry().Resolve(cfg.Driver, modelPath)
	if err != nil {
		return "", err
	}
	logger.Debug("resolved driver", zap.String("driver", name), zap.String("model", modelPath))

	start := time.Now()
	out := cfg.OutputPath()
	result, err := extract.New(d, logger).ExtractToFile(ctx, modelPath, cfg.PlotGroupName, out)
	if err != nil {
		return "", err
	}

	archive := dataDir
	if cfg.DataDirectory != "" {
		archive = cfg.DataDirectory
	}
	if archive == "" {
		return out, nil
	}

	if err := archiveRun(archive, storage.RunMetadata{
		Driver:  name,
		Output:  out,
		Elapsed: time.Since(start).Seconds(),
	}, result); err != nil {
		logger.Warn("run not archived", zap.String("dir", archive), zap.Error(err))
	}

	return out, nil
}

// archiveRun records a finished extraction. The array file is already in
// place, so a failure here is reported but does not fail the run.
func archiveRun(dir string, meta storage.RunMetadata, result extract.Result) error {
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("init archive %s: %w", dir, err)
	}
	id, err := st.Save(meta, result)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	logger.Info("archived run", zap.String("id", id), zap.String("dir", dir))
	return nil
}
