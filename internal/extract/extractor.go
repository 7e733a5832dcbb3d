package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Extractor gathers the samples of every active plot of a plot group, for
// every solution, into a Result.
type Extractor struct {
	driver Driver
	log    *zap.Logger
}

func New(driver Driver, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{driver: driver, log: log}
}

// Run loads the model at modelPath and extracts plot group group. The time
// base is taken from the first plot's first solution and every other series
// must match its length.
func (e *Extractor) Run(ctx context.Context, modelPath, group string) (Result, error) {
	e.log.Info("loading model", zap.String("path", modelPath))
	if err := e.driver.LoadModel(ctx, modelPath); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrModelLoad, modelPath, err)
	}

	plots, err := e.driver.ActivePlots(ctx, group)
	if err != nil {
		return Result{}, fmt.Errorf("list plots of group %s: %w", group, err)
	}
	if len(plots) == 0 {
		return Result{}, fmt.Errorf("%w: plot group %s has no active plots", ErrShapeMismatch, group)
	}

	tags := make([]string, len(plots))
	for j, p := range plots {
		tags[j] = p.Tag
	}
	e.log.Info("extracting plots", zap.String("group", group), zap.Strings("plots", tags))

	solutions := plots[0].Solutions
	if solutions <= 0 {
		return Result{}, fmt.Errorf("%w: plot %s reports %d solutions", ErrShapeMismatch, plots[0].Tag, solutions)
	}
	for _, p := range plots[1:] {
		if p.Solutions != solutions {
			return Result{}, fmt.Errorf("%w: plot %s reports %d solutions, plot %s reports %d",
				ErrShapeMismatch, p.Tag, p.Solutions, plots[0].Tag, solutions)
		}
	}
	e.log.Info("found solutions", zap.Int("count", solutions))

	first, err := e.driver.FetchSamples(ctx, plots[0].Tag, 0)
	if err != nil {
		return Result{}, fmt.Errorf("fetch time base from plot %s: %w", plots[0].Tag, err)
	}
	if len(first.Times) == 0 {
		return Result{}, fmt.Errorf("%w: plot %s has no samples", ErrShapeMismatch, plots[0].Tag)
	}
	times := append([]float64(nil), first.Times...)

	data := make([][][]float64, solutions)
	for i := range data {
		data[i] = make([][]float64, len(plots))
		for j, p := range plots {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}

			series, err := e.driver.FetchSamples(ctx, p.Tag, i)
			if err != nil {
				return Result{}, fmt.Errorf("fetch plot %s solution %d: %w", p.Tag, i, err)
			}
			if len(series.Values) != len(times) {
				return Result{}, &ShapeError{Solution: i, Plot: p.Tag, Want: len(times), Got: len(series.Values)}
			}
			data[i][j] = append([]float64(nil), series.Values...)

			e.log.Debug("fetched series",
				zap.String("plot", p.Tag),
				zap.Int("solution", i),
				zap.Int("samples", len(series.Values)))
		}
	}

	return Result{
		ModelPath: modelPath,
		Group:     group,
		Plots:     tags,
		Times:     times,
		Data:      data,
	}, nil
}

// ExtractToFile runs the extraction and writes the data to outPath. Nothing
// is written unless extraction succeeds completely.
func (e *Extractor) ExtractToFile(ctx context.Context, modelPath, group, outPath string) (Result, error) {
	result, err := e.Run(ctx, modelPath, group)
	if err != nil {
		return Result{}, err
	}

	shape := result.Shape()
	if err := result.WriteNPY(outPath); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", outPath, err)
	}
	e.log.Info("wrote array",
		zap.String("path", outPath),
		zap.String("shape", shape.String()))

	return result, nil
}
