package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrEmptyBatch = errors.New("automation: batch has no jobs")

// Batch is a scripted sequence of extraction runs, one per config file.
type Batch struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Jobs        []string `yaml:"jobs"`
}

// JobFunc performs one extraction for the config at path.
type JobFunc func(ctx context.Context, path string) error

// JobResult records a finished job.
type JobResult struct {
	Config  string
	Elapsed time.Duration
}

// LoadBatch loads a batch from a YAML file. Relative job paths are resolved
// against the directory holding the batch file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	if len(batch.Jobs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBatch, path)
	}

	dir := filepath.Dir(path)
	for i, job := range batch.Jobs {
		if !filepath.IsAbs(job) {
			batch.Jobs[i] = filepath.Join(dir, job)
		}
	}
	return &batch, nil
}

// RunBatch runs every job in order. The first failing job stops the batch;
// the results of the jobs completed before it are returned with the error.
func RunBatch(ctx context.Context, batch *Batch, run JobFunc, log *zap.Logger) ([]JobResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(batch.Jobs) == 0 {
		return nil, ErrEmptyBatch
	}

	log.Info("running batch", zap.String("name", batch.Name), zap.Int("jobs", len(batch.Jobs)))

	results := make([]JobResult, 0, len(batch.Jobs))
	for i, job := range batch.Jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		log.Info("running job",
			zap.Int("step", i+1),
			zap.Int("of", len(batch.Jobs)),
			zap.String("config", job))

		start := time.Now()
		if err := run(ctx, job); err != nil {
			return results, fmt.Errorf("job %d (%s): %w", i+1, job, err)
		}
		results = append(results, JobResult{Config: job, Elapsed: time.Since(start)})
	}

	return results, nil
}
