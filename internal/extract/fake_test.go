package extract_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/simextract/internal/extract"
)

// fakeDriver serves series from memory. values[plot][solution] holds the
// samples; every series shares times.
type fakeDriver struct {
	loadErr error
	loaded  string
	group   string
	plots   []extract.Plot
	times   []float64
	values  map[string][][]float64
	fetches int
}

func newFakeDriver(solutions, samples int, tags ...string) *fakeDriver {
	d := &fakeDriver{group: "pg1", values: make(map[string][][]float64)}
	for k := 0; k < samples; k++ {
		d.times = append(d.times, float64(k)*0.5)
	}
	for j, tag := range tags {
		d.plots = append(d.plots, extract.Plot{Tag: tag, Solutions: solutions})
		for i := 0; i < solutions; i++ {
			series := make([]float64, samples)
			for k := range series {
				series[k] = float64(i*100 + j*10 + k)
			}
			d.values[tag] = append(d.values[tag], series)
		}
	}
	return d
}

func (d *fakeDriver) LoadModel(_ context.Context, path string) error {
	if d.loadErr != nil {
		return d.loadErr
	}
	d.loaded = path
	return nil
}

func (d *fakeDriver) ActivePlots(_ context.Context, group string) ([]extract.Plot, error) {
	if group != d.group {
		return nil, fmt.Errorf("unknown plot group %s", group)
	}
	return d.plots, nil
}

func (d *fakeDriver) FetchSamples(_ context.Context, plot string, solution int) (extract.Series, error) {
	d.fetches++
	sols, ok := d.values[plot]
	if !ok || solution >= len(sols) {
		return extract.Series{}, errors.New("no such series")
	}
	return extract.Series{Times: d.times, Values: sols[solution]}, nil
}
