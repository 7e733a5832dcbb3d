// Package table implements an extraction driver over plot data exported as
// a CSV table, one sample per row:
//
//	group,plot,solution,time,value[,active]
//
// Solutions are zero-based. Rows of one (plot, solution) series keep their
// file order. A plot is inactive when any of its rows has active=false.
package table

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/simextract/internal/extract"
)

var requiredColumns = []string{"group", "plot", "solution", "time", "value"}

type plotData struct {
	tag      string
	inactive bool
	series   map[int]*extract.Series
	maxSol   int
}

type groupData struct {
	order []string
	plots map[string]*plotData
}

type Driver struct {
	groups  map[string]*groupData
	current *groupData
}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) LoadModel(_ context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	groups, err := parse(f)
	if err != nil {
		return fmt.Errorf("table %s: %w", path, err)
	}
	d.groups = groups
	d.current = nil
	return nil
}

func parse(r io.Reader) (map[string]*groupData, error) {
	cr := csv.NewReader(r)
	cr.Comment = '%'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	activeCol, hasActive := cols["active"]

	groups := make(map[string]*groupData)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		solution, err := strconv.Atoi(record[cols["solution"]])
		if err != nil || solution < 0 {
			return nil, fmt.Errorf("line %d: bad solution %q", line, record[cols["solution"]])
		}
		t, err := strconv.ParseFloat(record[cols["time"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad time: %w", line, err)
		}
		v, err := strconv.ParseFloat(record[cols["value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value: %w", line, err)
		}

		name := record[cols["group"]]
		g, ok := groups[name]
		if !ok {
			g = &groupData{plots: make(map[string]*plotData)}
			groups[name] = g
		}
		tag := record[cols["plot"]]
		p, ok := g.plots[tag]
		if !ok {
			p = &plotData{tag: tag, series: make(map[int]*extract.Series)}
			g.plots[tag] = p
			g.order = append(g.order, tag)
		}
		if hasActive {
			active, err := strconv.ParseBool(record[activeCol])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad active flag %q", line, record[activeCol])
			}
			p.inactive = p.inactive || !active
		}

		s, ok := p.series[solution]
		if !ok {
			s = &extract.Series{}
			p.series[solution] = s
		}
		s.Times = append(s.Times, t)
		s.Values = append(s.Values, v)
		if solution > p.maxSol {
			p.maxSol = solution
		}
	}
	return groups, nil
}

func (d *Driver) ActivePlots(_ context.Context, group string) ([]extract.Plot, error) {
	g, ok := d.groups[group]
	if !ok {
		return nil, fmt.Errorf("table: unknown plot group %s", group)
	}
	d.current = g

	var plots []extract.Plot
	for _, tag := range g.order {
		p := g.plots[tag]
		if p.inactive {
			continue
		}
		plots = append(plots, extract.Plot{Tag: tag, Solutions: p.maxSol + 1})
	}
	return plots, nil
}

// FetchSamples returns an empty series for a solution with no rows, leaving
// the length check to the caller.
func (d *Driver) FetchSamples(_ context.Context, plot string, solution int) (extract.Series, error) {
	if d.current == nil {
		return extract.Series{}, fmt.Errorf("table: no plot group selected")
	}
	p, ok := d.current.plots[plot]
	if !ok || p.inactive {
		return extract.Series{}, fmt.Errorf("table: unknown plot %s", plot)
	}
	s, ok := p.series[solution]
	if !ok {
		return extract.Series{}, nil
	}
	return extract.Series{
		Times:  append([]float64(nil), s.Times...),
		Values: append([]float64(nil), s.Values...),
	}, nil
}
