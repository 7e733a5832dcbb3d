// Package driver resolves extraction drivers by name or by model file type.
package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/simextract/internal/driver/synthetic"
	"github.com/san-kum/simextract/internal/driver/table"
	"github.com/san-kum/simextract/internal/extract"
)

// ErrNoDriver indicates a model that no registered driver can open.
var ErrNoDriver = errors.New("driver: no driver for model")

type Registry struct {
	drivers    map[string]func() extract.Driver
	extensions map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		drivers:    make(map[string]func() extract.Driver),
		extensions: make(map[string]string),
	}

	r.Register("synthetic", func() extract.Driver { return synthetic.New() }, ".yaml", ".yml")
	r.Register("table", func() extract.Driver { return table.New() }, ".csv", ".txt")

	return r
}

// Register adds a driver constructor and the model extensions it claims.
func (r *Registry) Register(name string, fn func() extract.Driver, exts ...string) {
	r.drivers[name] = fn
	for _, ext := range exts {
		r.extensions[strings.ToLower(ext)] = name
	}
}

func (r *Registry) Get(name string) (extract.Driver, error) {
	fn, ok := r.drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown driver %s (available: %v)", ErrNoDriver, name, r.List())
	}
	return fn(), nil
}

// ForModel picks the driver registered for the model file's extension.
// Solved COMSOL .mph files need the vendor Java runtime and have no driver.
func (r *Registry) ForModel(path string) (extract.Driver, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := r.extensions[ext]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s (extension %q; available drivers: %v)", ErrNoDriver, path, ext, r.List())
	}
	d, err := r.Get(name)
	return d, name, err
}

// Resolve returns the named driver, or the one matching path when name is
// empty.
func (r *Registry) Resolve(name, path string) (extract.Driver, string, error) {
	if name == "" {
		return r.ForModel(path)
	}
	d, err := r.Get(name)
	return d, name, err
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns the extensions claimed by the named driver.
func (r *Registry) Extensions(name string) []string {
	var exts []string
	for ext, n := range r.extensions {
		if n == name {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
