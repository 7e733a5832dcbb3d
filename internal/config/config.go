package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

const (
	KeySimDirectory  = "simDirectoryName"
	KeySimFile       = "simFileName"
	KeyPlotGroup     = "plotGroupName"
	KeyDriver        = "driver"
	KeyOutputDir     = "outputDirectory"
	KeyDataDirectory = "dataDirectory"

	// OutputExt replaces the model file extension in the output name.
	OutputExt = ".npy"
)

// ErrConfig indicates a missing, unreadable or incomplete configuration.
var ErrConfig = errors.New("config: invalid configuration")

// Error describes why a configuration file was rejected.
type Error struct {
	Path    string
	Missing []string
	Err     error
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("config %s: missing required keys: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Is(target error) bool { return target == ErrConfig }

func (e *Error) Unwrap() error { return e.Err }

type Config struct {
	SimDirectoryName string `yaml:"simDirectoryName"`
	SimFileName      string `yaml:"simFileName"`
	PlotGroupName    string `yaml:"plotGroupName"`
	// Driver names the extraction driver; empty selects one from the model
	// file extension.
	Driver string `yaml:"driver,omitempty"`
	// OutputDirectory receives the array file; empty means the working
	// directory.
	OutputDirectory string `yaml:"outputDirectory,omitempty"`
	// DataDirectory overrides the run archive location.
	DataDirectory string `yaml:"dataDirectory,omitempty"`
}

// Load reads a flat key/value configuration. Files ending in .properties,
// .cfg or .conf use Java properties syntax, anything else is read as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	cfg := &Config{}
	if isProperties(path) {
		props, err := loadProperties(data)
		if err != nil {
			return nil, &Error{Path: path, Err: err}
		}
		cfg.apply(props)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	if missing := cfg.missing(); len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isProperties(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties", ".cfg", ".conf":
		return true
	}
	return false
}

// loadProperties parses Java properties text. Values are taken literally:
// ${...} references are not expanded.
func loadProperties(data []byte) (*properties.Properties, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	return l.LoadBytes(data)
}

func (c *Config) apply(props *properties.Properties) {
	fields := map[string]*string{
		KeySimDirectory:  &c.SimDirectoryName,
		KeySimFile:       &c.SimFileName,
		KeyPlotGroup:     &c.PlotGroupName,
		KeyDriver:        &c.Driver,
		KeyOutputDir:     &c.OutputDirectory,
		KeyDataDirectory: &c.DataDirectory,
	}
	for key, field := range fields {
		if value, ok := props.Get(key); ok {
			*field = value
		}
	}
}

func (c *Config) missing() []string {
	var missing []string
	required := map[string]string{
		KeySimDirectory: c.SimDirectoryName,
		KeySimFile:      c.SimFileName,
		KeyPlotGroup:    c.PlotGroupName,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// ModelPath is the simulation file joined onto its directory.
func (c *Config) ModelPath() string {
	return filepath.Join(c.SimDirectoryName, c.SimFileName)
}

// OutputPath is the model file's base name with its extension replaced by
// .npy, placed in the output directory.
func (c *Config) OutputPath() string {
	base := filepath.Base(c.SimFileName)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + OutputExt
	dir := c.OutputDirectory
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
