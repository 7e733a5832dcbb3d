package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Source string        `json:"source"`
	Shape  [3]int        `json:"shape"`
	Plots  []string      `json:"plots,omitempty"`
	Times  []float64     `json:"times,omitempty"`
	Data   [][][]float64 `json:"data"`
}

// ExportJSON writes data as indented JSON to path, or to stdout when path is
// "-".
func ExportJSON(path string, data ExportData) error {
	if path == "-" {
		return encodeJSON(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := encodeJSON(file, data); err != nil {
		return err
	}
	return file.Close()
}

func encodeJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
