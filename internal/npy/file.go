package npy

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes data and stores it at path, replacing any existing file.
// The container is written to a temporary file in the same directory and
// renamed into place, so path never holds a truncated container.
func WriteFile(path string, shape Shape, data [][][]float64) error {
	buf, err := Encode(shape, data)
	if err != nil {
		return err
	}
	return writeAtomic(path, buf)
}

func writeAtomic(path string, buf []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
