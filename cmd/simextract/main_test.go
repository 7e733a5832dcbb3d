package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/simextract/internal/config"
	"github.com/san-kum/simextract/internal/npy"
	"github.com/san-kum/simextract/internal/storage"
)

const tableModel = `group,plot,solution,time,value
pg1,cpt1,0,0,1
pg1,cpt1,0,1,2
pg1,cpt2,0,0,3
pg1,cpt2,0,1,4
pg1,cpt1,1,0,5
pg1,cpt1,1,1,6
pg1,cpt2,1,0,7
pg1,cpt2,1,1,8
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// setup writes a table model and a properties config pointing at it.
func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.csv"), []byte(tableModel), 0644))

	cfgPath = filepath.Join(dir, "run.properties")
	props := "simDirectoryName=" + dir + "\n" +
		"simFileName=model.csv\n" +
		"plotGroupName=pg1\n" +
		"outputDirectory=" + dir + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(props), 0644))
	return dir, cfgPath
}

func TestUsageOnWrongArgCount(t *testing.T) {
	for _, args := range [][]string{nil, {"a.properties", "b.properties"}} {
		out, err := execute(t, args...)
		assert.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	}
}

func TestExtract(t *testing.T) {
	dir, cfgPath := setup(t)
	archive := filepath.Join(dir, "archive")

	out, err := execute(t, "--data", archive, cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "model.npy")

	shape, data, err := npy.ReadFile(filepath.Join(dir, "model.npy"))
	require.NoError(t, err)
	assert.Equal(t, npy.Shape{2, 2, 2}, shape)
	assert.Equal(t, [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}, data)

	runs, err := storage.New(archive).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "table", runs[0].Driver)
	assert.Equal(t, []string{"cpt1", "cpt2"}, runs[0].Plots)
}

func TestExtractDefaultWritesOnlyArray(t *testing.T) {
	dir, cfgPath := setup(t)

	_, err := execute(t, cfgPath)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"model.csv", "model.npy", "run.properties"}, names)

	_, err = os.Stat(".simextract")
	assert.True(t, os.IsNotExist(err))
}

func TestExtractArchiveFailureKeepsArray(t *testing.T) {
	dir, cfgPath := setup(t)
	blocked := filepath.Join(dir, "archive")
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0644))

	_, err := execute(t, "--data", blocked, cfgPath)
	require.NoError(t, err)

	shape, _, err := npy.ReadFile(filepath.Join(dir, "model.npy"))
	require.NoError(t, err)
	assert.Equal(t, npy.Shape{2, 2, 2}, shape)
}

func TestListNeedsArchive(t *testing.T) {
	_, err := execute(t, "list")
	assert.ErrorContains(t, err, "--data")
}

func TestExtractMissingKey(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.properties")
	require.NoError(t, os.WriteFile(cfgPath, []byte("simFileName=model.csv\n"), 0644))

	_, err := execute(t, cfgPath)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestExtractRaggedLeavesNoOutput(t *testing.T) {
	dir, cfgPath := setup(t)
	ragged := tableModel + "pg1,cpt2,1,2,9\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.csv"), []byte(ragged), 0644))

	_, err := execute(t, cfgPath)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "model.npy"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInspectAndExport(t *testing.T) {
	dir, cfgPath := setup(t)
	_, err := execute(t, cfgPath)
	require.NoError(t, err)
	npyPath := filepath.Join(dir, "model.npy")

	out, err := execute(t, "inspect", npyPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(2,2,2)")

	jsonPath := filepath.Join(dir, "model.json")
	_, err = execute(t, "export-json", npyPath, jsonPath)
	require.NoError(t, err)
	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"shape"`)
}

func TestBatch(t *testing.T) {
	dir, cfgPath := setup(t)
	batchPath := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(batchPath, []byte("name: one\njobs:\n  - "+filepath.Base(cfgPath)+"\n"), 0644))

	out, err := execute(t, "batch", batchPath)
	require.NoError(t, err)
	assert.Contains(t, out, "model.npy")
}

func TestDrivers(t *testing.T) {
	out, err := execute(t, "drivers")
	require.NoError(t, err)
	assert.Contains(t, out, "synthetic")
	assert.Contains(t, out, ".csv")
}
