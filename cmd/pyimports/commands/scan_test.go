package commands //nolint:testpackage // testing internal implementation.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScan(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewScanCommand()

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return buf.String(), err
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestScanCommand_TextOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "app.py", "import sys\nimport requests\n")

	out, err := runScan(t, "--no-color", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Found 2 imported modules")
	assert.Contains(t, out, "requests")
	assert.Contains(t, out, "sys")
}

func TestScanCommand_JSONOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "app.py",
		"import requests\n"+
			"try:\n"+
			"    import ujson\n"+
			"except ImportError:\n"+
			"    pass\n")

	out, err := runScan(t, "-f", "json", dir)
	require.NoError(t, err)

	var decoded []map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "requests", decoded[0]["name"])
	assert.Equal(t, "required", decoded[0]["classification"])
	assert.Equal(t, "ujson", decoded[1]["name"])
	assert.Equal(t, "optional", decoded[1]["classification"])
}

func TestScanCommand_ExcludeCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "app.py", "import os\n")

	out, err := runScan(t, "-f", "json", "-x", dir)
	require.NoError(t, err)

	var decoded []map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Empty(t, decoded)
}

func TestScanCommand_ExtraCatalogFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "app.py", "import numpy\nimport requests\n")
	catalogPath := writeFixture(t, dir, "known.yaml", "- numpy\n")

	out, err := runScan(t, "-f", "json", "-x", "--catalog", catalogPath, dir)
	require.NoError(t, err)

	var decoded []map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "requests", decoded[0]["name"])
}

func TestScanCommand_NonexistentPathFails(t *testing.T) {
	t.Parallel()

	_, err := runScan(t, filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestScanCommand_BrokenFilesAreSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "ok.py", "import math\n")
	writeFixture(t, dir, "broken.py", "def broken(:\n")

	out, err := runScan(t, "-f", "json", dir)
	require.NoError(t, err)

	var decoded []map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "math", decoded[0]["name"])
}

func TestScanCommand_ChartOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "app.py", "import requests\n")
	chartPath := filepath.Join(dir, "chart.html")

	_, err := runScan(t, "--chart", chartPath, "--no-color", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "requests")
}

func TestScanCommand_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "app.py", "import requests\n")
	cfgPath := writeFixture(t, dir, "config.yaml", "format: json\n")

	out, err := runScan(t, "--config", cfgPath, dir)
	require.NoError(t, err)

	var decoded []map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
}

func TestScanCommand_WorkersFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "a.py", "import requests\n")
	writeFixture(t, dir, "b.py", "import flask\n")
	writeFixture(t, dir, "c.py", "import numpy\n")

	seq, err := runScan(t, "-f", "json", dir)
	require.NoError(t, err)

	par, err := runScan(t, "-f", "json", "-w", "4", dir)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}
