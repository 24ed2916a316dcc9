package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regionsCSV = `id,parent_id,name,acronym
1,0,root,root
2,1,Cerebrum,CH
3,1,Brain stem,BS
4,2,Isocortex,Isocortex
5,2,Hippocampal formation,HPF
`

const traceCSV = `id|parent_id|x|y|z
1|0|0|0|0
2|1|3|4|0
3|2|3|4|5
4|2|6|8|0
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// run executes the CLI with a config path that does not exist, so defaults apply
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cfg := filepath.Join(t.TempDir(), "none.yaml")
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLeavesAndBranches(t *testing.T) {
	file := writeFile(t, t.TempDir(), "regions.csv", regionsCSV)

	out, err := run(t, "leaves", file)
	require.NoError(t, err)
	assert.Equal(t, "4\n5\n3\n", out)

	out, err = run(t, "branches", file)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)

	out, err = run(t, "leaves", "--from", "2", file)
	require.NoError(t, err)
	assert.Equal(t, "4\n5\n", out)
}

func TestPath(t *testing.T) {
	file := writeFile(t, t.TempDir(), "regions.csv", regionsCSV)

	out, err := run(t, "path", file, "5")
	require.NoError(t, err)
	assert.Equal(t, "5 -> 2 -> 1 -> 0\n", out)

	_, err = run(t, "path", file, "99")
	assert.Error(t, err)

	_, err = run(t, "path", file, "5x")
	assert.Error(t, err)
}

func TestTraverse(t *testing.T) {
	file := writeFile(t, t.TempDir(), "regions.csv", regionsCSV)

	out, err := run(t, "traverse", file)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n4\n5\n3\n", out)

	out, err = run(t, "traverse", "--width", file)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n3\n4\n5\n", out)
}

func TestSegments(t *testing.T) {
	file := writeFile(t, t.TempDir(), "regions.csv", regionsCSV)

	out, err := run(t, "segments", file)
	require.NoError(t, err)
	assert.Equal(t, "0,1\n1,2\n2,4\n2,5\n1,3\n", out)

	out, err = run(t, "segments", "--link=false", file)
	require.NoError(t, err)
	assert.Equal(t, "0,1\n2\n4\n5\n3\n", out)
}

func TestLookup(t *testing.T) {
	file := writeFile(t, t.TempDir(), "regions.csv", regionsCSV)

	for _, query := range []string{"4", "isocortex"} {
		out, err := run(t, "lookup", file, query)
		require.NoError(t, err, query)
		assert.Contains(t, out, "Isocortex")
		assert.Contains(t, out, "Cerebrum")
	}

	out, err := run(t, "lookup", file, "HPF")
	require.NoError(t, err)
	assert.Contains(t, out, "Hippocampal formation")

	_, err = run(t, "lookup", file, "cerebellum")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	file := writeFile(t, t.TempDir(), "regions.csv", regionsCSV)

	out, err := run(t, "info", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Nodes:")
	assert.Contains(t, out, "Segments:")
}

func TestSummarize(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "regions.csv", regionsCSV)

	a := &app{}
	cmd := newRootCmd()
	cmd.SetErr(&bytes.Buffer{})
	a.configPath = filepath.Join(dir, "none.yaml")
	require.NoError(t, a.setup(cmd))

	tr, err := a.loadTree(file)
	require.NoError(t, err)

	s := summarize("regions.csv", tr, true)
	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 3, s.Leaves)
	assert.Equal(t, 2, s.Branches)
	assert.Equal(t, 0, s.ChainNodes)
	assert.Equal(t, 3, s.MaxDepth)
	assert.Equal(t, 5, s.Segments)
}

func TestMalformedImportFails(t *testing.T) {
	file := writeFile(t, t.TempDir(), "bad.csv", "id,parent_id,name\n1,0,root\n2,1\n")

	_, err := run(t, "leaves", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "trace.txt", traceCSV)
	img := filepath.Join(dir, "trace.png")

	out, err := run(t, "render", "--out", img, "--axis", "y", file)
	require.NoError(t, err)
	assert.Contains(t, out, "3 segments")

	info, err := os.Stat(img)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neurotree.yaml")

	out, err := run(t, "init-config", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Wrote default config"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "segments:")
}

func TestExplicitColumnsAndSeparator(t *testing.T) {
	file := writeFile(t, t.TempDir(), "rows.txt", "1;0;a\n2;1;b\n")

	out, err := run(t, "--sep", ";", "--columns", "id,parent,name", "path", file, "2")
	require.NoError(t, err)
	assert.Equal(t, "2 -> 1 -> 0\n", out)
}
