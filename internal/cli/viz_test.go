package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSONLD = `{
  "@context": [
    {"ex": "https://example.org/"},
    "https://openprovenance.org/prov-jsonld/context.json"
  ],
  "@graph": [
    {"@type": "prov:Entity", "@id": "ex:e1"},
    {"@type": "prov:Activity", "@id": "ex:a1"},
    {"@type": "prov:Generation", "@id": "_:gen1", "entity": "ex:e1", "activity": "ex:a1"}
  ]
}`

func TestVizWritesDot(t *testing.T) {
	input := writeInput(t, sampleJSONLD)
	output := filepath.Join(t.TempDir(), "graph.dot")

	_, _, err := execute(t, nil, "viz", input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	dot := string(data)
	assert.Contains(t, dot, "digraph PROV {")
	assert.Contains(t, dot, "ex_e1")
	assert.Contains(t, dot, "ex_a1 -> ex_e1")
}

func TestVizDotToStdout(t *testing.T) {
	out, _, err := execute(t, strings.NewReader(sampleJSONLD), "viz", "-", "-", "--direction", "TB")
	require.NoError(t, err)
	assert.Contains(t, out, "rankdir=TB;")
}

func TestVizStyleOverride(t *testing.T) {
	input := writeInput(t, sampleJSONLD)
	stylePath := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(stylePath, []byte("nodes:\n  prov:Entity:\n    shape: diamond\n    fillcolor: \"#123456\"\n"), 0o644))

	out, _, err := execute(t, nil, "viz", input, "-", "--style", stylePath)
	require.NoError(t, err)
	assert.Contains(t, out, "shape=diamond")
}

func TestVizBadInput(t *testing.T) {
	_, stderr, err := execute(t, strings.NewReader("{not json"), "viz", "-", "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "VIZ_ERROR")
}

func TestVizRenderToStdoutWarns(t *testing.T) {
	_, stderr, err := execute(t, strings.NewReader(sampleJSONLD), "viz", "-", "-", "--render", "png")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
}
