package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEmptyJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	out, _, err := execute(t, nil, "log", "--journal", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no recorded runs")
}

func TestLogListsRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	input := writeInput(t, sampleProvJSON)
	output := filepath.Join(dir, "doc.jsonld")

	_, _, err := execute(t, nil, "convert", input, output, "--journal", dbPath)
	require.NoError(t, err)

	out, _, err := execute(t, nil, "log", "--journal", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATED")
	assert.Contains(t, out, input)
	assert.Contains(t, out, output)
}

func TestLogJSONEnvelope(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	input := writeInput(t, sampleProvJSON)

	_, _, err := execute(t, nil, "convert", input, filepath.Join(dir, "doc.jsonld"), "--journal", dbPath)
	require.NoError(t, err)

	out, _, err := execute(t, nil, "--format", "json", "log", "--journal", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"input_sha256"`)
}

func TestLogLimit(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	input := writeInput(t, sampleProvJSON)

	for i := 0; i < 3; i++ {
		_, _, err := execute(t, nil, "convert", input, "-", "--journal", dbPath)
		require.NoError(t, err)
	}

	out, _, err := execute(t, nil, "--format", "json", "log", "--journal", dbPath, "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, `"tool_version"`))
}
